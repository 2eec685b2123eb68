package catalog

import (
	"context"
	"errors"
	"testing"

	"ccse-study-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTaskSizes(t *testing.T) {
	c := Builtin()

	want := map[domain.TaskID]int{1: 12, 2: 6, 3: 4, 4: 3, 5: 3}
	for id, size := range want {
		task, ok := c.Task(id)
		require.True(t, ok, "task %d missing", id)
		assert.Len(t, task.Questions, size, "task %d", id)
	}
	assert.Equal(t, []domain.TaskID{1, 2, 3, 4, 5}, c.TaskIDs())
	assert.Len(t, c.AllQuestions(), 28)
}

func TestUnknownTaskIsAbsent(t *testing.T) {
	c := Builtin()
	_, ok := c.Task(9)
	assert.False(t, ok)
	_, ok = c.Question(424242)
	assert.False(t, ok)
}

func TestAllQuestionsKeepsTaskOrder(t *testing.T) {
	c := Builtin()
	all := c.AllQuestions()
	require.NotEmpty(t, all)
	assert.Equal(t, 1001, all[0].ID)
	assert.Equal(t, 5059, all[len(all)-1].ID)
}

func TestQuestionLookup(t *testing.T) {
	c := Builtin()
	q, ok := c.Question(1001)
	require.True(t, ok)
	assert.Equal(t, domain.LetterA, q.Answer)
	assert.True(t, c.HasQuestion(4001))
}

func TestNewRejectsBrokenContent(t *testing.T) {
	valid := domain.Question{ID: 1, Prompt: "p", Options: []string{"x", "y"}, Answer: domain.LetterA}

	tests := []struct {
		name  string
		tasks []domain.Task
	}{
		{"duplicate question", []domain.Task{
			{ID: 1, Questions: []domain.Question{valid}},
			{ID: 2, Questions: []domain.Question{valid}},
		}},
		{"duplicate task", []domain.Task{{ID: 1}, {ID: 1}}},
		{"one option", []domain.Task{{ID: 1, Questions: []domain.Question{
			{ID: 2, Prompt: "p", Options: []string{"x"}, Answer: domain.LetterA},
		}}}},
		{"answer out of range", []domain.Task{{ID: 1, Questions: []domain.Question{
			{ID: 3, Prompt: "p", Options: []string{"x", "y"}, Answer: domain.LetterC},
		}}}},
		{"empty prompt", []domain.Task{{ID: 1, Questions: []domain.Question{
			{ID: 4, Prompt: " ", Options: []string{"x", "y"}, Answer: domain.LetterB},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tasks...)
			if !errors.Is(err, domain.ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	questions := Builtin().AllQuestions()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"by prompt ignoring case", "QUIJOTE", []int{4001}},
		{"by id substring", "505", []int{5059}},
		{"no match", "zzz", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(questions, tt.query)
			ids := make([]int, 0, len(got))
			for _, q := range got {
				ids = append(ids, q.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	assert.Len(t, Search(questions, ""), len(questions))
}

func TestStaticLoader(t *testing.T) {
	c, err := NewStaticLoader().LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.AllQuestions(), 28)

	custom, err := NewStaticLoader(domain.Task{ID: 7, Title: "custom"}).LoadCatalog(context.Background())
	require.NoError(t, err)
	_, ok := custom.Task(7)
	assert.True(t, ok)
}

func TestCallersCannotMutateCatalog(t *testing.T) {
	c := Builtin()

	task, ok := c.Task(1)
	require.True(t, ok)
	task.Questions[0].Prompt = "changed"
	task.Questions[0].Options[0] = "changed"

	q, _ := c.Question(1001)
	q.Options[1] = "changed"

	seeded := BuiltinTasks()
	seeded[0].Questions[0].Answer = domain.LetterC

	fresh, _ := c.Task(1)
	assert.NotEqual(t, "changed", fresh.Questions[0].Prompt)
	assert.NotEqual(t, "changed", fresh.Questions[0].Options[0])
	again, _ := c.Question(1001)
	assert.NotEqual(t, "changed", again.Options[1])
	assert.Equal(t, domain.LetterA, again.Answer)
	assert.Equal(t, domain.LetterA, BuiltinTasks()[0].Questions[0].Answer)
}
