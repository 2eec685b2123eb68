package catalog

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"ccse-study-service/internal/domain"
)

// Loader produces the catalog served for the lifetime of the process.
type Loader interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
}

// Catalog is the read-only question bank, keyed by task id.
type Catalog struct {
	tasks map[domain.TaskID]domain.Task
	ids   []domain.TaskID
	index map[int]domain.Question
}

// New validates tasks and builds a catalog from them.
func New(tasks ...domain.Task) (*Catalog, error) {
	c := &Catalog{
		tasks: make(map[domain.TaskID]domain.Task, len(tasks)),
		index: make(map[int]domain.Question),
	}
	for _, task := range tasks {
		if _, dup := c.tasks[task.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate task %d", domain.ErrInvalidCatalog, task.ID)
		}
		task = cloneTask(task)
		for _, q := range task.Questions {
			if err := validateQuestion(q); err != nil {
				return nil, err
			}
			if _, dup := c.index[q.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate question %d", domain.ErrInvalidCatalog, q.ID)
			}
			c.index[q.ID] = q
		}
		c.tasks[task.ID] = task
		c.ids = append(c.ids, task.ID)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return c, nil
}

// Builtin returns the shipped CCSE catalog.
func Builtin() *Catalog {
	c, err := New(builtinTasks...)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// BuiltinTasks returns a copy of the built-in task list, e.g. for seeding a database.
func BuiltinTasks() []domain.Task {
	out := make([]domain.Task, 0, len(builtinTasks))
	for _, task := range builtinTasks {
		out = append(out, cloneTask(task))
	}
	return out
}

func cloneTask(task domain.Task) domain.Task {
	questions := make([]domain.Question, 0, len(task.Questions))
	for _, q := range task.Questions {
		questions = append(questions, cloneQuestion(q))
	}
	task.Questions = questions
	return task
}

func cloneQuestion(q domain.Question) domain.Question {
	q.Options = slices.Clone(q.Options)
	return q
}

func validateQuestion(q domain.Question) error {
	switch {
	case strings.TrimSpace(q.Prompt) == "":
		return fmt.Errorf("%w: question %d has no prompt", domain.ErrInvalidCatalog, q.ID)
	case len(q.Options) < 2 || len(q.Options) > 3:
		return fmt.Errorf("%w: question %d has %d options", domain.ErrInvalidCatalog, q.ID, len(q.Options))
	case !q.HasOption(q.Answer):
		return fmt.Errorf("%w: question %d answer %q", domain.ErrInvalidCatalog, q.ID, q.Answer)
	}
	return nil
}

// Task returns a copy of the task with the given id. Unknown ids report false.
func (c *Catalog) Task(id domain.TaskID) (domain.Task, bool) {
	task, ok := c.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	return cloneTask(task), true
}

// TaskIDs lists the task ids in ascending order.
func (c *Catalog) TaskIDs() []domain.TaskID {
	out := make([]domain.TaskID, len(c.ids))
	copy(out, c.ids)
	return out
}

// Tasks lists all tasks in ascending id order.
func (c *Catalog) Tasks() []domain.Task {
	out := make([]domain.Task, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, cloneTask(c.tasks[id]))
	}
	return out
}

// AllQuestions flattens every task's questions in task order.
func (c *Catalog) AllQuestions() []domain.Question {
	out := make([]domain.Question, 0, len(c.index))
	for _, id := range c.ids {
		for _, q := range c.tasks[id].Questions {
			out = append(out, cloneQuestion(q))
		}
	}
	return out
}

// Question looks up a question by id.
func (c *Catalog) Question(id int) (domain.Question, bool) {
	q, ok := c.index[id]
	if !ok {
		return domain.Question{}, false
	}
	return cloneQuestion(q), true
}

// HasQuestion reports whether the id belongs to the catalog.
func (c *Catalog) HasQuestion(id int) bool {
	_, ok := c.index[id]
	return ok
}

// Search filters questions whose prompt contains query (case-insensitive)
// or whose id contains it as a substring.
func Search(questions []domain.Question, query string) []domain.Question {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return questions
	}
	out := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Prompt), query) || strings.Contains(strconv.Itoa(q.ID), query) {
			out = append(out, q)
		}
	}
	return out
}

// StaticLoader serves a fixed set of tasks (the built-in bank by default).
type StaticLoader struct {
	tasks []domain.Task
}

func NewStaticLoader(tasks ...domain.Task) *StaticLoader {
	if len(tasks) == 0 {
		tasks = builtinTasks
	}
	return &StaticLoader{tasks: tasks}
}

func (l *StaticLoader) LoadCatalog(_ context.Context) (*Catalog, error) {
	return New(l.tasks...)
}
