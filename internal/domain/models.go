package domain

import "time"

// TaskID identifies a thematic group of questions (1..5 in the shipped catalog).
type TaskID int

// Letter addresses an answer option: "a" is the first option, "b" the second, and so on.
type Letter string

const (
	LetterA Letter = "a"
	LetterB Letter = "b"
	LetterC Letter = "c"
)

var letters = []Letter{LetterA, LetterB, LetterC}

// Index returns the option index addressed by the letter, or -1 if the letter is unknown.
func (l Letter) Index() int {
	for i, candidate := range letters {
		if candidate == l {
			return i
		}
	}
	return -1
}

// LetterAt returns the letter for an option index.
func LetterAt(index int) (Letter, bool) {
	if index < 0 || index >= len(letters) {
		return "", false
	}
	return letters[index], true
}

// Question models a multiple-choice question with exactly one correct option.
type Question struct {
	ID          int      `json:"id"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      Letter   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// HasOption reports whether the letter addresses one of the question's options.
func (q Question) HasOption(l Letter) bool {
	idx := l.Index()
	return idx >= 0 && idx < len(q.Options)
}

// IsCorrect reports whether the letter is the question's correct option.
func (q Question) IsCorrect(l Letter) bool {
	return l == q.Answer
}

// Task is a titled, ordered collection of questions.
type Task struct {
	ID        TaskID     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Quota requests Count questions from Task.
type Quota struct {
	Task  TaskID `json:"task" yaml:"task"`
	Count int    `json:"count" yaml:"count"`
}

// Distribution is an ordered list of quotas; exam questions keep this order.
type Distribution []Quota

// Total returns the sum of requested counts.
func (d Distribution) Total() int {
	total := 0
	for _, q := range d {
		if q.Count > 0 {
			total += q.Count
		}
	}
	return total
}

// ExamSet is the sample of questions drawn for one graded session.
type ExamSet struct {
	ID          string       `json:"id"`
	Questions   []Question   `json:"questions"`
	Composition Distribution `json:"composition"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Contains reports whether the question id is part of the set.
func (s ExamSet) Contains(questionID int) bool {
	_, ok := s.Question(questionID)
	return ok
}

// Question looks up a question of the set by id.
func (s ExamSet) Question(questionID int) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionOutcome is the graded result of one exam question.
type QuestionOutcome struct {
	QuestionID int    `json:"questionId"`
	Selected   Letter `json:"selected,omitempty"`
	Correct    bool   `json:"correct"`
}

// ExamResult summarizes a submitted exam.
type ExamResult struct {
	ExamID   string            `json:"examId"`
	Score    int               `json:"score"`
	Total    int               `json:"total"`
	Passed   bool              `json:"passed"`
	Outcomes []QuestionOutcome `json:"outcomes"`
}

// Stats holds the aggregate, monotonically non-decreasing counters of a learner.
type Stats struct {
	ExamsTaken             int `json:"examsTaken"`
	ExamsPassed            int `json:"examsPassed"`
	TotalQuestionsAnswered int `json:"totalQuestionsAnswered"`
	TotalCorrect           int `json:"totalCorrect"`
}

// QuestionStats counts exposures and mistakes for a single question. Seen >= Incorrect.
type QuestionStats struct {
	Seen      int `json:"seen"`
	Incorrect int `json:"incorrect"`
}

// ProgressState is the durable learner record: counters, favorites and per-question history.
type ProgressState struct {
	Stats           Stats                 `json:"stats"`
	Favorites       []int                 `json:"favorites"`
	QuestionHistory map[int]QuestionStats `json:"questionHistory"`
}

// NewProgressState returns the zeroed defaults used for a fresh learner.
func NewProgressState() ProgressState {
	return ProgressState{
		Favorites:       []int{},
		QuestionHistory: make(map[int]QuestionStats),
	}
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (p ProgressState) Clone() ProgressState {
	out := ProgressState{
		Stats:           p.Stats,
		Favorites:       make([]int, len(p.Favorites)),
		QuestionHistory: make(map[int]QuestionStats, len(p.QuestionHistory)),
	}
	copy(out.Favorites, p.Favorites)
	for id, stats := range p.QuestionHistory {
		out.QuestionHistory[id] = stats
	}
	return out
}
