package app

import (
	"maps"
	"strconv"

	"ccse-study-service/internal/domain"
)

// Tab selects what the UI shows: one task's questions or the exam.
type Tab string

// ExamTab is the exam mode tab.
const ExamTab Tab = "exam"

// TaskTab returns the tab showing a task's questions.
func TaskTab(id domain.TaskID) Tab {
	return Tab(strconv.Itoa(int(id)))
}

// TaskID returns the task shown by a study tab.
func (t Tab) TaskID() (domain.TaskID, bool) {
	n, err := strconv.Atoi(string(t))
	if err != nil || n <= 0 {
		return 0, false
	}
	return domain.TaskID(n), true
}

// IsExam reports whether the tab is the exam mode tab.
func (t Tab) IsExam() bool { return t == ExamTab }

func (t Tab) valid() bool {
	_, ok := t.TaskID()
	return ok || t.IsExam()
}

// Phase is the lifecycle of an exam session.
type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseSubmitted  Phase = "submitted"
)

// ExamState is one exam session: the drawn set, the answer record and the grading.
type ExamState struct {
	Set     domain.ExamSet        `json:"set"`
	Answers map[int]domain.Letter `json:"answers"`
	Phase   Phase                 `json:"phase"`
	Score   int                   `json:"score"`
	Passed  bool                  `json:"passed"`
}

// NewExamState starts collecting answers for a freshly drawn set.
func NewExamState(set domain.ExamSet) ExamState {
	return ExamState{
		Set:     set,
		Answers: make(map[int]domain.Letter),
		Phase:   PhaseCollecting,
	}
}

// RecordAnswer returns the state with the answer recorded; the last answer wins.
func (e ExamState) RecordAnswer(questionID int, letter domain.Letter) (ExamState, error) {
	if e.Phase == PhaseSubmitted {
		return e, domain.ErrAlreadySubmitted
	}
	q, ok := e.Set.Question(questionID)
	if !ok {
		return e, domain.ErrQuestionNotInExam
	}
	if !q.HasOption(letter) {
		return e, domain.ErrInvalidOption
	}
	next := e
	next.Answers = maps.Clone(e.Answers)
	if next.Answers == nil {
		next.Answers = make(map[int]domain.Letter, 1)
	}
	next.Answers[questionID] = letter
	return next, nil
}

// Submit grades the exam and freezes it. Submitting twice is a no-op.
func (e ExamState) Submit() ExamState {
	if e.Phase == PhaseSubmitted {
		return e
	}
	next := e
	next.Phase = PhaseSubmitted
	next.Score = e.correctCount()
	next.Passed = next.Score >= PassThreshold
	return next
}

func (e ExamState) correctCount() int {
	score := 0
	for _, q := range e.Set.Questions {
		if selected, ok := e.Answers[q.ID]; ok && q.IsCorrect(selected) {
			score++
		}
	}
	return score
}

// Result reports the graded outcome, per question in exam order.
func (e ExamState) Result() domain.ExamResult {
	res := domain.ExamResult{
		ExamID:   e.Set.ID,
		Score:    e.Score,
		Total:    len(e.Set.Questions),
		Passed:   e.Passed,
		Outcomes: make([]domain.QuestionOutcome, 0, len(e.Set.Questions)),
	}
	for _, q := range e.Set.Questions {
		selected := e.Answers[q.ID]
		res.Outcomes = append(res.Outcomes, domain.QuestionOutcome{
			QuestionID: q.ID,
			Selected:   selected,
			Correct:    selected != "" && q.IsCorrect(selected),
		})
	}
	return res
}

// StudyAnswer is the locked answer of one study-mode question.
type StudyAnswer struct {
	Selected domain.Letter `json:"selected"`
	Correct  bool          `json:"correct"`
}

// StudyState holds study-mode answers keyed by question id.
type StudyState map[int]StudyAnswer

// Answer scores a study question immediately and locks it.
func (s StudyState) Answer(q domain.Question, letter domain.Letter) (StudyState, StudyAnswer, error) {
	if prev, ok := s[q.ID]; ok {
		return s, prev, domain.ErrAlreadyAnswered
	}
	if !q.HasOption(letter) {
		return s, StudyAnswer{}, domain.ErrInvalidOption
	}
	answer := StudyAnswer{Selected: letter, Correct: q.IsCorrect(letter)}
	next := maps.Clone(s)
	if next == nil {
		next = make(StudyState, 1)
	}
	next[q.ID] = answer
	return next, answer, nil
}

// State is the serializable application state of one UI client.
type State struct {
	Tab    Tab        `json:"tab"`
	Search string     `json:"search"`
	Exam   *ExamState `json:"exam,omitempty"`
	Study  StudyState `json:"study"`
}

// NewState opens on the first task.
func NewState() State {
	return State{Tab: TaskTab(1), Study: StudyState{}}
}

// Action is a UI-dispatched event applied by Reduce.
type Action interface {
	isAction()
}

// SelectTab switches between task tabs and the exam tab.
type SelectTab struct{ Tab Tab }

// SetSearch changes the search filter.
type SetSearch struct{ Query string }

// ExamGenerated installs a fresh exam set, clearing answers and the submitted flag.
type ExamGenerated struct{ Set domain.ExamSet }

// AnswerExam records an exam answer.
type AnswerExam struct {
	QuestionID int
	Letter     domain.Letter
}

// SubmitExam grades the current exam.
type SubmitExam struct{}

// AnswerStudy scores a study-mode question.
type AnswerStudy struct {
	Question domain.Question
	Letter   domain.Letter
}

func (SelectTab) isAction()     {}
func (SetSearch) isAction()     {}
func (ExamGenerated) isAction() {}
func (AnswerExam) isAction()    {}
func (SubmitExam) isAction()    {}
func (AnswerStudy) isAction()   {}

// Reduce applies an action and returns the next state. The input is never
// modified; a rejected action returns the input unchanged with an error.
func Reduce(s State, action Action) (State, error) {
	switch a := action.(type) {
	case SelectTab:
		if !a.Tab.valid() {
			return s, domain.ErrUnknownTab
		}
		next := s
		next.Tab = a.Tab
		if !a.Tab.IsExam() && a.Tab != s.Tab {
			// switching to a task renders fresh, unanswered cards
			next.Study = StudyState{}
		}
		return next, nil

	case SetSearch:
		next := s
		next.Search = a.Query
		return next, nil

	case ExamGenerated:
		exam := NewExamState(a.Set)
		next := s
		next.Exam = &exam
		return next, nil

	case AnswerExam:
		if s.Exam == nil {
			return s, domain.ErrNoExam
		}
		exam, err := s.Exam.RecordAnswer(a.QuestionID, a.Letter)
		if err != nil {
			return s, err
		}
		next := s
		next.Exam = &exam
		return next, nil

	case SubmitExam:
		if s.Exam == nil {
			return s, domain.ErrNoExam
		}
		exam := s.Exam.Submit()
		next := s
		next.Exam = &exam
		return next, nil

	case AnswerStudy:
		study, _, err := s.Study.Answer(a.Question, a.Letter)
		if err != nil {
			return s, err
		}
		next := s
		next.Study = study
		return next, nil
	}
	return s, nil
}
