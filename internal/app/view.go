package app

import (
	"slices"

	"ccse-study-service/internal/catalog"
	"ccse-study-service/internal/domain"
)

// QuestionBank is the read side of the catalog the views and the service need.
type QuestionBank interface {
	TaskSource
	Question(id int) (domain.Question, bool)
}

// Badge is the status shown in a card header.
type Badge string

const (
	BadgePending   Badge = "pending"
	BadgeCorrect   Badge = "correct"
	BadgeIncorrect Badge = "incorrect"
)

// Tone is the styling class of an option; renderers map it to colours.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	ToneSelected Tone = "selected"
	ToneCorrect  Tone = "correct"
	ToneWrong    Tone = "wrong"
	ToneDimmed   Tone = "dimmed"
)

// OptionView is the display model of one answer option.
type OptionView struct {
	Letter   domain.Letter `json:"letter"`
	Text     string        `json:"text"`
	Tone     Tone          `json:"tone"`
	Disabled bool          `json:"disabled"`
}

// CardView is the display model of one question card.
type CardView struct {
	QuestionID      int                  `json:"questionId"`
	Prompt          string               `json:"prompt"`
	Badge           Badge                `json:"badge"`
	Options         []OptionView         `json:"options"`
	ShowExplanation bool                 `json:"showExplanation"`
	Explanation     string               `json:"explanation,omitempty"`
	Favorite        bool                 `json:"favorite"`
	History         domain.QuestionStats `json:"history"`
}

// ExamHeader summarizes the exam shown on the exam tab.
type ExamHeader struct {
	ExamID    string `json:"examId"`
	Total     int    `json:"total"`
	Answered  int    `json:"answered"`
	Submitted bool   `json:"submitted"`
	Score     int    `json:"score"`
	Passed    bool   `json:"passed"`
	Threshold int    `json:"threshold"`
}

// View is everything a renderer needs for one client.
type View struct {
	Tab    Tab         `json:"tab"`
	Search string      `json:"search"`
	Title  string      `json:"title,omitempty"`
	Cards  []CardView  `json:"cards"`
	Exam   *ExamHeader `json:"exam,omitempty"`
	Empty  bool        `json:"empty"`
}

// DeriveCardView computes the display model of a question for the current state.
// Styling decisions live here as data; rendering is left to the client.
func DeriveCardView(q domain.Question, s State, progress domain.ProgressState) CardView {
	card := CardView{
		QuestionID: q.ID,
		Prompt:     q.Prompt,
		Badge:      BadgePending,
		Options:    make([]OptionView, 0, len(q.Options)),
		Favorite:   slices.Contains(progress.Favorites, q.ID),
		History:    progress.QuestionHistory[q.ID],
	}

	var (
		selected domain.Letter
		revealed bool
	)
	if s.Tab.IsExam() && s.Exam != nil {
		selected = s.Exam.Answers[q.ID]
		revealed = s.Exam.Phase == PhaseSubmitted
	} else if answer, ok := s.Study[q.ID]; ok {
		selected = answer.Selected
		revealed = true
	}

	for i, text := range q.Options {
		letter, _ := domain.LetterAt(i)
		opt := OptionView{Letter: letter, Text: text, Tone: ToneNeutral, Disabled: revealed}
		switch {
		case !revealed && letter == selected:
			opt.Tone = ToneSelected
		case !revealed:
		case letter == q.Answer:
			opt.Tone = ToneCorrect
		case letter == selected:
			opt.Tone = ToneWrong
		default:
			opt.Tone = ToneDimmed
		}
		card.Options = append(card.Options, opt)
	}

	if revealed {
		card.ShowExplanation = true
		card.Explanation = q.Explanation
		card.Badge = BadgeIncorrect
		if q.IsCorrect(selected) {
			card.Badge = BadgeCorrect
		}
	}
	return card
}

// VisibleQuestions returns the questions of the active tab after the search filter.
// A missing task yields no content.
func VisibleQuestions(s State, bank QuestionBank) []domain.Question {
	var questions []domain.Question
	if s.Tab.IsExam() {
		if s.Exam != nil {
			questions = s.Exam.Set.Questions
		}
	} else if id, ok := s.Tab.TaskID(); ok {
		if task, ok := bank.Task(id); ok {
			questions = task.Questions
		}
	}
	return catalog.Search(questions, s.Search)
}

// DeriveView builds the full read model for a client.
func DeriveView(s State, bank QuestionBank, progress domain.ProgressState) View {
	questions := VisibleQuestions(s, bank)
	view := View{
		Tab:    s.Tab,
		Search: s.Search,
		Cards:  make([]CardView, 0, len(questions)),
		Empty:  len(questions) == 0,
	}
	for _, q := range questions {
		view.Cards = append(view.Cards, DeriveCardView(q, s, progress))
	}

	if id, ok := s.Tab.TaskID(); ok {
		if task, ok := bank.Task(id); ok {
			view.Title = task.Title
		}
	}
	if s.Tab.IsExam() && s.Exam != nil {
		view.Exam = &ExamHeader{
			ExamID:    s.Exam.Set.ID,
			Total:     len(s.Exam.Set.Questions),
			Answered:  len(s.Exam.Answers),
			Submitted: s.Exam.Phase == PhaseSubmitted,
			Score:     s.Exam.Score,
			Passed:    s.Exam.Passed,
			Threshold: PassThreshold,
		}
	}
	return view
}
