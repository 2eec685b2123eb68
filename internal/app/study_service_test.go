package app_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"ccse-study-service/internal/app"
	"ccse-study-service/internal/catalog"
	"ccse-study-service/internal/domain"
	"ccse-study-service/internal/infra/memory"
	"ccse-study-service/internal/progress"
)

func newTestService() (*app.StudyService, *progress.Tracker, *catalog.Catalog) {
	cat := catalog.Builtin()
	tracker := progress.NewTracker(memory.NewLocalStore(), cat)
	tracker.Load(context.Background())
	generator := app.NewGeneratorWithSource(rand.NewPCG(1, 2))
	service := app.NewStudyService(memory.NewSessionStore(), cat, tracker, generator, nil)
	return service, tracker, cat
}

func TestOpenStartsOnFirstTask(t *testing.T) {
	service, _, cat := newTestService()

	view := service.Open(context.Background(), "c1")
	task, _ := cat.Task(1)
	if view.Tab != app.TaskTab(1) {
		t.Fatalf("expected tab 1, got %q", view.Tab)
	}
	if len(view.Cards) != len(task.Questions) || view.Title != task.Title {
		t.Fatalf("unexpected view: %d cards, title %q", len(view.Cards), view.Title)
	}
	if view.Exam != nil {
		t.Fatalf("no exam before the exam tab is opened")
	}
}

func TestSelectExamTabGeneratesOnce(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService()
	service.Open(ctx, "c1")

	view, err := service.SelectTab(ctx, "c1", app.ExamTab)
	if err != nil {
		t.Fatalf("select exam: %v", err)
	}
	if view.Exam == nil || view.Exam.Total != 21 || len(view.Cards) != 21 {
		t.Fatalf("expected a 21 question exam, got %+v", view.Exam)
	}
	examID := view.Exam.ExamID

	if _, err := service.SelectTab(ctx, "c1", app.TaskTab(2)); err != nil {
		t.Fatalf("select task: %v", err)
	}
	view, err = service.SelectTab(ctx, "c1", app.ExamTab)
	if err != nil {
		t.Fatalf("reselect exam: %v", err)
	}
	if view.Exam.ExamID != examID {
		t.Fatalf("returning to the exam tab must keep the exam")
	}

	view, err = service.RegenerateExam(ctx, "c1")
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if view.Exam.ExamID == examID || view.Exam.Answered != 0 {
		t.Fatalf("expected a fresh exam, got %+v", view.Exam)
	}
}

func TestSubmitExamRecordsOnce(t *testing.T) {
	ctx := context.Background()
	service, tracker, cat := newTestService()
	service.Open(ctx, "c1")
	view, err := service.SelectTab(ctx, "c1", app.ExamTab)
	if err != nil {
		t.Fatalf("select exam: %v", err)
	}

	for _, card := range view.Cards[:15] {
		q, _ := cat.Question(card.QuestionID)
		if _, err := service.Answer(ctx, "c1", q.ID, q.Answer); err != nil {
			t.Fatalf("answer %d: %v", q.ID, err)
		}
	}

	result, view, err := service.SubmitExam(ctx, "c1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 15 || result.Total != 21 || !result.Passed {
		t.Fatalf("unexpected result %+v", result)
	}
	if !view.Exam.Submitted {
		t.Fatalf("expected submitted header")
	}

	again, _, err := service.SubmitExam(ctx, "c1")
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if again.Score != result.Score {
		t.Fatalf("second submit must return the frozen result")
	}

	stats := tracker.Snapshot().Stats
	want := domain.Stats{ExamsTaken: 1, ExamsPassed: 1, TotalQuestionsAnswered: 21, TotalCorrect: 15}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
	if len(tracker.Snapshot().QuestionHistory) != 21 {
		t.Fatalf("expected every exam question in the history")
	}

	if _, err := service.AnswerExam(ctx, "c1", view.Cards[20].QuestionID, domain.LetterA); !app.IsRejection(err) {
		t.Fatalf("expected rejection after submit, got %v", err)
	}
}

func TestStudyAnswerLocks(t *testing.T) {
	ctx := context.Background()
	service, tracker, cat := newTestService()
	service.Open(ctx, "c1")
	q, _ := cat.Question(1001)

	answer, view, err := service.AnswerStudy(ctx, "c1", q.ID, q.Answer)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !answer.Correct || view.Cards[0].Badge != app.BadgeCorrect || !view.Cards[0].ShowExplanation {
		t.Fatalf("expected a revealed correct card, got %+v", view.Cards[0])
	}

	other := domain.LetterA
	if q.Answer == domain.LetterA {
		other = domain.LetterB
	}
	prev, _, err := service.AnswerStudy(ctx, "c1", q.ID, other)
	if !app.IsRejection(err) || prev.Selected != q.Answer {
		t.Fatalf("expected locked answer %q, got %+v err=%v", q.Answer, prev, err)
	}
	if got := tracker.QuestionStats(q.ID); got != (domain.QuestionStats{Seen: 1}) {
		t.Fatalf("expected one recorded interaction, got %+v", got)
	}
}

func TestToggleFavoriteShowsInView(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService()
	service.Open(ctx, "c1")

	fav, view, err := service.ToggleFavorite(ctx, "c1", 1001)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !fav || !view.Cards[0].Favorite {
		t.Fatalf("expected question 1001 to be a favorite")
	}
	fav, _, err = service.ToggleFavorite(ctx, "c1", 1001)
	if err != nil || fav {
		t.Fatalf("expected toggle off, got fav=%v err=%v", fav, err)
	}
}

func TestUnknownClient(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService()

	if _, err := service.Search(ctx, "ghost", "x"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	service.Open(ctx, "c1")
	service.Close(ctx, "c1")
	if _, err := service.View(ctx, "c1"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after close, got %v", err)
	}
}
