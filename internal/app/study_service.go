package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"ccse-study-service/internal/domain"
)

// SessionRepository abstracts where per-client sessions live (in-memory, Redis-marked, etc).
type SessionRepository interface {
	GetOrCreate(clientID string) *Session
	Get(clientID string) (*Session, bool)
	Delete(clientID string)
}

// ProgressRecorder is the progress store as seen by the study controller.
type ProgressRecorder interface {
	Snapshot() domain.ProgressState
	ToggleFavorite(ctx context.Context, questionID int) (bool, error)
	RecordExamResult(ctx context.Context, passed bool, score, total int) error
	RecordQuestionInteraction(ctx context.Context, questionID int, correct bool) error
}

// StudyService owns client sessions and turns UI events into state transitions
// and progress updates.
type StudyService struct {
	sessions     SessionRepository
	bank         QuestionBank
	progress     ProgressRecorder
	generator    *Generator
	distribution domain.Distribution
}

func NewStudyService(sessions SessionRepository, bank QuestionBank, progress ProgressRecorder, generator *Generator, dist domain.Distribution) *StudyService {
	if len(dist) == 0 {
		dist = DefaultDistribution
	}
	if generator == nil {
		generator = NewGenerator()
	}
	return &StudyService{
		sessions:     sessions,
		bank:         bank,
		progress:     progress,
		generator:    generator,
		distribution: dist,
	}
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string) *Session {
	return newSessionWithClock(id, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id string, now func() time.Time) *Session {
	return newSessionWithClock(id, now)
}

// Open registers a client (or resumes it) and returns its current view.
func (s *StudyService) Open(_ context.Context, clientID string) View {
	session := s.sessions.GetOrCreate(clientID)
	return s.view(session.State())
}

// View returns the current read model of a client.
func (s *StudyService) View(_ context.Context, clientID string) (View, error) {
	session, ok := s.sessions.Get(clientID)
	if !ok {
		return View{}, domain.ErrSessionNotFound
	}
	return s.view(session.State()), nil
}

// SelectTab switches tabs. Opening the exam tab for the first time draws an exam.
func (s *StudyService) SelectTab(_ context.Context, clientID string, tab Tab) (View, error) {
	session, ok := s.sessions.Get(clientID)
	if !ok {
		return View{}, domain.ErrSessionNotFound
	}
	state, err := session.update(func(st State) (State, error) {
		next, err := Reduce(st, SelectTab{Tab: tab})
		if err != nil || !tab.IsExam() || next.Exam != nil {
			return next, err
		}
		return Reduce(next, ExamGenerated{Set: s.generator.Generate(s.bank, s.distribution)})
	})
	if err != nil {
		return View{}, err
	}
	return s.view(state), nil
}

// Search updates the client's search filter.
func (s *StudyService) Search(_ context.Context, clientID, query string) (View, error) {
	return s.dispatch(clientID, SetSearch{Query: query})
}

// RegenerateExam draws a fresh exam, discarding answers and any submission.
func (s *StudyService) RegenerateExam(_ context.Context, clientID string) (View, error) {
	set := s.generator.Generate(s.bank, s.distribution)
	return s.dispatch(clientID, ExamGenerated{Set: set})
}

// Answer routes an option click to exam or study mode depending on the active tab.
func (s *StudyService) Answer(ctx context.Context, clientID string, questionID int, letter domain.Letter) (View, error) {
	session, ok := s.sessions.Get(clientID)
	if !ok {
		return View{}, domain.ErrSessionNotFound
	}
	if session.State().Tab.IsExam() {
		return s.AnswerExam(ctx, clientID, questionID, letter)
	}
	_, view, err := s.AnswerStudy(ctx, clientID, questionID, letter)
	return view, err
}

// AnswerExam records an exam answer. Progress is only touched on submission.
func (s *StudyService) AnswerExam(_ context.Context, clientID string, questionID int, letter domain.Letter) (View, error) {
	return s.dispatch(clientID, AnswerExam{QuestionID: questionID, Letter: letter})
}

// SubmitExam grades the exam. The first submission records the result and
// every question's interaction; later calls return the frozen result.
func (s *StudyService) SubmitExam(ctx context.Context, clientID string) (domain.ExamResult, View, error) {
	session, ok := s.sessions.Get(clientID)
	if !ok {
		return domain.ExamResult{}, View{}, domain.ErrSessionNotFound
	}

	var transitioned bool
	state, err := session.update(func(st State) (State, error) {
		transitioned = st.Exam != nil && st.Exam.Phase == PhaseCollecting
		return Reduce(st, SubmitExam{})
	})
	if err != nil {
		return domain.ExamResult{}, View{}, err
	}

	result := state.Exam.Result()
	if transitioned {
		s.recordExam(ctx, result)
	}
	return result, s.view(state), nil
}

func (s *StudyService) recordExam(ctx context.Context, result domain.ExamResult) {
	if err := s.progress.RecordExamResult(ctx, result.Passed, result.Score, result.Total); err != nil {
		log.Printf("record exam result: %v", err)
	}
	for _, outcome := range result.Outcomes {
		if err := s.progress.RecordQuestionInteraction(ctx, outcome.QuestionID, outcome.Correct); err != nil {
			log.Printf("record interaction for question %d: %v", outcome.QuestionID, err)
		}
	}
}

// AnswerStudy scores a study question immediately and records the interaction.
// A question can be answered once; re-answering returns ErrAlreadyAnswered.
func (s *StudyService) AnswerStudy(ctx context.Context, clientID string, questionID int, letter domain.Letter) (StudyAnswer, View, error) {
	q, ok := s.bank.Question(questionID)
	if !ok {
		return StudyAnswer{}, View{}, domain.ErrQuestionNotFound
	}
	session, ok := s.sessions.Get(clientID)
	if !ok {
		return StudyAnswer{}, View{}, domain.ErrSessionNotFound
	}

	state, err := session.update(func(st State) (State, error) {
		return Reduce(st, AnswerStudy{Question: q, Letter: letter})
	})
	if err != nil {
		return state.Study[questionID], View{}, err
	}

	answer := state.Study[questionID]
	if err := s.progress.RecordQuestionInteraction(ctx, questionID, answer.Correct); err != nil {
		log.Printf("record interaction for question %d: %v", questionID, err)
	}
	return answer, s.view(state), nil
}

// ToggleFavorite flips a question's favorite flag and returns the refreshed view.
func (s *StudyService) ToggleFavorite(ctx context.Context, clientID string, questionID int) (bool, View, error) {
	session, ok := s.sessions.Get(clientID)
	if !ok {
		return false, View{}, domain.ErrSessionNotFound
	}
	fav, err := s.progress.ToggleFavorite(ctx, questionID)
	if err != nil {
		return false, View{}, err
	}
	return fav, s.view(session.State()), nil
}

// Close drops a client's session.
func (s *StudyService) Close(_ context.Context, clientID string) {
	s.sessions.Delete(clientID)
}

func (s *StudyService) dispatch(clientID string, action Action) (View, error) {
	session, ok := s.sessions.Get(clientID)
	if !ok {
		return View{}, domain.ErrSessionNotFound
	}
	state, err := session.update(func(st State) (State, error) {
		return Reduce(st, action)
	})
	if err != nil {
		return View{}, err
	}
	return s.view(state), nil
}

func (s *StudyService) view(state State) View {
	return DeriveView(state, s.bank, s.progress.Snapshot())
}

// IsRejection reports whether err is an ignored UI action rather than a failure.
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrAlreadySubmitted) ||
		errors.Is(err, domain.ErrAlreadyAnswered) ||
		errors.Is(err, domain.ErrQuestionNotInExam) ||
		errors.Is(err, domain.ErrInvalidOption)
}

// Session is the state of one UI client.
type Session struct {
	id        string
	createdAt time.Time
	now       func() time.Time
	mu        sync.RWMutex
	state     State
	updatedAt time.Time
}

func newSessionWithClock(id string, now func() time.Time) *Session {
	created := now()
	return &Session{
		id:        id,
		createdAt: created,
		now:       now,
		state:     NewState(),
		updatedAt: created,
	}
}

// ID returns the client id the session belongs to.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// UpdatedAt reports when the session last changed.
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// update runs fn under the session lock; rejected transitions keep the old state.
func (s *Session) update(fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}
	s.state = next
	s.updatedAt = s.now()
	return next, nil
}
