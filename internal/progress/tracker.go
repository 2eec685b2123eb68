package progress

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"ccse-study-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// StorageKey is the local key holding the whole progress document.
const StorageKey = "ccse_user_progress_v1"

// LocalStore is durable key-value storage on the learner's machine.
type LocalStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// RemoteStore mirrors progress per identity.
// Pull returns false when no document exists yet. Push merges the snapshot
// field by field into the remote document; sibling fields survive.
type RemoteStore interface {
	Pull(ctx context.Context, identity string) (domain.ProgressState, bool, error)
	Push(ctx context.Context, identity string, state domain.ProgressState) error
}

// QuestionIndex validates question ids against the catalog.
type QuestionIndex interface {
	HasQuestion(id int) bool
}

// Tracker is the progress store: an in-memory state written through to local
// storage on every mutation and mirrored to a remote store while signed in.
type Tracker struct {
	local       LocalStore
	remote      RemoteStore
	index       QuestionIndex
	syncTimeout time.Duration

	mu       sync.RWMutex
	state    domain.ProgressState
	identity string

	pulls    singleflight.Group
	inflight sync.WaitGroup
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithRemote enables remote mirroring once an identity signs in.
func WithRemote(remote RemoteStore) Option {
	return func(t *Tracker) { t.remote = remote }
}

// WithSyncTimeout bounds each remote call.
func WithSyncTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.syncTimeout = d
		}
	}
}

func NewTracker(local LocalStore, index QuestionIndex, opts ...Option) *Tracker {
	t := &Tracker{
		local:       local,
		index:       index,
		syncTimeout: 10 * time.Second,
		state:       domain.NewProgressState(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads the local document. Missing, unreadable or invalid documents
// yield fresh defaults; the learner is treated as new.
func (t *Tracker) Load(ctx context.Context) domain.ProgressState {
	state := domain.NewProgressState()
	raw, ok, err := t.local.Get(ctx, StorageKey)
	switch {
	case err != nil:
		log.Printf("read local progress: %v", err)
	case ok:
		decoded, err := Decode(raw)
		if err != nil {
			log.Printf("discarding local progress: %v", err)
			break
		}
		state = Normalize(decoded, t.index)
	}

	t.mu.Lock()
	t.state = state
	t.mu.Unlock()
	return state.Clone()
}

// Save replaces the whole state and persists it.
func (t *Tracker) Save(ctx context.Context, state domain.ProgressState) {
	t.mu.Lock()
	t.state = Normalize(state, t.index)
	snap, identity := t.persistLocked(ctx)
	t.mu.Unlock()
	t.pushAsync(identity, snap)
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() domain.ProgressState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Clone()
}

// IsFavorite reports whether the question is a favorite.
func (t *Tracker) IsFavorite(questionID int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, found := slices.BinarySearch(t.state.Favorites, questionID)
	return found
}

// QuestionStats returns the history of a question; unseen questions report zeros.
func (t *Tracker) QuestionStats(questionID int) domain.QuestionStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.QuestionHistory[questionID]
}

// ToggleFavorite flips membership of the question in the favorites set and
// reports whether it is now a favorite.
func (t *Tracker) ToggleFavorite(ctx context.Context, questionID int) (bool, error) {
	if !t.index.HasQuestion(questionID) {
		return false, domain.ErrQuestionNotFound
	}

	t.mu.Lock()
	favs := t.state.Favorites
	idx, found := slices.BinarySearch(favs, questionID)
	if found {
		t.state.Favorites = slices.Delete(slices.Clone(favs), idx, idx+1)
	} else {
		t.state.Favorites = slices.Insert(slices.Clone(favs), idx, questionID)
	}
	snap, identity := t.persistLocked(ctx)
	t.mu.Unlock()

	t.pushAsync(identity, snap)
	return !found, nil
}

// RecordExamResult adds one exam to the aggregate counters.
func (t *Tracker) RecordExamResult(ctx context.Context, passed bool, score, total int) error {
	if score < 0 || total < 0 || score > total {
		return fmt.Errorf("%w: score %d of %d", domain.ErrInvalidProgress, score, total)
	}

	t.mu.Lock()
	t.state.Stats.ExamsTaken++
	if passed {
		t.state.Stats.ExamsPassed++
	}
	t.state.Stats.TotalQuestionsAnswered += total
	t.state.Stats.TotalCorrect += score
	snap, identity := t.persistLocked(ctx)
	t.mu.Unlock()

	t.pushAsync(identity, snap)
	return nil
}

// RecordQuestionInteraction counts one exposure of a question, and a mistake
// when the answer was wrong. The entry is created on first use.
func (t *Tracker) RecordQuestionInteraction(ctx context.Context, questionID int, correct bool) error {
	if !t.index.HasQuestion(questionID) {
		return domain.ErrQuestionNotFound
	}

	t.mu.Lock()
	stats := t.state.QuestionHistory[questionID]
	stats.Seen++
	if !correct {
		stats.Incorrect++
	}
	t.state.QuestionHistory[questionID] = stats
	snap, identity := t.persistLocked(ctx)
	t.mu.Unlock()

	t.pushAsync(identity, snap)
	return nil
}

// Identity returns the signed-in identity, or "" when anonymous.
func (t *Tracker) Identity() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.identity
}

// SignIn activates remote mirroring for identity. An existing remote document
// replaces the local state wholesale; otherwise the local state becomes the
// initial remote document. If the pull fails the identity stays inactive so
// local progress never overwrites an unseen remote copy.
func (t *Tracker) SignIn(ctx context.Context, identity string) error {
	if identity == "" {
		return domain.ErrInvalidIdentity
	}
	if t.remote == nil {
		t.mu.Lock()
		t.identity = identity
		t.mu.Unlock()
		return nil
	}

	type pulled struct {
		state domain.ProgressState
		found bool
	}
	res, err, _ := t.pulls.Do(identity, func() (interface{}, error) {
		pullCtx, cancel := context.WithTimeout(ctx, t.syncTimeout)
		defer cancel()
		state, found, err := t.remote.Pull(pullCtx, identity)
		return pulled{state: state, found: found}, err
	})
	if err != nil {
		return fmt.Errorf("pull remote progress: %w", err)
	}
	remote := res.(pulled)

	t.mu.Lock()
	t.identity = identity
	if remote.found {
		t.state = Normalize(remote.state, t.index)
		t.persistLocked(ctx)
		t.mu.Unlock()
		return nil
	}
	snap := t.state.Clone()
	t.mu.Unlock()

	pushCtx, cancel := context.WithTimeout(ctx, t.syncTimeout)
	defer cancel()
	if err := t.remote.Push(pushCtx, identity, snap); err != nil {
		log.Printf("seed remote progress for %s: %v", identity, err)
	}
	return nil
}

// SignOut stops remote mirroring. Local progress is kept.
func (t *Tracker) SignOut() {
	t.mu.Lock()
	t.identity = ""
	t.mu.Unlock()
}

// Wait blocks until in-flight remote writes have finished.
func (t *Tracker) Wait() {
	t.inflight.Wait()
}

// persistLocked writes the current state locally and returns the snapshot to
// mirror. Local write failures are logged; memory stays authoritative.
func (t *Tracker) persistLocked(ctx context.Context) (domain.ProgressState, string) {
	snap := t.state.Clone()
	data, err := Encode(snap)
	if err != nil {
		log.Printf("encode progress: %v", err)
		return snap, t.identity
	}
	if err := t.local.Put(ctx, StorageKey, data); err != nil {
		log.Printf("write local progress: %v", err)
	}
	return snap, t.identity
}

// pushAsync mirrors the snapshot without blocking the caller. A push that
// lands after a newer one overwrites it; the next mutation repairs that.
func (t *Tracker) pushAsync(identity string, snap domain.ProgressState) {
	if identity == "" || t.remote == nil {
		return
	}
	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), t.syncTimeout)
		defer cancel()
		if err := t.remote.Push(ctx, identity, snap); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("push remote progress for %s: %v", identity, err)
		}
	}()
}
