package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"ccse-study-service/internal/domain"
)

// LocalStore is an in-memory key-value store (useful for tests/demos).
type LocalStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int
}

func NewLocalStore() *LocalStore {
	return &LocalStore{values: make(map[string][]byte)}
}

func (s *LocalStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *LocalStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.values[key] = v
	s.writes++
	return nil
}

// Writes counts Put calls.
func (s *LocalStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// ErrUnavailable simulates a remote outage.
var ErrUnavailable = errors.New("remote store unavailable")

// RemoteStore keeps one document per identity as a set of top-level JSON
// fields, merging pushes field by field like the Redis and Postgres stores.
type RemoteStore struct {
	mu     sync.RWMutex
	docs   map[string]map[string]json.RawMessage
	pushes int
	down   bool
}

func NewRemoteStore() *RemoteStore {
	return &RemoteStore{docs: make(map[string]map[string]json.RawMessage)}
}

// SetUnavailable makes every call fail until reset.
func (s *RemoteStore) SetUnavailable(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

func (s *RemoteStore) Pull(_ context.Context, identity string) (domain.ProgressState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.down {
		return domain.ProgressState{}, false, ErrUnavailable
	}
	doc, ok := s.docs[identity]
	if !ok {
		return domain.ProgressState{}, false, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return domain.ProgressState{}, false, err
	}
	state := domain.NewProgressState()
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.ProgressState{}, false, err
	}
	return state, true, nil
}

func (s *RemoteStore) Push(_ context.Context, identity string, state domain.ProgressState) error {
	fields, err := splitFields(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return ErrUnavailable
	}
	doc, ok := s.docs[identity]
	if !ok {
		doc = make(map[string]json.RawMessage)
		s.docs[identity] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	s.pushes++
	return nil
}

// SetField writes a raw top-level field, e.g. one owned by another client.
func (s *RemoteStore) SetField(identity, field string, value json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[identity]
	if !ok {
		doc = make(map[string]json.RawMessage)
		s.docs[identity] = doc
	}
	doc[field] = value
}

// Field returns a raw top-level field of a document.
func (s *RemoteStore) Field(identity, field string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.docs[identity][field]
	return v, ok
}

// Pushes counts successful pushes.
func (s *RemoteStore) Pushes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pushes
}

func splitFields(state domain.ProgressState) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
