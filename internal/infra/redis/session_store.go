package redis

import (
	"context"
	"sync"
	"time"

	"ccse-study-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Sessions themselves live in a local map; the controller state is
//     in-process and never serialized here.
//   - Redis marks client liveness so operators can count connected clients
//     across instances (KEYS ccse:session:*).
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(clientID string) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[clientID]; ok {
		s.touch(clientID)
		return session
	}
	session := app.NewSession(clientID)
	s.sessions[clientID] = session
	s.touch(clientID)
	return session
}

func (s *SessionStore) Get(clientID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[clientID]
	return session, ok
}

func (s *SessionStore) Delete(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[clientID]; !ok {
		return
	}
	delete(s.sessions, clientID)
	_ = s.client.Del(context.Background(), s.key(clientID)).Err()
}

// best-effort liveness marker
func (s *SessionStore) touch(clientID string) {
	_ = s.client.Set(context.Background(), s.key(clientID), "1", s.ttl).Err()
}

func (s *SessionStore) key(clientID string) string {
	return "ccse:session:" + clientID
}
