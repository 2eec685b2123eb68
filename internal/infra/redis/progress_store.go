package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ccse-study-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ProgressStore mirrors learner progress in Redis, one hash per identity:
//
//	HSET progress:{identity} stats {...} favorites [...] questionHistory {...} updatedAt {rfc3339}
//
// Each top-level field of the document is its own hash field, so a push only
// overwrites the fields it carries and leaves any others untouched.
type ProgressStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewProgressStore(client *redis.Client) *ProgressStore {
	return &ProgressStore{client: client, now: time.Now}
}

func (s *ProgressStore) Pull(ctx context.Context, identity string) (domain.ProgressState, bool, error) {
	fields, err := s.client.HGetAll(ctx, s.key(identity)).Result()
	if err != nil {
		return domain.ProgressState{}, false, fmt.Errorf("hgetall progress: %w", err)
	}
	// the hash may hold only sibling fields; without stats there is no progress document
	if _, ok := fields["stats"]; !ok {
		return domain.ProgressState{}, false, nil
	}

	doc := make(map[string]json.RawMessage, len(fields))
	for _, name := range documentFields {
		if raw, ok := fields[name]; ok {
			doc[name] = json.RawMessage(raw)
		}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return domain.ProgressState{}, false, err
	}
	state := domain.NewProgressState()
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.ProgressState{}, false, fmt.Errorf("decode progress hash: %w", err)
	}
	return state, true, nil
}

func (s *ProgressStore) Push(ctx context.Context, identity string, state domain.ProgressState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	values := make(map[string]interface{}, len(doc)+1)
	for name, v := range doc {
		values[name] = string(v)
	}
	values["updatedAt"] = s.now().UTC().Format(time.RFC3339Nano)

	if err := s.client.HSet(ctx, s.key(identity), values).Err(); err != nil {
		return fmt.Errorf("hset progress: %w", err)
	}
	return nil
}

var documentFields = []string{"stats", "favorites", "questionHistory"}

func (s *ProgressStore) key(identity string) string {
	return "progress:" + identity
}
