package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ccse-study-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ProgressStore keeps one JSONB progress document per identity. Pushes merge
// top-level keys (data || excluded.data), so keys written by other clients
// survive.
type ProgressStore struct {
	pool *pgxpool.Pool
}

func NewProgressStore(pool *pgxpool.Pool) *ProgressStore {
	return &ProgressStore{pool: pool}
}

func (s *ProgressStore) Pull(ctx context.Context, identity string) (domain.ProgressState, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM progress_documents WHERE identity=$1`, identity).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ProgressState{}, false, nil
	}
	if err != nil {
		return domain.ProgressState{}, false, fmt.Errorf("load progress: %w", err)
	}
	state := domain.NewProgressState()
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.ProgressState{}, false, fmt.Errorf("unmarshal progress: %w", err)
	}
	return state, true, nil
}

func (s *ProgressStore) Push(ctx context.Context, identity string, state domain.ProgressState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO progress_documents (identity, data, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (identity) DO UPDATE
		SET data = progress_documents.data || EXCLUDED.data, updated_at = now()`,
		identity, string(data))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
