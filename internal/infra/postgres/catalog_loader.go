package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"ccse-study-service/internal/catalog"
	"ccse-study-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads catalog tasks stored as JSONB rows in Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, title, questions FROM catalog_tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var (
			id    int
			title string
			raw   []byte
		)
		if err := rows.Scan(&id, &title, &raw); err != nil {
			return nil, fmt.Errorf("scan catalog task: %w", err)
		}
		task := domain.Task{ID: domain.TaskID(id), Title: title}
		if err := json.Unmarshal(raw, &task.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal task %d: %w", id, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("load catalog: %w: catalog_tasks is empty", domain.ErrTaskNotFound)
	}
	return catalog.New(tasks...)
}
