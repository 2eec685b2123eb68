package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ccse-study-service/internal/domain"
	"ccse-study-service/internal/infra/postgres/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// OpenBun opens a bun handle over pgdriver; used by migrations and seeding.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies every pending migration and returns the applied group.
func Migrate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return group, nil
}

type catalogTaskRow struct {
	bun.BaseModel `bun:"table:catalog_tasks"`

	ID        int               `bun:"id,pk"`
	Title     string            `bun:"title,notnull"`
	Questions []domain.Question `bun:"questions,type:jsonb,notnull"`
}

// SeedCatalog upserts tasks into catalog_tasks and returns the number of rows written.
func SeedCatalog(ctx context.Context, db *bun.DB, tasks []domain.Task) (int, error) {
	if len(tasks) == 0 {
		return 0, nil
	}
	rows := make([]catalogTaskRow, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, catalogTaskRow{ID: int(task.ID), Title: task.Title, Questions: task.Questions})
	}
	res, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("questions = EXCLUDED.questions").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return len(rows), nil
	}
	return int(n), nil
}
