package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"ccse-study-service/internal/app"
	"ccse-study-service/internal/catalog"
	"ccse-study-service/internal/config"
	"ccse-study-service/internal/domain"
	pgstore "ccse-study-service/internal/infra/postgres"
	redisstore "ccse-study-service/internal/infra/redis"
	"ccse-study-service/internal/infra/sqlite"
	"ccse-study-service/internal/progress"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

func openLocalStore(cfg config.Config) (*sqlite.KVStore, error) {
	path := cfg.Storage.Path
	if path == "" {
		var err error
		if path, err = sqlite.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return sqlite.Open(path)
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func connectPostgres(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.Postgres.URL == "" {
		return nil, nil
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

// loadCatalog prefers the database copy and falls back to the built-in dataset.
func loadCatalog(ctx context.Context, pool *pgxpool.Pool) *catalog.Catalog {
	var loader catalog.Loader = catalog.NewStaticLoader()
	if pool != nil {
		loader = pgstore.NewCatalogLoader(pool)
	}
	cat, err := loader.LoadCatalog(ctx)
	if err != nil {
		log.Printf("load catalog from postgres, using built-in: %v", err)
		return catalog.Builtin()
	}
	return cat
}

func remoteStore(cfg config.Config, redisClient *redis.Client, pool *pgxpool.Pool) (progress.RemoteStore, error) {
	switch cfg.Sync.Backend {
	case "":
		return nil, nil
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("sync backend redis requires redis.addr")
		}
		return redisstore.NewProgressStore(redisClient), nil
	case "postgres":
		if pool == nil {
			return nil, fmt.Errorf("sync backend postgres requires postgres.url")
		}
		return pgstore.NewProgressStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown sync backend %q", cfg.Sync.Backend)
	}
}

func newTracker(ctx context.Context, cfg config.Config, local progress.LocalStore, index progress.QuestionIndex, remote progress.RemoteStore) *progress.Tracker {
	opts := []progress.Option{progress.WithSyncTimeout(config.TTLDuration(cfg.Sync.Timeout, 10*time.Second))}
	if remote != nil {
		opts = append(opts, progress.WithRemote(remote))
	}
	tracker := progress.NewTracker(local, index, opts...)
	tracker.Load(ctx)
	return tracker
}

func distribution(cfg config.Config) domain.Distribution {
	if len(cfg.Exam.Distribution) == 0 {
		return app.DefaultDistribution
	}
	return cfg.Exam.Distribution
}
