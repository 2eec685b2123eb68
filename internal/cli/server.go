package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ccse-study-service/internal/app"
	"ccse-study-service/internal/config"
	"ccse-study-service/internal/identity"
	"ccse-study-service/internal/infra/memory"
	redisstore "ccse-study-service/internal/infra/redis"
	transport "ccse-study-service/internal/transport/http"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the study service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	local, err := openLocalStore(cfg)
	if err != nil {
		return err
	}
	defer local.Close()

	redisClient := newRedisClient(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}
	pool, err := connectPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	cat := loadCatalog(ctx, pool)
	remote, err := remoteStore(cfg, redisClient, pool)
	if err != nil {
		return err
	}
	tracker := newTracker(ctx, cfg, local, cat, remote)
	defer tracker.Wait()

	var store app.SessionRepository
	if redisClient != nil {
		store = redisstore.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	} else {
		store = memory.NewSessionStore()
	}
	service := app.NewStudyService(store, cat, tracker, app.NewGenerator(), distribution(cfg))

	var verifier transport.IdentityVerifier
	if cfg.Identity.Secret != "" {
		verifier = identity.NewVerifier(cfg.Identity.Secret)
	}
	wsHandler := transport.NewWSHandler(service, tracker, verifier)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(cat, tracker, wsHandler, cfg.Server.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting study service on :%s (%d questions)", finalPort, len(cat.AllQuestions()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
