package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	closers []func() error
	redis   *redis.Client
	http    *http.Server

	warmer    *question.CacheWarmer
	bgCancels []context.CancelFunc
}

// New bootstraps logger, record store, optional Redis cache and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting application bootstrap")

	a := &Application{
		cfg:       cfg,
		logger:    logger,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	var cache question.CategoryCache
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cache = question.NewCache(a.redis, cfg.Redis.KeyPrefix, cfg.Runtime.CategoryCacheTTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("category cache enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not configured; category cache disabled")
	}

	questionSvc := question.NewService(store, cache, logger, question.ServiceOptions{
		PageSize: cfg.Runtime.QuestionsPerPage,
	})
	quizSvc := quiz.NewService(store, quiz.NewSelector(), logger)

	if cache != nil {
		a.warmer = question.NewCacheWarmer(questionSvc, cfg.Runtime.CacheRefreshInterval, cfg.Runtime.StoreTimeout, logger)
	}

	a.http = server.NewHTTPServer(cfg, logger, server.Deps{
		Store:     store,
		Redis:     a.redis,
		Questions: question.NewHTTPHandlers(questionSvc, logger),
		Quizzes:   quiz.NewHTTPHandlers(quizSvc, logger),
	})

	return a, nil
}

// OpenStore builds the record store selected by cfg. The returned close
// function releases its connections.
func OpenStore(ctx context.Context, cfg *config.App) (question.Store, func() error, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return repository.NewQuestionRepository(pool), func() error { pool.Close(); return nil }, nil
	case config.DriverSQLite:
		repo, err := repository.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLite.Path, err)
		}
		return repo, repo.Close, nil
	case config.DriverMemory:
		return memory.NewStore(question.DefaultCategories), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func (a *Application) openStore(ctx context.Context) (question.Store, error) {
	store, closeFn, err := OpenStore(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeFn)
	return store, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Error().Err(err).Msg("store shutdown error")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.warmer != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.warmer.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("category cache warmer stopped")
			}
		}()
	}
}
