// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authBroker "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/broker"
	authRouter "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/router"
	authService "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/service"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
	dbConfig "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/database/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/database/database"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/database/migrate"
	developerRouter "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/developer/router"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/github"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/health"
	insightsRouter "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/insights/router"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/middleware"
	pullRequestRouter "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/pullrequest/router"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/session/repository"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/pkg/logger"
)

const sweepInterval = time.Hour

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, db, err := openSessionStore(ctx, cfg.Session, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if err := database.Close(db); err != nil {
				logger.Warnw("failed to close database", "error", err)
			}
		}()
	}

	broker := authBroker.New(cfg.OAuth, nil, logger)
	auth := authService.New(store, broker, authService.Config{
		Provider:  cfg.OAuth.Provider,
		LoginPath: cfg.OAuth.LoginPath,
	}, logger)
	defer auth.Close()

	factory := github.NewFactory(cfg.GitHub, nil, logger)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Logger(logger), middleware.Recovery(logger))

	r.GET("/health", health.New(logger,
		health.Check{Name: "session_store", Pinger: store},
		health.Check{Name: "auth_broker", Pinger: broker},
	).Check)
	authRouter.RegisterRoutes(r, auth, &cfg, logger)

	guard := middleware.RequireProviderToken(auth, cfg.Session.CookieName, logger)
	developerRouter.RegisterRoutes(r, factory, cfg.GitHub, guard, logger)
	insightsRouter.RegisterRoutes(r, factory, cfg.GitHub, guard, logger)
	pullRequestRouter.RegisterRoutes(r, factory, cfg.GitHub, guard, logger)

	go repository.Sweep(ctx, store, cfg.Session.TTL, sweepInterval, logger)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infow("Server starting", "address", srv.Addr, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infow("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Infow("Server exited")
	return nil
}

// openSessionStore returns the configured session store. The database handle
// is nil for the in-memory store.
func openSessionStore(ctx context.Context, cfg config.SessionConfig, logger *zap.SugaredLogger) (repository.Repository, *gorm.DB, error) {
	if cfg.Store == config.SessionStoreMemory {
		logger.Warnw("Using in-memory session store; sessions are lost on restart")
		return repository.NewMemory(), nil, nil
	}

	dbCfg := dbConfig.LoadConfigFromEnv()
	db, err := database.NewWithConfig(ctx, dbCfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	dir, err := migrate.ResolvePath(dbCfg.MigrationsPath)
	if err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}
	if err := migrate.Migrate(db, dir, logger); err != nil {
		_ = database.Close(db)
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return repository.New(db, logger), db, nil
}
