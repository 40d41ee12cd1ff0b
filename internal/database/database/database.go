// Package database provides database connection management for PostgreSQL.
package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/database/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/database/pool"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/pkg/retry"
)

// zapWriter adapts a SugaredLogger to gorm's logger.Writer.
type zapWriter struct {
	logger *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.logger.Infof(format, args...)
}

// NewGormLogger returns a gorm logger that writes slow queries and errors through logger.
func NewGormLogger(logger *zap.SugaredLogger, cfg config.Config) gormlogger.Interface {
	return gormlogger.New(zapWriter{logger: logger.Named("gorm")}, gormlogger.Config{
		SlowThreshold:             cfg.SlowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// New creates a new database connection using environment variables.
func New(ctx context.Context, logger *zap.SugaredLogger) (*gorm.DB, error) {
	return NewWithConfig(ctx, config.LoadConfigFromEnv(), logger)
}

// NewWithConfig opens a PostgreSQL connection, retrying transient failures, and
// configures the connection pool.
func NewWithConfig(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	if err := cfg.Pool.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pool config: %w", err)
	}

	dsn := config.BuildDSN(cfg)
	gormCfg := &gorm.Config{Logger: NewGormLogger(logger, cfg)}

	attempt := 0
	db, err := retry.DoWithResult(ctx, cfg.Retry, func() (*gorm.DB, error) {
		attempt++
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			logger.Warnw("Database connection attempt failed",
				"attempt", attempt,
				"host", cfg.Host,
				"error", config.SanitizeError(err, cfg))
		}
		return db, err
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, cfg.Pool); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	logger.Infow("Connected to database",
		"host", cfg.Host,
		"database", cfg.DBName,
		"attempts", attempt)

	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
