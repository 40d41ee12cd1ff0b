package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/database/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/database/pool"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/pkg/retry"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func unreachableConfig() config.Config {
	return config.Config{
		Host:     "127.0.0.1",
		User:     "postgres",
		Password: "topsecret",
		DBName:   "pr_analyzer",
		Port:     "1",
		SSLMode:  "disable",
		TimeZone: "UTC",
		Pool:     pool.DefaultPoolConfig(),
		Retry: retry.Config{
			MaxAttempts:     2,
			InitialDelay:    time.Millisecond,
			MaxDelay:        time.Millisecond,
			Multiplier:      1,
			RetryableErrors: retry.DefaultPostgresRetryableErrors(),
		},
	}
}

func TestNewWithConfig_Unreachable(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core).Sugar()

	db, err := NewWithConfig(context.Background(), unreachableConfig(), logger)
	require.Error(t, err)
	assert.Nil(t, db)
	assert.NotContains(t, err.Error(), "topsecret")
	assert.Equal(t, 2, logs.FilterMessage("Database connection attempt failed").Len())
}

func TestNewWithConfig_InvalidPool(t *testing.T) {
	cfg := unreachableConfig()
	cfg.Pool.MaxOpenConns = 0

	db, err := NewWithConfig(context.Background(), cfg, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "invalid pool config")
}

func TestNewWithConfig_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	db, err := NewWithConfig(ctx, unreachableConfig(), zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Nil(t, db)
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy connection", func(t *testing.T) {
		db := openSQLite(t)
		defer func() { _ = Close(db) }()
		assert.NoError(t, HealthCheck(context.Background(), db))
	})

	t.Run("nil connection", func(t *testing.T) {
		err := HealthCheck(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database connection is nil")
	})

	t.Run("closed connection", func(t *testing.T) {
		db := openSQLite(t)
		require.NoError(t, Close(db))

		err := HealthCheck(context.Background(), db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database ping failed")
	})
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close(nil))
	assert.NoError(t, Close(openSQLite(t)))
}

func TestNewGormLogger_WritesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := config.Config{SlowQueryThreshold: time.Nanosecond}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: NewGormLogger(zap.New(core).Sugar(), cfg),
	})
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	require.NoError(t, db.Exec("SELECT 1").Error)
	assert.GreaterOrEqual(t, logs.FilterLoggerName("gorm").Len(), 1)
}
