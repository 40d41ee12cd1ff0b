package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		for _, key := range []string{"DB_HOST", "DB_USER", "DB_NAME", "DB_PORT", "MIGRATIONS_PATH", "DB_MAX_OPEN_CONNS"} {
			t.Setenv(key, "")
		}

		cfg := LoadConfigFromEnv()
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, "postgres", cfg.User)
		assert.Equal(t, "pr_analyzer", cfg.DBName)
		assert.Equal(t, "5432", cfg.Port)
		assert.Equal(t, "migrations", cfg.MigrationsPath)
		assert.Equal(t, 25, cfg.Pool.MaxOpenConns)
		assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_NAME", "analytics")
		t.Setenv("DB_SLOW_QUERY_THRESHOLD", "1s")
		t.Setenv("MIGRATIONS_PATH", "/srv/migrations")
		t.Setenv("DB_MAX_OPEN_CONNS", "10")
		t.Setenv("DB_MAX_IDLE_CONNS", "2")
		t.Setenv("DB_RETRY_MAX_ATTEMPTS", "2")
		t.Setenv("DB_RETRY_INITIAL_DELAY", "250ms")

		cfg := LoadConfigFromEnv()
		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, "analytics", cfg.DBName)
		assert.Equal(t, time.Second, cfg.SlowQueryThreshold)
		assert.Equal(t, "/srv/migrations", cfg.MigrationsPath)
		assert.Equal(t, 10, cfg.Pool.MaxOpenConns)
		assert.Equal(t, 2, cfg.Pool.MaxIdleConns)
		assert.Equal(t, 2, cfg.Retry.MaxAttempts)
		assert.Equal(t, 250*time.Millisecond, cfg.Retry.InitialDelay)
		assert.NotEmpty(t, cfg.Retry.RetryableErrors)
	})
}

func TestBuildDSN(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		User:     "postgres",
		Password: "secret",
		DBName:   "pr_analyzer",
		Port:     "5432",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=pr_analyzer port=5432 sslmode=disable TimeZone=UTC",
		BuildDSN(cfg))
}

func TestSanitizeError(t *testing.T) {
	cfg := Config{Host: "localhost", User: "postgres", Password: "s3cr3t", DBName: "pr_analyzer"}

	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, SanitizeError(nil, cfg))
	})

	t.Run("password removed", func(t *testing.T) {
		err := SanitizeError(errors.New("auth failed for "+BuildDSN(cfg)), cfg)
		assert.Error(t, err)
		assert.NotContains(t, err.Error(), "s3cr3t")
		assert.Contains(t, err.Error(), "password=***")
		assert.Contains(t, err.Error(), "failed to connect to database")
	})

	t.Run("empty password leaves message intact", func(t *testing.T) {
		err := SanitizeError(errors.New("dial tcp: connection refused"), Config{})
		assert.Contains(t, err.Error(), "dial tcp: connection refused")
	})
}
