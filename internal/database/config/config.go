// Package config provides database configuration management.
package config

import (
	"fmt"
	"strings"
	"time"

	appConfig "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/database/pool"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/pkg/retry"
)

// Config holds database connection configuration.
type Config struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
	// SlowQueryThreshold is the duration above which queries are logged as slow.
	SlowQueryThreshold time.Duration
	// MigrationsPath is the directory holding golang-migrate SQL files.
	MigrationsPath string
	// Pool holds connection pool settings.
	Pool pool.Config
	// Retry is the retry strategy used while connecting.
	Retry retry.Config
}

// BuildDSN constructs PostgreSQL DSN string from configuration.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Host:               appConfig.GetEnv("DB_HOST", "localhost"),
		User:               appConfig.GetEnv("DB_USER", "postgres"),
		Password:           appConfig.GetEnv("DB_PASSWORD", "postgres"),
		DBName:             appConfig.GetEnv("DB_NAME", "pr_analyzer"),
		Port:               appConfig.GetEnv("DB_PORT", "5432"),
		SSLMode:            appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone:           appConfig.GetEnv("DB_TIMEZONE", "UTC"),
		SlowQueryThreshold: appConfig.GetEnvDuration("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
		MigrationsPath:     appConfig.GetEnv("MIGRATIONS_PATH", "migrations"),
		Pool:               LoadPoolConfigFromEnv(),
		Retry:              LoadRetryConfigFromEnv(),
	}
}

// LoadPoolConfigFromEnv loads connection pool configuration from environment variables.
func LoadPoolConfigFromEnv() pool.Config {
	cfg := pool.DefaultPoolConfig()
	cfg.MaxOpenConns = appConfig.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.MaxIdleConns = appConfig.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns)
	cfg.ConnMaxLifetime = appConfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime)
	cfg.ConnMaxIdleTime = appConfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime)
	return cfg
}

// LoadRetryConfigFromEnv loads retry configuration from environment variables.
func LoadRetryConfigFromEnv() retry.Config {
	cfg := retry.PostgresConfig()
	cfg.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	cfg.Multiplier = appConfig.GetEnvFloat("DB_RETRY_MULTIPLIER", cfg.Multiplier)
	return cfg
}

// SanitizeError removes sensitive information (password) from error messages.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	errMsg := err.Error()
	if cfg.Password != "" {
		errMsg = strings.ReplaceAll(errMsg, cfg.Password, "***")
	}
	return fmt.Errorf("failed to connect to database: %s", errMsg)
}
