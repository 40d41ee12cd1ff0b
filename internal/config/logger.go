package config

import (
	"fmt"
	"strings"
)

// Log formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	// Level is the minimum level written (debug, info, warn, error).
	Level string
	// Format selects json or console encoding.
	Format string
	// Output is stdout, stderr or a file path. Empty means stdout.
	Output string
	// Sampling throttles repeated entries the way zap's production preset does.
	Sampling bool
}

// LoadLoggerConfigFromEnv loads logger configuration from environment variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:    strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		Format:   strings.ToLower(GetEnv("LOG_FORMAT", LogFormatJSON)),
		Output:   GetEnv("LOG_OUTPUT", "stdout"),
		Sampling: GetEnvBool("LOG_SAMPLING", false),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	validLevel := false
	for _, l := range logLevels {
		if c.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (must be: %s)", c.Level, strings.Join(logLevels, ", "))
	}

	if c.Format != LogFormatJSON && c.Format != LogFormatConsole {
		return fmt.Errorf("invalid log format: %s (must be: json, console)", c.Format)
	}

	return nil
}

// IsProduction reports whether the zap production preset applies.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == LogFormatJSON && c.Level != "debug"
}
