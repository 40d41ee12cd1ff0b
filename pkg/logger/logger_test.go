package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	appConfig "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("creates logger from env", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "info")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_OUTPUT", "stdout")

		logger, err := New()
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("creates development logger from env", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "console")

		logger, err := New()
		require.NoError(t, err)
		assert.True(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel))
	})
}

func TestNewWithConfig(t *testing.T) {
	tests := []struct {
		name         string
		cfg          appConfig.LoggerConfig
		enabledLevel zapcore.Level
		mutedLevel   zapcore.Level
	}{
		{
			name:         "production info",
			cfg:          appConfig.LoggerConfig{Level: "info", Format: "json", Output: "stdout"},
			enabledLevel: zapcore.InfoLevel,
			mutedLevel:   zapcore.DebugLevel,
		},
		{
			name:         "warn level",
			cfg:          appConfig.LoggerConfig{Level: "warn", Format: "json", Output: "stderr"},
			enabledLevel: zapcore.WarnLevel,
			mutedLevel:   zapcore.InfoLevel,
		},
		{
			name:         "error level console",
			cfg:          appConfig.LoggerConfig{Level: "error", Format: "console", Output: "stdout"},
			enabledLevel: zapcore.ErrorLevel,
			mutedLevel:   zapcore.WarnLevel,
		},
		{
			name:         "invalid level falls back to info",
			cfg:          appConfig.LoggerConfig{Level: "verbose", Format: "json", Output: "stdout"},
			enabledLevel: zapcore.InfoLevel,
			mutedLevel:   zapcore.DebugLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewWithConfig(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, logger)

			core := logger.Desugar().Core()
			assert.True(t, core.Enabled(tt.enabledLevel))
			assert.False(t, core.Enabled(tt.mutedLevel))
		})
	}
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewWithConfig(appConfig.LoggerConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Infow("developer metrics computed", "login", "octocat")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.True(t, strings.Contains(line, `"service":"pr-analyzer"`))
	assert.True(t, strings.Contains(line, `"login":"octocat"`))
}

func TestNewWithConfig_EmptyOutputDefaultsToStdout(t *testing.T) {
	logger, err := NewWithConfig(appConfig.LoggerConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewWithConfig_Sampling(t *testing.T) {
	countLines := func(t *testing.T, sampling bool) int {
		path := filepath.Join(t.TempDir(), "app.log")
		logger, err := NewWithConfig(appConfig.LoggerConfig{
			Level:    "info",
			Format:   "json",
			Output:   path,
			Sampling: sampling,
		})
		require.NoError(t, err)

		for i := 0; i < 300; i++ {
			logger.Infow("search page fetched", "page", 1)
		}
		require.NoError(t, logger.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		return strings.Count(string(data), "\n")
	}

	assert.Equal(t, 300, countLines(t, false))
	assert.Less(t, countLines(t, true), 300)
}
