package config

import (
	"fmt"
	"time"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/pkg/retry"
)

// GitHubConfig holds settings for the source-hosting platform API client.
type GitHubConfig struct {
	// Host is the GitHub hostname (github.com or a GHES host).
	Host string
	// RequestTimeout bounds a single API request.
	RequestTimeout time.Duration
	// SearchPageSize is the number of search results fetched per page (max 100).
	SearchPageSize int
	// DetailConcurrency limits parallel per-pull-request detail queries.
	DetailConcurrency int
	// InsightsWindow is the look-back period for repository insights.
	InsightsWindow time.Duration
	// Retry is the retry strategy for transient API failures.
	Retry retry.Config
}

// LoadGitHubConfigFromEnv loads GitHub API configuration from environment variables.
func LoadGitHubConfigFromEnv() GitHubConfig {
	retryCfg := retry.GitHubConfig()
	retryCfg.MaxAttempts = GetEnvInt("GITHUB_RETRY_MAX_ATTEMPTS", retryCfg.MaxAttempts)
	retryCfg.InitialDelay = GetEnvDuration("GITHUB_RETRY_INITIAL_DELAY", retryCfg.InitialDelay)
	retryCfg.MaxDelay = GetEnvDuration("GITHUB_RETRY_MAX_DELAY", retryCfg.MaxDelay)
	retryCfg.Multiplier = GetEnvFloat("GITHUB_RETRY_MULTIPLIER", retryCfg.Multiplier)

	return GitHubConfig{
		Host:              GetEnv("GITHUB_HOST", "github.com"),
		RequestTimeout:    GetEnvDuration("GITHUB_REQUEST_TIMEOUT", 30*time.Second),
		SearchPageSize:    GetEnvInt("GITHUB_SEARCH_PAGE_SIZE", 30),
		DetailConcurrency: GetEnvInt("GITHUB_DETAIL_CONCURRENCY", 8),
		InsightsWindow:    GetEnvDuration("GITHUB_INSIGHTS_WINDOW", 30*24*time.Hour),
		Retry:             retryCfg,
	}
}

// Validate validates GitHub API configuration.
func (c GitHubConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("GITHUB_HOST must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("RequestTimeout must be greater than 0")
	}
	if c.SearchPageSize < 1 || c.SearchPageSize > 100 {
		return fmt.Errorf("invalid SearchPageSize: %d (must be between 1 and 100)", c.SearchPageSize)
	}
	if c.DetailConcurrency < 1 {
		return fmt.Errorf("DetailConcurrency must be greater than 0")
	}
	if c.InsightsWindow < 24*time.Hour {
		return fmt.Errorf("InsightsWindow must be at least 24h")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry MaxAttempts must be greater than 0")
	}
	return nil
}
