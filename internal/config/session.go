package config

import (
	"fmt"
	"time"
)

// Session store backends.
const (
	SessionStorePostgres = "postgres"
	SessionStoreMemory   = "memory"
)

// SessionConfig holds browser session settings.
type SessionConfig struct {
	// CookieName is the name of the session cookie.
	CookieName string
	// TTL is the lifetime of a session cookie.
	TTL time.Duration
	// CookieSecure marks the cookie as HTTPS-only.
	CookieSecure bool
	// Store selects the session store backend (postgres, memory).
	Store string
}

// LoadSessionConfigFromEnv loads session configuration from environment variables.
func LoadSessionConfigFromEnv() SessionConfig {
	return SessionConfig{
		CookieName:   GetEnv("SESSION_COOKIE_NAME", "pr_analyzer_session"),
		TTL:          GetEnvDuration("SESSION_TTL", 7*24*time.Hour),
		CookieSecure: GetEnvBool("SESSION_COOKIE_SECURE", false),
		Store:        GetEnv("SESSION_STORE", SessionStorePostgres),
	}
}

// Validate validates session configuration.
func (c SessionConfig) Validate() error {
	if c.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("TTL must be greater than 0")
	}
	if c.Store != SessionStorePostgres && c.Store != SessionStoreMemory {
		return fmt.Errorf("invalid SESSION_STORE: %s (must be: postgres, memory)", c.Store)
	}
	return nil
}
