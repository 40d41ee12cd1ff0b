package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// OAuthConfig holds settings for the OAuth/session broker.
type OAuthConfig struct {
	// BrokerURL is the base URL of the GoTrue-compatible auth broker.
	BrokerURL string
	// AnonKey is the public API key sent to the broker.
	AnonKey string
	// Provider is the identity provider name of the source-hosting platform.
	Provider string
	// Scopes are the OAuth scopes requested from the provider.
	Scopes []string
	// RedirectURL is where the broker sends the browser after sign-in.
	RedirectURL string
	// PostLoginPath is where the browser lands after a successful callback.
	PostLoginPath string
	// LoginPath is the login view the browser is sent to on failure or logout.
	LoginPath string
	// RequestTimeout bounds a single broker request.
	RequestTimeout time.Duration
}

// LoadOAuthConfigFromEnv loads OAuth broker configuration from environment variables.
func LoadOAuthConfigFromEnv() OAuthConfig {
	return OAuthConfig{
		BrokerURL:      strings.TrimRight(GetEnv("OAUTH_BROKER_URL", "http://localhost:9999"), "/"),
		AnonKey:        GetEnv("OAUTH_BROKER_ANON_KEY", ""),
		Provider:       GetEnv("OAUTH_PROVIDER", "github"),
		Scopes:         GetEnvList("OAUTH_SCOPES", []string{"repo", "read:user"}),
		RedirectURL:    GetEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/auth/callback"),
		PostLoginPath:  GetEnv("OAUTH_POST_LOGIN_PATH", "/"),
		LoginPath:      GetEnv("OAUTH_LOGIN_PATH", "/login"),
		RequestTimeout: GetEnvDuration("OAUTH_REQUEST_TIMEOUT", 10*time.Second),
	}
}

// Validate validates OAuth broker configuration.
func (c OAuthConfig) Validate() error {
	if err := validateAbsoluteURL("OAUTH_BROKER_URL", c.BrokerURL); err != nil {
		return err
	}
	if err := validateAbsoluteURL("OAUTH_REDIRECT_URL", c.RedirectURL); err != nil {
		return err
	}
	if c.AnonKey == "" {
		return fmt.Errorf("OAUTH_BROKER_ANON_KEY must not be empty")
	}
	if c.Provider == "" {
		return fmt.Errorf("OAUTH_PROVIDER must not be empty")
	}
	if !strings.HasPrefix(c.PostLoginPath, "/") || !strings.HasPrefix(c.LoginPath, "/") {
		return fmt.Errorf("OAUTH_POST_LOGIN_PATH and OAUTH_LOGIN_PATH must be absolute paths")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("RequestTimeout must be greater than 0")
	}
	return nil
}

func validateAbsoluteURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s: %q (must be an absolute http(s) URL)", name, raw)
	}
	return nil
}
