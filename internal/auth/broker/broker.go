// Package broker is a client for a GoTrue-compatible OAuth/session broker
// (Supabase Auth). It starts PKCE sign-ins, exchanges authorization codes for
// sessions, looks sessions up again, signs out and notifies listeners of
// auth-state changes.
package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
)

// maxBodySize caps broker responses.
const maxBodySize = 1 << 20

// Broker defines the operations of the OAuth/session broker.
type Broker interface {
	// SignInWithOAuth returns the authorize URL and the PKCE verifier that
	// must be presented when the code is exchanged.
	SignInWithOAuth() (*AuthorizeRequest, error)

	// ExchangeCodeForSession trades an authorization code for a session.
	ExchangeCodeForSession(ctx context.Context, sessionID, code, verifier string) (*Session, error)

	// GetSession returns the current session for tokens, refreshing it when
	// the access token was rejected.
	GetSession(ctx context.Context, sessionID string, tokens Tokens) (*Session, error)

	// SignOut revokes the session behind accessToken.
	SignOut(ctx context.Context, sessionID, accessToken string) error

	// OnAuthStateChange registers l and returns a function that unregisters it.
	OnAuthStateChange(l Listener) (unsubscribe func())

	// Ping checks that the broker answers its health endpoint.
	Ping(ctx context.Context) error
}

type client struct {
	cfg       config.OAuthConfig
	http      *http.Client
	listeners *listeners
	logger    *zap.SugaredLogger
}

// New creates a broker client. A nil httpClient gets a client bounded by
// cfg.RequestTimeout.
func New(cfg config.OAuthConfig, httpClient *http.Client, logger *zap.SugaredLogger) Broker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	cfg.BrokerURL = strings.TrimRight(cfg.BrokerURL, "/")
	return &client{
		cfg:       cfg,
		http:      httpClient,
		listeners: newListeners(),
		logger:    logger,
	}
}

// SignInWithOAuth builds the authorize URL for the configured provider.
func (c *client) SignInWithOAuth() (*AuthorizeRequest, error) {
	verifier := oauth2.GenerateVerifier()

	q := url.Values{}
	q.Set("provider", c.cfg.Provider)
	q.Set("redirect_to", c.cfg.RedirectURL)
	if len(c.cfg.Scopes) > 0 {
		q.Set("scopes", strings.Join(c.cfg.Scopes, " "))
	}
	q.Set("code_challenge", oauth2.S256ChallengeFromVerifier(verifier))
	q.Set("code_challenge_method", "s256")

	return &AuthorizeRequest{
		URL:          c.cfg.BrokerURL + "/auth/v1/authorize?" + q.Encode(),
		CodeVerifier: verifier,
	}, nil
}

// ExchangeCodeForSession exchanges code for a session and emits EventSignedIn.
func (c *client) ExchangeCodeForSession(ctx context.Context, sessionID, code, verifier string) (*Session, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code is empty")
	}

	body := map[string]string{"auth_code": code, "code_verifier": verifier}
	raw, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=pkce", "", body)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	session := sessionFromTokenResponse(raw)
	c.logger.Infow("Broker code exchange succeeded", "session_id", sessionID, "user_id", session.User.ID)
	c.listeners.emit(ctx, AuthStateChange{Event: EventSignedIn, SessionID: sessionID, Session: session})

	return session, nil
}

// GetSession fetches the user behind tokens.AccessToken. When the access token
// is rejected and a refresh token is known, the session is refreshed and
// EventTokenRefreshed is emitted.
func (c *client) GetSession(ctx context.Context, sessionID string, tokens Tokens) (*Session, error) {
	if tokens.AccessToken == "" && tokens.RefreshToken == "" {
		return nil, ErrNoSession
	}

	if tokens.AccessToken != "" {
		raw, err := c.do(ctx, http.MethodGet, "/auth/v1/user", tokens.AccessToken, nil)
		if err == nil {
			return &Session{
				AccessToken:  tokens.AccessToken,
				RefreshToken: tokens.RefreshToken,
				User:         userFromRaw(raw),
				Raw:          map[string]any{"user": raw},
			}, nil
		}

		var brokerErr *Error
		if !errors.As(err, &brokerErr) || !brokerErr.Unauthorized() || tokens.RefreshToken == "" {
			return nil, fmt.Errorf("get user: %w", err)
		}
		c.logger.Debugw("Broker access token rejected, refreshing", "session_id", sessionID)
	}

	raw, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "",
		map[string]string{"refresh_token": tokens.RefreshToken})
	if err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}

	session := sessionFromTokenResponse(raw)
	c.listeners.emit(ctx, AuthStateChange{Event: EventTokenRefreshed, SessionID: sessionID, Session: session})

	return session, nil
}

// SignOut revokes the session and emits EventSignedOut. The event is emitted
// even when the broker call fails so local state is always cleared.
func (c *client) SignOut(ctx context.Context, sessionID, accessToken string) error {
	var err error
	if accessToken != "" {
		_, err = c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil)
	}

	c.listeners.emit(ctx, AuthStateChange{Event: EventSignedOut, SessionID: sessionID})

	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// OnAuthStateChange registers a listener.
func (c *client) OnAuthStateChange(l Listener) func() {
	return c.listeners.add(l)
}

func (c *client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/auth/v1/health", "", nil)
	return err
}

// do sends a JSON request to the broker and decodes the JSON response.
func (c *client) do(ctx context.Context, method, path, bearer string, body any) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BrokerURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.cfg.AnonKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debugw("Broker request completed",
		"method", method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, data)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

func parseError(status int, data []byte) *Error {
	e := &Error{StatusCode: status}

	var body map[string]any
	if json.Unmarshal(data, &body) == nil {
		e.Code = firstString(body, "error", "error_code")
		e.Message = firstString(body, "error_description", "msg", "message")
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func sessionFromTokenResponse(raw map[string]any) *Session {
	s := &Session{Raw: raw}
	s.AccessToken, _ = raw["access_token"].(string)
	s.RefreshToken, _ = raw["refresh_token"].(string)

	if exp, ok := raw["expires_at"].(float64); ok && exp > 0 {
		t := time.Unix(int64(exp), 0).UTC()
		s.ExpiresAt = &t
	} else if in, ok := raw["expires_in"].(float64); ok && in > 0 {
		t := time.Now().Add(time.Duration(in) * time.Second).UTC()
		s.ExpiresAt = &t
	}

	if user, ok := raw["user"].(map[string]any); ok {
		s.User = userFromRaw(user)
	}
	return s
}

func userFromRaw(raw map[string]any) User {
	u := User{}
	u.ID, _ = raw["id"].(string)
	u.Email, _ = raw["email"].(string)

	meta, _ := raw["user_metadata"].(map[string]any)
	u.Login = firstString(meta, "user_name", "preferred_username")
	u.AvatarURL = firstString(meta, "avatar_url")
	return u
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
