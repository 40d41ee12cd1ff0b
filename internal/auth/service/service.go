// Package service manages the authenticated-session lifecycle: starting a
// sign-in, exchanging the redirect code exactly once, hydrating sessions from
// the broker, reacting to auth-state changes and logging out.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/broker"
	authModel "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/model"
	sessionModel "github.com/ranjgith-s/github-pr-analyzer-sub001/internal/session/model"
	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/session/repository"
)

// Service defines the authentication lifecycle operations.
type Service interface {
	// Login starts an OAuth sign-in for the session and returns the broker URL
	// the browser must visit.
	Login(ctx context.Context, sessionID string) (string, error)

	// HandleCallback processes a redirect URL carrying a code or an error.
	// The returned CleanURL never contains those parameters, whatever the outcome.
	HandleCallback(ctx context.Context, sessionID string, callbackURL *url.URL) *authModel.CallbackResult

	// Hydrate reports the session state, refreshing it from the broker.
	Hydrate(ctx context.Context, sessionID string) (*authModel.SessionStatus, error)

	// Logout signs out at the broker (best effort), clears the persisted
	// session and returns the login path.
	Logout(ctx context.Context, sessionID string) (string, error)

	// ProviderToken returns the persisted provider token or authModel.ErrUnauthenticated.
	ProviderToken(ctx context.Context, sessionID string) (string, error)

	// Close stops listening for auth-state changes.
	Close()
}

// Config holds lifecycle settings.
type Config struct {
	// Provider is the identity provider whose token is resolved.
	Provider string
	// LoginPath is returned by Logout.
	LoginPath string
}

type service struct {
	store  repository.Repository
	broker broker.Broker
	cfg    Config
	logger *zap.SugaredLogger

	exchanges singleflight.Group

	mu         sync.Mutex
	exchanging map[string]int

	unsubscribe func()
	closeOnce   sync.Once
}

// New creates the lifecycle service and subscribes it to broker auth-state
// changes until Close is called.
func New(store repository.Repository, b broker.Broker, cfg Config, logger *zap.SugaredLogger) Service {
	if cfg.Provider == "" {
		cfg.Provider = auth.DefaultProvider
	}
	s := &service{
		store:      store,
		broker:     b,
		cfg:        cfg,
		logger:     logger,
		exchanging: make(map[string]int),
	}
	s.unsubscribe = b.OnAuthStateChange(s.onAuthStateChange)
	return s
}

// Login starts the sign-in and persists the PKCE verifier.
func (s *service) Login(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return "", err
	}

	req, err := s.broker.SignInWithOAuth()
	if err != nil {
		return "", fmt.Errorf("failed to start sign-in: %w", err)
	}

	sess.CodeVerifier = req.CodeVerifier
	sess.LastError = ""
	if err := s.store.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("failed to persist sign-in state: %w", err)
	}

	s.logger.Infow("Sign-in started", "session_id", sessionID)
	return req.URL, nil
}

// HandleCallback handles the broker redirect.
func (s *service) HandleCallback(ctx context.Context, sessionID string, callbackURL *url.URL) *authModel.CallbackResult {
	code, errMsg := auth.CallbackParams(callbackURL)
	clean := auth.StripAuthParams(callbackURL)

	var result *authModel.CallbackResult
	switch {
	case sessionID == "":
		result = &authModel.CallbackResult{State: authModel.StateUnauthenticated, Error: msgSignInFailed}
	case errMsg != "":
		result = s.recordCallbackError(ctx, sessionID, errMsg)
	case code != "":
		v, _, _ := s.exchanges.Do(sessionID+"\x00"+code, func() (interface{}, error) {
			return s.exchange(ctx, sessionID, code), nil
		})
		shared := *v.(*authModel.CallbackResult)
		result = &shared
	default:
		result = &authModel.CallbackResult{State: s.currentState(ctx, sessionID)}
	}

	result.CleanURL = clean
	return result
}

// exchange performs the code exchange unless this code was already handled.
func (s *service) exchange(ctx context.Context, sessionID, code string) *authModel.CallbackResult {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		s.logger.Errorw("Failed to load session for code exchange", "session_id", sessionID, "error", err)
		return &authModel.CallbackResult{State: authModel.StateUnauthenticated, Error: msgSignInFailed}
	}

	if sess.LastCode == code {
		s.logger.Debugw("Authorization code already handled", "session_id", sessionID)
		return &authModel.CallbackResult{State: stateOf(sess)}
	}

	s.beginExchange(sessionID)
	defer s.endExchange(sessionID)

	sess.LastCode = code
	sess.LastError = ""
	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Errorw("Failed to persist authorization code", "session_id", sessionID, "error", err)
		return &authModel.CallbackResult{State: stateOf(sess), Error: msgSignInFailed}
	}

	bs, err := s.broker.ExchangeCodeForSession(ctx, sessionID, code, sess.CodeVerifier)
	if err != nil {
		msg := exchangeErrorMessage(err)
		s.logger.Warnw("Code exchange failed", "session_id", sessionID, "error", err)
		sess.LastError = msg
		s.save(ctx, sess)
		return &authModel.CallbackResult{State: stateOf(sess), Exchanged: true, Error: msg}
	}

	resolved := s.apply(sess, bs)
	sess.CodeVerifier = ""
	if !resolved && !sess.Authenticated() {
		sess.LastError = msgNoProviderToken
	}
	s.save(ctx, sess)

	s.logger.Infow("Code exchange completed",
		"session_id", sessionID,
		"login", sess.Login,
		"authenticated", sess.Authenticated())

	return &authModel.CallbackResult{State: stateOf(sess), Exchanged: true, Error: sess.LastError}
}

func (s *service) recordCallbackError(ctx context.Context, sessionID, errMsg string) *authModel.CallbackResult {
	msg := "Sign-in failed: " + truncate(errMsg)
	s.logger.Warnw("Broker redirected with error", "session_id", sessionID, "error", errMsg)

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		s.logger.Errorw("Failed to load session", "session_id", sessionID, "error", err)
		return &authModel.CallbackResult{State: authModel.StateUnauthenticated, Error: msg}
	}

	sess.LastError = msg
	s.save(ctx, sess)
	return &authModel.CallbackResult{State: stateOf(sess), Error: msg}
}

// Hydrate reports the current state of the session.
func (s *service) Hydrate(ctx context.Context, sessionID string) (*authModel.SessionStatus, error) {
	if sessionID == "" {
		return &authModel.SessionStatus{State: authModel.StateUnauthenticated}, nil
	}

	if s.isExchanging(sessionID) {
		return &authModel.SessionStatus{State: authModel.StateExchangingCode}, nil
	}

	sess, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, sessionModel.ErrSessionNotFound) {
		return &authModel.SessionStatus{State: authModel.StateUnauthenticated}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	dirty := false
	if sess.AccessToken != "" || sess.RefreshToken != "" {
		bs, err := s.broker.GetSession(ctx, sessionID, broker.Tokens{
			AccessToken:  sess.AccessToken,
			RefreshToken: sess.RefreshToken,
		})
		if err != nil {
			s.logger.Warnw("Broker session unavailable, using persisted token",
				"session_id", sessionID,
				"authenticated", sess.Authenticated(),
				"error", err)
		} else {
			s.apply(sess, bs)
			dirty = true
		}
	}

	status := statusOf(sess)
	if sess.LastError != "" {
		status.Error = sess.LastError
		sess.LastError = ""
		dirty = true
	}

	if dirty {
		if err := s.store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
	}

	return status, nil
}

// Logout clears the session.
func (s *service) Logout(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return s.cfg.LoginPath, nil
	}

	sess, err := s.store.Get(ctx, sessionID)
	switch {
	case err == nil:
		if err := s.broker.SignOut(ctx, sessionID, sess.AccessToken); err != nil {
			s.logger.Warnw("Broker sign-out failed", "session_id", sessionID, "error", err)
		}
	case !errors.Is(err, sessionModel.ErrSessionNotFound):
		s.logger.Warnw("Failed to load session for logout", "session_id", sessionID, "error", err)
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return "", fmt.Errorf("failed to clear session: %w", err)
	}

	s.logger.Infow("Logged out", "session_id", sessionID)
	return s.cfg.LoginPath, nil
}

// ProviderToken returns the persisted provider token.
func (s *service) ProviderToken(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", authModel.ErrUnauthenticated
	}

	sess, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, sessionModel.ErrSessionNotFound) {
		return "", authModel.ErrUnauthenticated
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if !sess.Authenticated() {
		return "", authModel.ErrUnauthenticated
	}

	return sess.ProviderToken, nil
}

// Close unsubscribes from auth-state changes.
func (s *service) Close() {
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
	})
}

// onAuthStateChange re-resolves the token of the affected session.
func (s *service) onAuthStateChange(ctx context.Context, change broker.AuthStateChange) {
	if change.SessionID == "" {
		return
	}

	sess, err := s.store.Get(ctx, change.SessionID)
	if err != nil {
		if !errors.Is(err, sessionModel.ErrSessionNotFound) {
			s.logger.Warnw("Failed to load session for auth state change",
				"session_id", change.SessionID, "event", change.Event, "error", err)
		}
		return
	}

	switch change.Event {
	case broker.EventSignedOut:
		sess.ClearCredentials()
	case broker.EventSignedIn, broker.EventTokenRefreshed:
		if change.Session == nil {
			return
		}
		s.apply(sess, change.Session)
	default:
		return
	}

	s.save(ctx, sess)
	s.logger.Debugw("Auth state change applied",
		"session_id", change.SessionID,
		"event", change.Event,
		"authenticated", sess.Authenticated())
}

// apply copies broker session data onto sess and reports whether a provider
// token was resolved. An unresolved token keeps the persisted one.
func (s *service) apply(sess *sessionModel.Session, bs *broker.Session) bool {
	if bs.AccessToken != "" {
		sess.AccessToken = bs.AccessToken
	}
	if bs.RefreshToken != "" {
		sess.RefreshToken = bs.RefreshToken
	}
	if bs.ExpiresAt != nil {
		sess.ExpiresAt = bs.ExpiresAt
	}
	if bs.User.ID != "" {
		sess.UserID = bs.User.ID
		sess.Login = bs.User.Login
		sess.Email = bs.User.Email
		sess.AvatarURL = bs.User.AvatarURL
	}

	token, ok := auth.ResolveProviderTokenFor(bs.Raw, s.cfg.Provider)
	if ok {
		sess.ProviderToken = token
	}
	return ok
}

// load returns the persisted session or a fresh one.
func (s *service) load(ctx context.Context, sessionID string) (*sessionModel.Session, error) {
	if sessionID == "" {
		return nil, authModel.ErrMissingSessionID
	}

	sess, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, sessionModel.ErrSessionNotFound) {
		return &sessionModel.Session{ID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

// save persists sess, logging failures.
func (s *service) save(ctx context.Context, sess *sessionModel.Session) {
	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Errorw("Failed to persist session", "session_id", sess.ID, "error", err)
	}
}

func (s *service) currentState(ctx context.Context, sessionID string) authModel.State {
	if s.isExchanging(sessionID) {
		return authModel.StateExchangingCode
	}
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return authModel.StateUnauthenticated
	}
	return stateOf(sess)
}

func (s *service) beginExchange(sessionID string) {
	s.mu.Lock()
	s.exchanging[sessionID]++
	s.mu.Unlock()
}

func (s *service) endExchange(sessionID string) {
	s.mu.Lock()
	if s.exchanging[sessionID] <= 1 {
		delete(s.exchanging, sessionID)
	} else {
		s.exchanging[sessionID]--
	}
	s.mu.Unlock()
}

func (s *service) isExchanging(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchanging[sessionID] > 0
}

func stateOf(sess *sessionModel.Session) authModel.State {
	if sess.Authenticated() {
		return authModel.StateAuthenticated
	}
	return authModel.StateUnauthenticated
}

func statusOf(sess *sessionModel.Session) *authModel.SessionStatus {
	status := &authModel.SessionStatus{State: stateOf(sess)}
	if status.State == authModel.StateAuthenticated && (sess.UserID != "" || sess.Login != "") {
		status.User = &authModel.User{
			ID:        sess.UserID,
			Login:     sess.Login,
			Email:     sess.Email,
			AvatarURL: sess.AvatarURL,
		}
	}
	return status
}
