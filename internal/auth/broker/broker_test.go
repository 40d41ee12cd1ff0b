package broker

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/config"
)

const tokenResponse = `{
	"access_token": "jwt-access",
	"refresh_token": "jwt-refresh",
	"expires_in": 3600,
	"expires_at": 1893456000,
	"provider_token": "gho_provider",
	"user": {
		"id": "user-1",
		"email": "octo@example.com",
		"user_metadata": {"user_name": "octocat", "avatar_url": "https://avatars.example.com/u/1"}
	}
}`

type recorder struct {
	mu     sync.Mutex
	events []AuthStateChange
}

func (r *recorder) listen(_ context.Context, change AuthStateChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, change)
}

func (r *recorder) all() []AuthStateChange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]AuthStateChange(nil), r.events...)
}

func newTestBroker(t *testing.T, handler http.HandlerFunc) (Broker, *recorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b := New(config.OAuthConfig{
		BrokerURL:      srv.URL + "/",
		AnonKey:        "anon-key",
		Provider:       "github",
		Scopes:         []string{"repo", "read:user"},
		RedirectURL:    "http://localhost:8080/auth/callback",
		RequestTimeout: 5 * time.Second,
	}, nil, zap.NewNop().Sugar())

	rec := &recorder{}
	unsubscribe := b.OnAuthStateChange(rec.listen)
	t.Cleanup(unsubscribe)

	return b, rec
}

func TestSignInWithOAuth(t *testing.T) {
	b, _ := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	})

	req, err := b.SignInWithOAuth()
	require.NoError(t, err)
	assert.Len(t, req.CodeVerifier, 43)

	u, err := url.Parse(req.URL)
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "github", q.Get("provider"))
	assert.Equal(t, "http://localhost:8080/auth/callback", q.Get("redirect_to"))
	assert.Equal(t, "repo read:user", q.Get("scopes"))
	assert.Equal(t, "s256", q.Get("code_challenge_method"))
	assert.Equal(t, oauth2.S256ChallengeFromVerifier(req.CodeVerifier), q.Get("code_challenge"))

	other, err := b.SignInWithOAuth()
	require.NoError(t, err)
	assert.NotEqual(t, req.CodeVerifier, other.CodeVerifier)
}

func TestSignInWithOAuth_ChallengeMatchesVerifier(t *testing.T) {
	b, _ := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	})

	req, err := b.SignInWithOAuth()
	require.NoError(t, err)
	u, err := url.Parse(req.URL)
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(req.CodeVerifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), u.Query().Get("code_challenge"))
}

func TestExchangeCodeForSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		b, rec := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/v1/token", r.URL.Path)
			assert.Equal(t, "pkce", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "anon-key", r.Header.Get("apikey"))

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "the-code", body["auth_code"])
			assert.Equal(t, "the-verifier", body["code_verifier"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(tokenResponse))
		})

		session, err := b.ExchangeCodeForSession(context.Background(), "sid", "the-code", "the-verifier")
		require.NoError(t, err)
		assert.Equal(t, "jwt-access", session.AccessToken)
		assert.Equal(t, "jwt-refresh", session.RefreshToken)
		assert.Equal(t, "gho_provider", session.Raw["provider_token"])
		assert.Equal(t, User{
			ID:        "user-1",
			Login:     "octocat",
			Email:     "octo@example.com",
			AvatarURL: "https://avatars.example.com/u/1",
		}, session.User)
		require.NotNil(t, session.ExpiresAt)
		assert.Equal(t, int64(1893456000), session.ExpiresAt.Unix())

		events := rec.all()
		require.Len(t, events, 1)
		assert.Equal(t, EventSignedIn, events[0].Event)
		assert.Equal(t, "sid", events[0].SessionID)
		assert.Same(t, session, events[0].Session)
	})

	t.Run("broker rejects code", func(t *testing.T) {
		b, rec := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"code already used"}`))
		})

		_, err := b.ExchangeCodeForSession(context.Background(), "sid", "the-code", "v")
		require.Error(t, err)

		var brokerErr *Error
		require.True(t, errors.As(err, &brokerErr))
		assert.Equal(t, http.StatusBadRequest, brokerErr.StatusCode)
		assert.Equal(t, "invalid_grant", brokerErr.Code)
		assert.Equal(t, "code already used", brokerErr.Message)
		assert.Empty(t, rec.all())
	})

	t.Run("empty code", func(t *testing.T) {
		b, _ := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request %s", r.URL)
		})
		_, err := b.ExchangeCodeForSession(context.Background(), "sid", "", "v")
		assert.Error(t, err)
	})
}

func TestGetSession(t *testing.T) {
	t.Run("no tokens", func(t *testing.T) {
		b, _ := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request %s", r.URL)
		})
		_, err := b.GetSession(context.Background(), "sid", Tokens{})
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("valid access token", func(t *testing.T) {
		b, rec := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/user", r.URL.Path)
			assert.Equal(t, "Bearer jwt-access", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":"user-1","user_metadata":{"preferred_username":"octocat"},
				"identities":[{"provider":"github","identity_data":{"sub":"1"}}]}`))
		})

		session, err := b.GetSession(context.Background(), "sid", Tokens{AccessToken: "jwt-access", RefreshToken: "r"})
		require.NoError(t, err)
		assert.Equal(t, "jwt-access", session.AccessToken)
		assert.Equal(t, "r", session.RefreshToken)
		assert.Equal(t, "octocat", session.User.Login)
		assert.Contains(t, session.Raw, "user")
		assert.Empty(t, rec.all())
	})

	t.Run("expired access token is refreshed", func(t *testing.T) {
		b, rec := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/v1/user":
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"code":401,"msg":"invalid JWT"}`))
			case "/auth/v1/token":
				assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
				var body map[string]string
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "old-refresh", body["refresh_token"])
				_, _ = w.Write([]byte(tokenResponse))
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		})

		session, err := b.GetSession(context.Background(), "sid", Tokens{AccessToken: "old", RefreshToken: "old-refresh"})
		require.NoError(t, err)
		assert.Equal(t, "jwt-access", session.AccessToken)

		events := rec.all()
		require.Len(t, events, 1)
		assert.Equal(t, EventTokenRefreshed, events[0].Event)
	})

	t.Run("rejected without refresh token", func(t *testing.T) {
		b, _ := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := b.GetSession(context.Background(), "sid", Tokens{AccessToken: "old"})
		require.Error(t, err)

		var brokerErr *Error
		require.True(t, errors.As(err, &brokerErr))
		assert.True(t, brokerErr.Unauthorized())
		assert.Equal(t, "Unauthorized", brokerErr.Message)
	})

	t.Run("server error is not refreshed", func(t *testing.T) {
		calls := 0
		b, _ := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := b.GetSession(context.Background(), "sid", Tokens{AccessToken: "a", RefreshToken: "r"})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestSignOut(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		b, rec := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/logout", r.URL.Path)
			assert.Equal(t, "Bearer jwt-access", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, b.SignOut(context.Background(), "sid", "jwt-access"))

		events := rec.all()
		require.Len(t, events, 1)
		assert.Equal(t, EventSignedOut, events[0].Event)
		assert.Nil(t, events[0].Session)
	})

	t.Run("failure still emits signed out", func(t *testing.T) {
		b, rec := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		assert.Error(t, b.SignOut(context.Background(), "sid", "jwt-access"))
		require.Len(t, rec.all(), 1)
		assert.Equal(t, EventSignedOut, rec.all()[0].Event)
	})
}

func TestPing(t *testing.T) {
	b, _ := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/health", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"GoTrue","version":"v2.151.0"}`))
	})
	require.NoError(t, b.Ping(context.Background()))

	down, _ := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	var brokerErr *Error
	require.ErrorAs(t, down.Ping(context.Background()), &brokerErr)
	assert.Equal(t, http.StatusServiceUnavailable, brokerErr.StatusCode)
}

func TestOnAuthStateChange_Unsubscribe(t *testing.T) {
	ls := newListeners()
	calls := 0
	unsubscribe := ls.add(func(context.Context, AuthStateChange) { calls++ })
	assert.Equal(t, 1, ls.len())

	ls.emit(context.Background(), AuthStateChange{Event: EventSignedIn})
	unsubscribe()
	unsubscribe()
	ls.emit(context.Background(), AuthStateChange{Event: EventSignedIn})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, ls.len())
}

func TestListeners_SelfUnsubscribe(t *testing.T) {
	ls := newListeners()
	var unsubscribe func()
	unsubscribe = ls.add(func(context.Context, AuthStateChange) { unsubscribe() })

	ls.emit(context.Background(), AuthStateChange{Event: EventSignedOut})
	assert.Equal(t, 0, ls.len())
}
