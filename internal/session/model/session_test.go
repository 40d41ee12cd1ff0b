package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_TableName(t *testing.T) {
	assert.Equal(t, "sessions", Session{}.TableName())
}

func TestSession_Authenticated(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.Authenticated())
	assert.False(t, (&Session{ID: "s1"}).Authenticated())
	assert.True(t, (&Session{ID: "s1", ProviderToken: "gho_x"}).Authenticated())
}

func TestSession_ClearCredentials(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	s := &Session{
		ID:            "s1",
		ProviderToken: "gho_x",
		AccessToken:   "jwt",
		RefreshToken:  "refresh",
		UserID:        "u1",
		Login:         "octocat",
		CodeVerifier:  "verifier",
		LastCode:      "code-1",
		ExpiresAt:     &expires,
	}

	s.ClearCredentials()

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.AccessToken)
	assert.Empty(t, s.Login)
	assert.Nil(t, s.ExpiresAt)
	assert.Equal(t, "verifier", s.CodeVerifier)
	assert.Equal(t, "code-1", s.LastCode)
}

func TestSession_JSONHidesTokens(t *testing.T) {
	s := Session{ID: "s1", ProviderToken: "gho_secret", AccessToken: "jwt", Login: "octocat"}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"login":"octocat"`)
	assert.NotContains(t, string(data), "gho_secret")
	assert.NotContains(t, string(data), "jwt")
}
