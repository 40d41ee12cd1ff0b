package broker

import (
	"errors"
	"fmt"
	"time"
)

// Event names an auth-state change.
type Event string

const (
	EventSignedIn       Event = "SIGNED_IN"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
	EventSignedOut      Event = "SIGNED_OUT"
)

// ErrNoSession is returned by GetSession when no broker tokens are known.
var ErrNoSession = errors.New("no broker session")

// User is the broker's view of the signed-in user.
type User struct {
	ID        string
	Login     string
	Email     string
	AvatarURL string
}

// Session is a broker session. Raw keeps the decoded response body so the
// provider token can be resolved from whichever shape the broker returned.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
	User         User
	Raw          map[string]any
}

// Tokens are the persisted broker credentials used to look a session up again.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// AuthorizeRequest is the result of starting an OAuth sign-in.
type AuthorizeRequest struct {
	URL          string
	CodeVerifier string
}

// AuthStateChange is delivered to listeners registered with OnAuthStateChange.
// Session is nil for EventSignedOut.
type AuthStateChange struct {
	Event     Event
	SessionID string
	Session   *Session
}

// Error is a non-2xx response from the broker.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("broker: HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("broker: HTTP %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the broker rejected the credentials.
func (e *Error) Unauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
