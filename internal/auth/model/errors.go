package model

import "errors"

var (
	// ErrUnauthenticated is returned when a session has no provider token.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidCallbackURL is returned when a callback URL cannot be parsed.
	ErrInvalidCallbackURL = errors.New("invalid callback url")
	// ErrMissingSessionID is returned when an operation needs a session id and has none.
	ErrMissingSessionID = errors.New("session id is required")
)
