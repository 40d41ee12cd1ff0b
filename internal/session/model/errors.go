package model

import "errors"

var (
	// ErrSessionNotFound indicates that no session exists for the given id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidSessionID indicates an empty session id.
	ErrInvalidSessionID = errors.New("invalid session ID")
)
