package model

import "errors"

var (
	// ErrUsernameRequired is returned when no username is given.
	ErrUsernameRequired = errors.New("username is required")
	// ErrInvalidUsername is returned when the username is not a valid GitHub login.
	ErrInvalidUsername = errors.New("username is not a valid GitHub login")
	// ErrQueryRequired is returned when a developer search has no query.
	ErrQueryRequired = errors.New("search query is required")
)
