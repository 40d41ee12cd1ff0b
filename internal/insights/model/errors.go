package model

import "errors"

// ErrRepositoryRequired is returned when owner or repo is empty.
var ErrRepositoryRequired = errors.New("owner and repo are required")
