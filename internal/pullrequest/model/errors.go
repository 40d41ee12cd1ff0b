package model

import "errors"

var (
	// ErrPullRequestNotFound indicates that the requested pull request does not exist.
	ErrPullRequestNotFound = errors.New("pull request not found")
	// ErrInvalidPullRequestRef indicates an empty owner or repo, or a non-positive number.
	ErrInvalidPullRequestRef = errors.New("owner, repo and a positive pull request number are required")
)
