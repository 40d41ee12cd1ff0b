package service

import (
	"context"
	"errors"

	"github.com/ranjgith-s/github-pr-analyzer-sub001/internal/auth/broker"
)

const (
	msgSignInFailed    = "Sign-in failed. Please try again."
	msgSignInTimeout   = "Sign-in timed out. Please try again."
	msgNoProviderToken = "Signed in, but no GitHub access token was granted. Please sign in again."

	maxMessageLen = 200
)

// exchangeErrorMessage turns an exchange failure into a short user message.
func exchangeErrorMessage(err error) string {
	var brokerErr *broker.Error
	switch {
	case errors.As(err, &brokerErr) && brokerErr.Message != "":
		return "Sign-in failed: " + truncate(brokerErr.Message)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return msgSignInTimeout
	default:
		return msgSignInFailed
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMessageLen {
		return s
	}
	return string(r[:maxMessageLen]) + "..."
}
