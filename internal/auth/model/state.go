// Package model defines the authentication states and DTOs.
package model

// State is the authentication state of a browser session.
type State string

const (
	// StateUnauthenticated means no provider token is available.
	StateUnauthenticated State = "unauthenticated"
	// StateExchangingCode means an authorization code exchange is in flight.
	StateExchangingCode State = "exchanging_code"
	// StateAuthenticated means a provider token is persisted for the session.
	StateAuthenticated State = "authenticated"
)
