package model

// User is the signed-in user as exposed to the dashboard.
type User struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// SessionStatus is returned by GET /auth/session.
// Error carries a sign-in failure message and is reported once.
type SessionStatus struct {
	State State  `json:"state"`
	User  *User  `json:"user,omitempty"`
	Error string `json:"error,omitempty"`
}

// CallbackResult describes the outcome of handling a redirect URL.
type CallbackResult struct {
	State State `json:"state"`
	// CleanURL is the redirect URL with code and error parameters removed.
	CleanURL string `json:"clean_url"`
	// Exchanged is true when this call performed the code exchange.
	Exchanged bool   `json:"exchanged"`
	Error     string `json:"error,omitempty"`
}

// ExchangeRequest is the body of POST /auth/exchange.
type ExchangeRequest struct {
	URL string `json:"url" binding:"required"`
}

// LogoutResponse tells the dashboard where to navigate after logout.
type LogoutResponse struct {
	Redirect string `json:"redirect"`
}
