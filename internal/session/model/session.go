// Package model defines the persisted browser session.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Session is the server-side state behind one browser session cookie.
// It holds the provider token resolved from the broker session, the broker
// tokens needed to rehydrate it, and the bookkeeping of the sign-in flow.
type Session struct {
	ID            string     `gorm:"primaryKey;column:session_id;type:varchar(64)"             json:"session_id"`
	ProviderToken string     `gorm:"column:provider_token;type:text;not null;default:''"        json:"-"`
	AccessToken   string     `gorm:"column:access_token;type:text;not null;default:''"          json:"-"`
	RefreshToken  string     `gorm:"column:refresh_token;type:text;not null;default:''"         json:"-"`
	UserID        string     `gorm:"column:user_id;type:varchar(255);not null;default:''"       json:"user_id"`
	Login         string     `gorm:"column:login;type:varchar(255);not null;default:''"         json:"login"`
	Email         string     `gorm:"column:email;type:varchar(255);not null;default:''"         json:"email,omitempty"`
	AvatarURL     string     `gorm:"column:avatar_url;type:text;not null;default:''"            json:"avatar_url,omitempty"`
	CodeVerifier  string     `gorm:"column:code_verifier;type:varchar(255);not null;default:''" json:"-"`
	LastCode      string     `gorm:"column:last_code;type:varchar(255);not null;default:''"     json:"-"`
	LastError     string     `gorm:"column:last_error;type:text;not null;default:''"            json:"-"`
	ExpiresAt     *time.Time `gorm:"column:expires_at"                                          json:"expires_at,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null"                                 json:"-"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;not null"                                 json:"-"`
}

// TableName specifies the table name for GORM.
func (Session) TableName() string {
	return "sessions"
}

// BeforeSave keeps the timestamps current.
func (s *Session) BeforeSave(tx *gorm.DB) error {
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	return nil
}

// Authenticated reports whether the session carries a provider token.
func (s *Session) Authenticated() bool {
	return s != nil && s.ProviderToken != ""
}

// ClearCredentials drops every token and user field, keeping only the
// sign-in bookkeeping.
func (s *Session) ClearCredentials() {
	s.ProviderToken = ""
	s.AccessToken = ""
	s.RefreshToken = ""
	s.UserID = ""
	s.Login = ""
	s.Email = ""
	s.AvatarURL = ""
	s.ExpiresAt = nil
}
