package models

import "time"

// Session is the ephemeral proof of authentication created once a
// lifecycle transition succeeds. A new login supersedes earlier sessions
// for routing purposes but never invalidates them; each session lives
// until its own ExpiresAt.
type Session struct {
	// SessionID is an opaque, unguessable identifier (32 random bytes,
	// hex encoded). It doubles as the session cookie value.
	SessionID string `json:"session_id"`

	// AccountID is the owning account.
	AccountID int64 `json:"-"`

	// CSRFToken is the anti-forgery token handed to the client alongside
	// the session identifier.
	CSRFToken string `json:"csrf_token"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
