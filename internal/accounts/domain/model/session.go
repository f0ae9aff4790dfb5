package model

import "time"

// SessionData is the user snapshot copied into a session at login time.
// It is deliberately not live-linked to the directory: a role change only
// becomes visible to the browser after a fresh login.
type SessionData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// Session represents a logged-in browser, referenced by an opaque
// cookie-carried identifier. Expiry is absolute, fixed at creation.
type Session struct {
	ID        string      `json:"id"`
	Data      SessionData `json:"data"`
	ExpiresAt time.Time   `json:"expires_at"`
	CreatedAt time.Time   `json:"created_at"`
}

// Expired reports whether the session's absolute TTL has elapsed.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
