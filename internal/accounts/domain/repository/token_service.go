package repository

import (
	"context"
	"time"
)

// SessionTokenService wraps the opaque session identifier in a signed
// cookie value so that tampered cookies are rejected before the store is
// consulted.
type SessionTokenService interface {
	// Mint produces the signed cookie value for a session identifier.
	Mint(ctx context.Context, sessionID string, expiresAt time.Time) (string, error)

	// Parse verifies a cookie value and returns the session identifier it
	// carries. Invalid, tampered or expired values yield an error.
	Parse(ctx context.Context, token string) (string, error)
}

// CredentialHasher wraps a salted one-way password hash and its
// constant-time verification.
type CredentialHasher interface {
	// Hash returns the salted hash of a plaintext password.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored hash. It never
	// fails on malformed input; it only returns false.
	Verify(plaintext, hashed string) bool
}
