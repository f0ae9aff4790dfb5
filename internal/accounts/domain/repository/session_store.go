package repository

import (
	"context"

	"memberhub/internal/accounts/domain/model"
)

// SessionStore persists session state keyed by the opaque session
// identifier. Entries carry an absolute expiry; the store must purge or
// ignore expired entries on read.
type SessionStore interface {
	// Create stores the session until its ExpiresAt timestamp.
	Create(ctx context.Context, session *model.Session) error

	// Get returns the session for the given identifier, or
	// usecase.ErrSessionNotFound when absent or expired.
	Get(ctx context.Context, id string) (*model.Session, error)

	// Destroy removes the session. Destroying an absent session is not an
	// error.
	Destroy(ctx context.Context, id string) error
}
