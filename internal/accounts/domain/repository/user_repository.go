package repository

import (
	"context"

	"memberhub/internal/accounts/domain/model"
)

// UserRepository defines persistence operations for the user directory.
// Implementations must enforce email uniqueness on insert; the
// check-then-insert performed by callers is not atomic and the unique
// constraint is what bounds the duplicate-signup race.
type UserRepository interface {
	// Create inserts a new user. Returns usecase.ErrEmailTaken when the
	// email is already present.
	Create(ctx context.Context, user *model.User) error

	// FindByEmail returns the user with the given email, or
	// usecase.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// SetAdmin flips the admin flag for the given email. A missing email
	// is a no-op, not an error.
	SetAdmin(ctx context.Context, email string, admin bool) error

	// List returns all users ordered by email, for the admin listing.
	List(ctx context.Context) ([]model.User, error)
}
