package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"memberhub/internal/accounts/config"
	"memberhub/internal/accounts/domain/model"
	"memberhub/internal/accounts/domain/repository"
	apperrors "memberhub/internal/shared/errors"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errors.New("email is already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// AccountUsecaseInterface defines the contract for account and session
// lifecycle operations.
type AccountUsecaseInterface interface {
	SignUp(ctx context.Context, form SignupForm) (*model.Session, string, error)
	Login(ctx context.Context, form LoginForm) (*model.Session, string, error)
	Logout(ctx context.Context, token string) error
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
	PromoteUser(ctx context.Context, email string) error
	DemoteUser(ctx context.Context, email string) error
	ListUsers(ctx context.Context) ([]model.User, error)
}

// AccountUsecase implements the account lifecycle: signup, login, logout,
// session resolution and admin role changes.
type AccountUsecase struct {
	users    repository.UserRepository
	sessions repository.SessionStore
	tokenSvc repository.SessionTokenService
	hasher   repository.CredentialHasher
	config   *config.Config
}

// NewAccountUsecase creates a new instance of AccountUsecase.
func NewAccountUsecase(
	users repository.UserRepository,
	sessions repository.SessionStore,
	tokenSvc repository.SessionTokenService,
	hasher repository.CredentialHasher,
	cfg *config.Config,
) *AccountUsecase {
	return &AccountUsecase{
		users:    users,
		sessions: sessions,
		tokenSvc: tokenSvc,
		hasher:   hasher,
		config:   cfg,
	}
}

// SignUp creates a user record for a validated signup form and establishes
// a session. The existence check and the insert are not atomic; two
// concurrent signups for the same email can both pass the check, and the
// directory's unique email constraint rejects the second insert so the
// final state converges to one record.
func (uc *AccountUsecase) SignUp(ctx context.Context, form SignupForm) (*model.Session, string, error) {
	email := normalizeEmail(form.Email)

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", apperrors.NewPersistenceError("failed to check existing user").WithCause(err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := uc.hasher.Hash(form.Password)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to hash password").WithCause(err)
	}

	now := time.Now()
	user := &model.User{
		Name:         strings.TrimSpace(form.Name),
		Email:        email,
		PasswordHash: hashed,
		Admin:        false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", apperrors.NewPersistenceError("failed to create user").WithCause(err)
	}

	return uc.establishSession(ctx, user)
}

// Login authenticates a validated login form and establishes a session.
// Unknown email and wrong password collapse into the same error so the
// response cannot be used to enumerate accounts.
func (uc *AccountUsecase) Login(ctx context.Context, form LoginForm) (*model.Session, string, error) {
	user, err := uc.users.FindByEmail(ctx, normalizeEmail(form.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", apperrors.NewPersistenceError("failed to get user").WithCause(err)
	}

	if !uc.hasher.Verify(form.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	return uc.establishSession(ctx, user)
}

// establishSession copies the user's attributes into a fresh session and
// mints its signed cookie value. The snapshot is intentionally stale: a
// later role change does not reach this session until re-login.
func (uc *AccountUsecase) establishSession(ctx context.Context, user *model.User) (*model.Session, string, error) {
	now := time.Now()
	session := &model.Session{
		ID: uuid.New().String(),
		Data: model.SessionData{
			Name:  user.Name,
			Email: user.Email,
			Admin: user.Admin,
		},
		ExpiresAt: now.Add(uc.config.SessionTTL),
		CreatedAt: now,
	}

	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, "", apperrors.NewPersistenceError("failed to create session").WithCause(err)
	}

	token, err := uc.tokenSvc.Mint(ctx, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to mint session token").WithCause(err)
	}

	return session, token, nil
}

// Logout destroys the session referenced by the cookie value. An invalid
// or already-gone session is not an error; the outcome is the same.
func (uc *AccountUsecase) Logout(ctx context.Context, token string) error {
	sessionID, err := uc.tokenSvc.Parse(ctx, token)
	if err != nil {
		return nil
	}

	if err := uc.sessions.Destroy(ctx, sessionID); err != nil {
		return apperrors.NewPersistenceError("failed to destroy session").WithCause(err)
	}

	return nil
}

// CurrentSession resolves a cookie value to its live session. Invalid or
// tampered tokens and absent or expired sessions all yield
// ErrSessionNotFound; the caller treats that as the anonymous state.
func (uc *AccountUsecase) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	sessionID, err := uc.tokenSvc.Parse(ctx, token)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, apperrors.NewPersistenceError("failed to get session").WithCause(err)
	}

	return session, nil
}

// PromoteUser grants the admin role to the given email. Promoting an
// already-admin user or an absent email is a no-op.
func (uc *AccountUsecase) PromoteUser(ctx context.Context, email string) error {
	return uc.setAdmin(ctx, email, true)
}

// DemoteUser revokes the admin role from the given email. Demoting a
// non-admin user or an absent email is a no-op.
func (uc *AccountUsecase) DemoteUser(ctx context.Context, email string) error {
	return uc.setAdmin(ctx, email, false)
}

func (uc *AccountUsecase) setAdmin(ctx context.Context, email string, admin bool) error {
	if err := uc.users.SetAdmin(ctx, normalizeEmail(email), admin); err != nil {
		return apperrors.NewPersistenceError("failed to update admin flag").WithCause(err)
	}
	return nil
}

// ListUsers returns the directory contents for the admin listing.
func (uc *AccountUsecase) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to list users").WithCause(err)
	}
	return users, nil
}

// Ensure AccountUsecase implements AccountUsecaseInterface
var _ AccountUsecaseInterface = (*AccountUsecase)(nil)
