package security

import (
	"context"
	"errors"
	"time"

	"memberhub/internal/accounts/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid          = errors.New("session token is invalid")
	ErrTokenExpired          = errors.New("session token is expired")
	ErrTokenSignatureInvalid = errors.New("session token signature is invalid")
)

// SessionTokenService signs the opaque session identifier into the cookie
// value as a compact HS256 token. The identifier travels in the JTI claim;
// the store remains the authority on session validity.
type SessionTokenService struct {
	secretKey []byte
	issuer    string
}

// NewSessionTokenService creates a token service from the session signing
// secret.
func NewSessionTokenService(cfg *config.Config) (*SessionTokenService, error) {
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret cannot be empty")
	}

	return &SessionTokenService{
		secretKey: []byte(cfg.SessionSecret),
		issuer:    "memberhub",
	}, nil
}

// Mint produces the signed cookie value for a session identifier.
func (s *SessionTokenService) Mint(ctx context.Context, sessionID string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Parse verifies a cookie value and returns the session identifier it
// carries.
func (s *SessionTokenService) Parse(ctx context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return "", ErrTokenSignatureInvalid
		}
		return "", ErrTokenInvalid
	}

	if !token.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", ErrTokenInvalid
	}

	return claims.ID, nil
}
