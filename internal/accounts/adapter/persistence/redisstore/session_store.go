package redisstore

import (
	"context"
	"errors"
	"time"

	"memberhub/internal/accounts/config"
	"memberhub/internal/accounts/domain/model"
	"memberhub/internal/accounts/usecase"
	"memberhub/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore persists sessions in Redis keyed by the opaque session
// identifier. The entry TTL mirrors the session's absolute expiry, so Redis
// purges expired sessions on its own; Get still checks the recorded expiry
// in case an entry outlives its deadline between purge cycles.
type RedisSessionStore struct {
	client *redis.Client
	codec  *sessionCodec
	logger logger.Logger
}

// NewRedisSessionStore creates a session store backed by the given Redis
// client. Payloads are sealed with the session-store encryption secret.
func NewRedisSessionStore(client *redis.Client, cfg *config.Config, log logger.Logger) (*RedisSessionStore, error) {
	codec, err := newSessionCodec(cfg.SessionEncryptionSecret)
	if err != nil {
		return nil, err
	}

	return &RedisSessionStore{
		client: client,
		codec:  codec,
		logger: log.WithComponent("session-store"),
	}, nil
}

type sessionRecord struct {
	Data      model.SessionData `json:"data"`
	ExpiresAt time.Time         `json:"expires_at"`
	CreatedAt time.Time         `json:"created_at"`
}

// Create stores the session until its absolute expiry.
func (s *RedisSessionStore) Create(ctx context.Context, session *model.Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session must have an identifier")
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is already expired")
	}

	sealed, err := s.codec.seal(sessionRecord{
		Data:      session.Data,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	})
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, sealed, ttl).Err(); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"session_id": session.ID,
		}).Error("failed to store session: ", err)
		return err
	}

	return nil
}

// Get returns the session for the given identifier, or
// usecase.ErrSessionNotFound when absent or expired.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, usecase.ErrSessionNotFound
	}

	sealed, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var record sessionRecord
	if err := s.codec.open(sealed, &record); err != nil {
		// Undecryptable entries are treated as absent; the encryption
		// secret may have rotated.
		s.logger.Warn("discarding unreadable session payload: ", err)
		return nil, usecase.ErrSessionNotFound
	}

	session := &model.Session{
		ID:        id,
		Data:      record.Data,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
	}

	if session.Expired(time.Now()) {
		_ = s.client.Del(ctx, sessionKeyPrefix+id).Err()
		return nil, usecase.ErrSessionNotFound
	}

	return session, nil
}

// Destroy removes the session. Removing an absent session is not an error.
func (s *RedisSessionStore) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}
