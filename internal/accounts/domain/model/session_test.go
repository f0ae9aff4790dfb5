package model_test

import (
	"testing"
	"time"

	"memberhub/internal/accounts/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestSessionExpired(t *testing.T) {
	now := time.Now()

	live := model.Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, live.Expired(now))

	lapsed := model.Session{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, lapsed.Expired(now))

	// A session expiring exactly now is expired
	boundary := model.Session{ExpiresAt: now}
	assert.True(t, boundary.Expired(now))
}
