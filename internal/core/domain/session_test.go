package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionLifecycle(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewSignedOutSession("u1", now)

	assert.Equal(t, SentinelToken, s.Token)
	assert.False(t, s.IsActive(now))
	assert.False(t, s.Matches(SentinelToken, now), "sentinel must never validate")

	s.Activate("abc123defg", time.Hour, now)
	assert.True(t, s.IsActive(now))
	assert.True(t, s.Matches("abc123defg", now))
	assert.False(t, s.Matches("abc123defG", now))
	assert.False(t, s.Matches("abc123def", now))

	later := now.Add(2 * time.Hour)
	assert.False(t, s.IsActive(later), "expired session is inactive")
	assert.False(t, s.Matches("abc123defg", later))

	s.Clear(later)
	assert.Equal(t, SentinelToken, s.Token)
	assert.True(t, s.ExpiresAt.IsZero())
	assert.Equal(t, later, s.UpdatedAt)
}

func TestSessionWithoutExpiry(t *testing.T) {
	now := time.Now()
	s := NewSignedOutSession("u1", now)
	s.Activate("tok", 0, now)
	assert.True(t, s.IsActive(now.Add(24*365*time.Hour)))
}

func TestNilSessionIsInactive(t *testing.T) {
	var s *Session
	assert.False(t, s.IsActive(time.Now()))
	assert.False(t, s.Matches("x", time.Now()))
}
