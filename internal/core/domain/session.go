package domain

import (
	"crypto/subtle"
	"time"
)

const (
	// SentinelToken is the stored token value meaning "no active session".
	SentinelToken = "0"
	// SessionTokenLength is the number of characters in an issued token.
	SessionTokenLength = 10
	// SessionTokenAlphabet holds the characters a token is drawn from.
	SessionTokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Session is the single server-side bearer credential of a user.
// There is exactly one row per user; signing out resets Token to SentinelToken.
type Session struct {
	UserID    string    `json:"userID"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"` // zero means no expiry
	Timestamps
}

// NewSignedOutSession returns the initial session row for a user.
func NewSignedOutSession(userID string, now time.Time) Session {
	s := Session{UserID: userID, Token: SentinelToken}
	s.Touch(now)
	return s
}

// IsActive reports whether the session holds a live, non-sentinel token.
func (s *Session) IsActive(now time.Time) bool {
	if s == nil || s.Token == "" || s.Token == SentinelToken {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Matches reports whether token is the session's live token.
func (s *Session) Matches(token string, now time.Time) bool {
	if !s.IsActive(now) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.Token), []byte(token)) == 1
}

// Activate stores a freshly issued token.
func (s *Session) Activate(token string, ttl time.Duration, now time.Time) {
	s.Token = token
	s.ExpiresAt = time.Time{}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	s.Touch(now)
}

// Clear resets the session to the sentinel.
func (s *Session) Clear(now time.Time) {
	s.Token = SentinelToken
	s.ExpiresAt = time.Time{}
	s.Touch(now)
}
