package repositories

import (
	"context"

	"github.com/lcodev/ecom_backend/internal/core/domain"
)

// SessionMutator inspects the current session of a user and returns the row to
// store. A nil session leaves storage untouched. A non-nil session is persisted
// even when an error is returned as well, so a caller can record a state change
// and still report a failure.
type SessionMutator func(current domain.Session) (*domain.Session, error)

// SessionReader defines read operations for session data
type SessionReader interface {
	// FindSession returns the session row of a user. A user without a row gets
	// a signed-out session. Returns apperrors.ErrNotFound for unknown users.
	FindSession(ctx context.Context, userID string) (*domain.Session, error)
}

// SessionWriter defines the serialised read-modify-write of a session.
type SessionWriter interface {
	// UpdateSession runs fn while holding the per-user lock, so concurrent
	// sign-ins for the same user observe each other's writes.
	// Returns apperrors.ErrNotFound for unknown users.
	UpdateSession(ctx context.Context, userID string, fn SessionMutator) error
}

// SessionRepositoryFacade combines all session-related repository interfaces
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
}
