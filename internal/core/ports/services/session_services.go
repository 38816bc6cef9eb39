package services

import (
	"context"

	"github.com/lcodev/ecom_backend/internal/core/domain"
)

// SignInResult is returned by a successful sign-in. User never carries the
// password hash.
type SignInResult struct {
	Token string
	User  domain.User
}

// SessionAuthSvc issues and revokes session tokens.
type SessionAuthSvc interface {
	// SignIn checks the credentials and issues a fresh token. A live token
	// blocks sign-in with apperrors.ErrSessionAlreadyActive.
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)

	// SignInWithGoogle resolves the user from a verified Google ID token and
	// issues a token under the same single-session rule.
	SignInWithGoogle(ctx context.Context, idToken string) (*SignInResult, error)

	// SignOut resets the user's token to the sentinel.
	SignOut(ctx context.Context, userID string) error
}

// SessionCheckerSvc validates bearer credentials.
type SessionCheckerSvc interface {
	// ValidateSession reports whether token is the user's live token.
	// Lookup failures yield false.
	ValidateSession(ctx context.Context, userID, token string) bool

	// Authenticate returns the user owning a live token, or
	// apperrors.ErrReauthRequired.
	Authenticate(ctx context.Context, userID, token string) (*domain.User, error)
}

// SessionSvcFacade combines all session-related service interfaces
type SessionSvcFacade interface {
	SessionAuthSvc
	SessionCheckerSvc
}
