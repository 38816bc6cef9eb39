package ports

import (
	"context"

	"github.com/lcodev/ecom_backend/internal/core/domain"
)

// PaymentGateway is the external payment processor.
//
// Implementations must return errors wrapping apperrors.ErrGatewayUnavailable
// for transport failures and timeouts, and apperrors.DeclineError for
// processor or gateway rejections.
type PaymentGateway interface {
	// GenerateClientToken returns a token the storefront uses to tokenize a card.
	GenerateClientToken(ctx context.Context, customerID string) (string, error)

	// Sale submits a charge.
	Sale(ctx context.Context, req domain.SaleRequest) (*domain.PaymentTransaction, error)
}

// PasswordHasher hashes and verifies passwords with a per-record salt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenGenerator issues opaque session tokens.
type TokenGenerator interface {
	NewSessionToken() (string, error)
}

// GoogleTokenVerifier validates a Google ID token and returns the verified email.
type GoogleTokenVerifier interface {
	VerifiedEmail(ctx context.Context, idToken string) (string, error)
}

// EventTracker records product analytics events. Implementations must not block.
type EventTracker interface {
	Track(distinctID, event string, properties map[string]any)
}
