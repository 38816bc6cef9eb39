// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/ports"
	"google.golang.org/api/idtoken"
)

// validateFunc matches idtoken.Validate.
type validateFunc func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// IDTokenVerifier checks ID tokens against Google's published keys.
type IDTokenVerifier struct {
	clientID string
	validate validateFunc
}

var _ ports.GoogleTokenVerifier = (*IDTokenVerifier)(nil)

// NewIDTokenVerifier returns a verifier for tokens issued to clientID, or nil
// when no client id is configured.
func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	if clientID == "" {
		return nil
	}
	return &IDTokenVerifier{clientID: clientID, validate: idtoken.Validate}
}

// VerifiedEmail validates the token and returns its verified email claim.
func (v *IDTokenVerifier) VerifiedEmail(ctx context.Context, idToken string) (string, error) {
	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		return "", fmt.Errorf("invalid google id token: %v: %w", err, apperrors.ErrUnauthorized)
	}
	return emailFromClaims(payload.Claims)
}

func emailFromClaims(claims map[string]interface{}) (string, error) {
	email, _ := claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("google id token has no email claim: %w", apperrors.ErrUnauthorized)
	}
	if verified, ok := claims["email_verified"].(bool); ok && !verified {
		return "", errors.Join(apperrors.ErrUnauthorized, fmt.Errorf("google email %s is not verified", email))
	}
	return email, nil
}
