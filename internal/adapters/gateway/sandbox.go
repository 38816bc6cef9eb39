// Package gateway holds payment gateway adapters.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/core/ports"
	"github.com/lcodev/ecom_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// Test nonces understood by the sandbox, named after the hosted sandbox ones.
const (
	NonceValid              = "fake-valid-nonce"
	NonceProcessorDeclined  = "fake-processor-declined-visa-nonce"
	NonceGatewayUnavailable = "fake-gateway-unavailable-nonce"
)

const (
	clientTokenIssuer = "ecom-sandbox-gateway"
	transactionIDLen  = 8
	transactionIDAlph = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Amounts above this are declined for insufficient funds.
var insufficientFundsThreshold = decimal.RequireFromString("2000.00")

// SandboxGateway is an in-process payment gateway with the hosted sandbox's
// test behaviour. It never moves money.
type SandboxGateway struct {
	merchantID string
	secret     string
	tokenTTL   time.Duration
	// latency delays every call, for exercising caller timeouts.
	latency time.Duration
}

// SandboxOption configures a SandboxGateway.
type SandboxOption func(*SandboxGateway)

// WithClientTokenTTL sets how long issued client tokens stay valid.
func WithClientTokenTTL(ttl time.Duration) SandboxOption {
	return func(g *SandboxGateway) {
		g.tokenTTL = ttl
	}
}

// WithLatency makes every call wait d before answering.
func WithLatency(d time.Duration) SandboxOption {
	return func(g *SandboxGateway) {
		g.latency = d
	}
}

// NewSandboxGateway creates a sandbox gateway signing client tokens with secret.
func NewSandboxGateway(merchantID, secret string, opts ...SandboxOption) *SandboxGateway {
	g := &SandboxGateway{
		merchantID: merchantID,
		secret:     secret,
		tokenTTL:   24 * time.Hour,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ ports.PaymentGateway = (*SandboxGateway)(nil)

// wait simulates the network round trip and honours cancellation.
func (g *SandboxGateway) wait(ctx context.Context) error {
	if g.latency <= 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrGatewayUnavailable, err)
		}
		return nil
	}
	timer := time.NewTimer(g.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", apperrors.ErrGatewayUnavailable, ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (g *SandboxGateway) GenerateClientToken(ctx context.Context, customerID string) (string, error) {
	if err := g.wait(ctx); err != nil {
		return "", err
	}
	token, err := utils.GenerateClientTokenJWT(g.merchantID, customerID, g.secret, g.tokenTTL, clientTokenIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign client token: %w", err)
	}
	return token, nil
}

func (g *SandboxGateway) Sale(ctx context.Context, req domain.SaleRequest) (*domain.PaymentTransaction, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	switch req.PaymentMethodNonce {
	case NonceValid:
	case NonceProcessorDeclined:
		return nil, apperrors.NewDeclineError("Do Not Honor", "2000")
	case NonceGatewayUnavailable:
		return nil, fmt.Errorf("sandbox outage: %w", apperrors.ErrGatewayUnavailable)
	default:
		return nil, apperrors.NewDeclineError("Unknown or expired payment_method_nonce", "91565")
	}

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewDeclineError("Amount must be greater than zero", "81531")
	}
	if req.Amount.GreaterThan(insufficientFundsThreshold) {
		return nil, apperrors.NewDeclineError("Insufficient Funds", "2001")
	}

	id, err := utils.GenerateFromAlphabet(transactionIDLen, transactionIDAlph)
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction id: %w", err)
	}

	status := domain.StatusAuthorized
	if req.SubmitForSettlement {
		status = domain.StatusSubmittedForSettlement
	}
	return &domain.PaymentTransaction{
		ID:     id,
		Amount: req.Amount.Round(2),
		Status: status,
	}, nil
}
