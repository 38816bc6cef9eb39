package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/core/ports"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/dto"
	"github.com/lcodev/ecom_backend/internal/platform/metrics"
	"github.com/lcodev/ecom_backend/internal/utils"
)

type paymentService struct {
	BaseService
	gateway     ports.PaymentGateway
	sessions    portssvc.SessionCheckerSvc
	tracker     ports.EventTracker
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithGatewayTimeout bounds every gateway call.
func WithGatewayTimeout(d time.Duration) PaymentServiceOption {
	return func(s *paymentService) {
		s.timeout = d
	}
}

// WithGatewayRetry sets the attempt budget and base backoff for client token
// requests. Charges are never retried.
func WithGatewayRetry(maxAttempts int, backoff time.Duration) PaymentServiceOption {
	return func(s *paymentService) {
		s.maxAttempts = maxAttempts
		s.backoff = backoff
	}
}

// WithPaymentEventTracker adds analytics tracking of charges.
func WithPaymentEventTracker(t ports.EventTracker) PaymentServiceOption {
	return func(s *paymentService) {
		s.tracker = t
	}
}

// WithPaymentPolicy sets the action table.
func WithPaymentPolicy(p *domain.Policy) PaymentServiceOption {
	return func(s *paymentService) {
		s.Policy = p
	}
}

// NewPaymentService creates a new payment service.
func NewPaymentService(gateway ports.PaymentGateway, sessions portssvc.SessionCheckerSvc, options ...PaymentServiceOption) portssvc.PaymentSvc {
	svc := &paymentService{
		gateway:     gateway,
		sessions:    sessions,
		timeout:     10 * time.Second,
		maxAttempts: 3,
		backoff:     200 * time.Millisecond,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.maxAttempts < 1 {
		svc.maxAttempts = 1
	}
	return svc
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

func (s *paymentService) GetClientToken(ctx context.Context, userID, token string) (string, error) {
	user, err := s.sessions.Authenticate(ctx, userID, token)
	if err != nil {
		return "", err
	}
	if err := s.AuthorizeUser(ctx, domain.ActionPaymentToken, user); err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		start := time.Now()
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		clientToken, err := s.gateway.GenerateClientToken(callCtx, user.UserID)
		cancel()

		if err == nil {
			metrics.ObserveGatewayCall("client_token", "success", start)
			return clientToken, nil
		}

		lastErr = normalizeGatewayError(err)
		metrics.ObserveGatewayCall("client_token", gatewayOutcome(lastErr), start)
		if !apperrors.IsRetryable(lastErr) || attempt == s.maxAttempts {
			break
		}

		s.LogInfo(ctx, "Client token request failed, retrying",
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()))
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", apperrors.ErrGatewayUnavailable, ctx.Err())
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}

	s.LogError(ctx, lastErr, "Failed to generate client token", slog.String("user_id", user.UserID))
	return "", lastErr
}

func (s *paymentService) Charge(ctx context.Context, req dto.ChargeRequest) (*domain.PaymentTransaction, error) {
	user, err := s.sessions.Authenticate(ctx, req.UserID, req.Token)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, domain.ActionPaymentCharge, user); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.PaymentMethodNonce) == "" {
		return nil, apperrors.ErrMissingNonce
	}
	amount, ok := domain.ParseAmount(req.Amount)
	if !ok {
		return nil, apperrors.ErrInvalidAmount
	}

	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	txn, err := s.gateway.Sale(callCtx, domain.SaleRequest{
		Amount:              amount,
		PaymentMethodNonce:  req.PaymentMethodNonce,
		SubmitForSettlement: true,
		CustomerID:          user.UserID,
	})
	if err != nil {
		err = normalizeGatewayError(err)
		outcome := gatewayOutcome(err)
		metrics.ObserveGatewayCall("sale", outcome, start)

		props := map[string]any{"amount": utils.FormatAmount(amount), "outcome": outcome}
		if reason, ok := apperrors.DeclineReason(err); ok {
			props["reason"] = reason
			s.LogInfo(ctx, "Charge declined", slog.String("user_id", user.UserID), slog.String("reason", reason))
		} else {
			s.LogError(ctx, err, "Charge failed", slog.String("user_id", user.UserID))
		}
		if s.tracker != nil {
			s.tracker.Track(user.UserID, utils.EventPaymentFailed, props)
		}
		return nil, err
	}

	metrics.ObserveGatewayCall("sale", "success", start)
	if s.tracker != nil {
		s.tracker.Track(user.UserID, utils.EventPaymentCharge, map[string]any{
			"transaction_id": txn.ID,
			"amount":         utils.FormatAmount(txn.Amount),
		})
	}
	s.LogInfo(ctx, "Charge settled",
		slog.String("user_id", user.UserID),
		slog.String("transaction_id", txn.ID))
	return txn, nil
}

// normalizeGatewayError maps timeouts that the adapter did not classify to
// ErrGatewayUnavailable.
func normalizeGatewayError(err error) error {
	if errors.Is(err, apperrors.ErrUpstream) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", apperrors.ErrGatewayUnavailable, err)
	}
	return err
}

func gatewayOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrPaymentDeclined):
		return "declined"
	case errors.Is(err, apperrors.ErrGatewayUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
