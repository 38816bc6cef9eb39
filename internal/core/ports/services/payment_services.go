package services

import (
	"context"

	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/dto"
)

// PaymentSvc bridges authenticated storefront requests to the payment gateway.
type PaymentSvc interface {
	// GetClientToken returns a gateway client token for the session owner.
	GetClientToken(ctx context.Context, userID, token string) (string, error)

	// Charge submits a sale for settlement. It is never retried.
	Charge(ctx context.Context, req dto.ChargeRequest) (*domain.PaymentTransaction, error)
}
