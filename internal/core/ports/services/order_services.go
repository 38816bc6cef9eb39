package services

import (
	"context"

	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/dto"
)

// OrderWriterSvc defines checkout operations.
type OrderWriterSvc interface {
	// PlaceOrder validates the session and persists a new order.
	PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*domain.Order, error)
}

// OrderReaderSvc defines order listing operations.
type OrderReaderSvc interface {
	// ListMyOrders returns the orders of the session owner, newest first.
	ListMyOrders(ctx context.Context, userID, token string, limit, offset int) ([]domain.Order, error)

	// ListAllOrders returns every order; restricted to staff.
	ListAllOrders(ctx context.Context, requester *domain.User, limit, offset int) ([]domain.Order, error)
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderWriterSvc
	OrderReaderSvc
}
