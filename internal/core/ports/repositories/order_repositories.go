package repositories

import (
	"context"

	"github.com/lcodev/ecom_backend/internal/core/domain"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves a specific order.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrdersByUser retrieves a user's orders, newest first.
	ListOrdersByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Order, error)

	// ListOrders retrieves all orders, newest first.
	ListOrders(ctx context.Context, limit int, offset int) ([]domain.Order, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// SaveOrder persists a new order.
	SaveOrder(ctx context.Context, order domain.Order) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
