package dto

import (
	"time"

	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest is the checkout submission. Method, UserID and Token come
// from the request line, the rest from the form body.
type PlaceOrderRequest struct {
	Method        string `json:"-" form:"-"`
	UserID        string `json:"-" form:"-"`
	Token         string `json:"-" form:"-"`
	TransactionID string `json:"transaction_id" form:"transaction_id"`
	Amount        string `json:"amount" form:"amount"`
	Products      string `json:"products" form:"products"`
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	OrderID       string          `json:"id"`
	UserID        *string         `json:"user"`
	ProductNames  string          `json:"product_names"`
	TotalProducts int             `json:"total_products"`
	TransactionID string          `json:"transaction_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:       o.OrderID,
		UserID:        o.UserID,
		ProductNames:  o.ProductNames,
		TotalProducts: o.TotalProducts,
		TransactionID: o.TransactionID,
		TotalAmount:   o.TotalAmount,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// PlaceOrderResponse acknowledges a placed order.
type PlaceOrderResponse struct {
	Success bool          `json:"success"`
	Error   bool          `json:"error"`
	Msg     string        `json:"msg"`
	Order   OrderResponse `json:"order"`
}

// ListOrdersResponse wraps a list of orders.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// ToListOrdersResponse converts orders to their response DTOs.
func ToListOrdersResponse(orders []domain.Order) ListOrdersResponse {
	resp := ListOrdersResponse{Orders: make([]OrderResponse, len(orders))}
	for i := range orders {
		resp.Orders[i] = ToOrderResponse(&orders[i])
	}
	return resp
}
