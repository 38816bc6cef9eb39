package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSeparator joins product names in Order.ProductNames.
const ProductSeparator = ","

// Column limits of the orders table.
const (
	MaxProductNamesLength  = 500
	MaxTransactionIDLength = 150
	AmountScale            = 2
)

// MaxAmount is the largest total a NUMERIC(12,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// ParseAmount accepts a non-negative decimal with at most AmountScale
// fractional digits that fits MaxAmount.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || amount.IsNegative() || amount.GreaterThan(MaxAmount) {
		return decimal.Zero, false
	}
	if !amount.Equal(amount.Round(AmountScale)) {
		return decimal.Zero, false
	}
	return amount, true
}

// Order is created exactly once at checkout and never changes afterwards.
type Order struct {
	OrderID       string          `json:"orderID"`
	UserID        *string         `json:"userID"` // nil once the owning user is deleted
	ProductNames  string          `json:"productNames"`
	TotalProducts int             `json:"totalProducts"`
	TransactionID string          `json:"transactionID"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Timestamps
}

// CountProducts applies the trailing-comma split rule: the string is split on
// the separator and the final element is dropped, so "a,b," counts 2 and "a,b"
// counts 1. Clients always send a trailing separator.
func CountProducts(products string) int {
	return len(strings.Split(products, ProductSeparator)) - 1
}

// ProductList returns the names counted by CountProducts.
func ProductList(products string) []string {
	parts := strings.Split(products, ProductSeparator)
	return parts[:len(parts)-1]
}

// NewOrder builds an order with its derived product count.
func NewOrder(userID, transactionID string, amount decimal.Decimal, products string, now time.Time) Order {
	owner := userID
	o := Order{
		OrderID:       uuid.NewString(),
		UserID:        &owner,
		ProductNames:  products,
		TotalProducts: CountProducts(products),
		TransactionID: transactionID,
		TotalAmount:   amount,
	}
	o.Touch(now)
	return o
}
