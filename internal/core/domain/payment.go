package domain

import "github.com/shopspring/decimal"

// TransactionStatus mirrors the gateway's transaction lifecycle.
type TransactionStatus string

const (
	StatusSubmittedForSettlement TransactionStatus = "submitted_for_settlement"
	StatusAuthorized             TransactionStatus = "authorized"
	StatusProcessorDeclined      TransactionStatus = "processor_declined"
	StatusGatewayRejected        TransactionStatus = "gateway_rejected"
)

// SaleRequest is a charge submitted to the payment gateway.
type SaleRequest struct {
	Amount             decimal.Decimal
	PaymentMethodNonce string
	// SubmitForSettlement captures immediately instead of only authorizing.
	SubmitForSettlement bool
	CustomerID          string
}

// PaymentTransaction is the gateway's record of a successful sale.
type PaymentTransaction struct {
	ID     string            `json:"id"`
	Amount decimal.Decimal   `json:"amount"`
	Status TransactionStatus `json:"status"`
}
