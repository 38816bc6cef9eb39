package dto

import "github.com/shopspring/decimal"

// ChargeRequest is the payment submission. UserID and Token come from the path.
type ChargeRequest struct {
	UserID             string `json:"-" form:"-"`
	Token              string `json:"-" form:"-"`
	PaymentMethodNonce string `json:"paymentMethodNonce" form:"paymentMethodNonce"`
	Amount             string `json:"amount" form:"amount"`
}

// ClientTokenResponse carries a gateway client token.
type ClientTokenResponse struct {
	ClientToken string `json:"clientToken"`
	Success     bool   `json:"success"`
}

// TransactionResponse is the charge summary returned to the storefront.
type TransactionResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
}

// ChargeResponse is returned on a settled charge.
type ChargeResponse struct {
	Success     bool                `json:"success"`
	Transaction TransactionResponse `json:"transaction"`
}

// ChargeErrorResponse is returned when a charge fails. Retryable is true only
// for transient gateway outages.
type ChargeErrorResponse struct {
	Error     string `json:"error"`
	Success   bool   `json:"success"`
	Reason    string `json:"reason,omitempty"`
	Retryable bool   `json:"retryable"`
}
