package dto

// ErrorResponse is the generic error body. Code is set for errors the
// storefront reacts to programmatically ("1" = sign in again).
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
