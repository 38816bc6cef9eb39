package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below unwraps to exactly one of these, so
// callers can branch with errors.Is(err, apperrors.ErrNotFound) and friends.
var (
	// ErrValidation indicates that input data failed validation checks.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates a missing, invalid or expired session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an authenticated caller lacking a capability.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates the request clashes with the current state of a resource.
	ErrConflict = errors.New("conflict")

	// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
	ErrDuplicate = fmt.Errorf("resource already exists: %w", ErrConflict)

	// ErrUpstream indicates a failure in an external collaborator (payment gateway).
	ErrUpstream = errors.New("upstream failure")
)

// Session manager errors.
var (
	ErrMalformedEmail       = newKindError(ErrValidation, "Enter a valid email")
	ErrPasswordTooShort     = newKindError(ErrValidation, "Password needs to be at least of 3 chars")
	ErrInvalidEmail         = newKindError(ErrNotFound, "Invalid Email")
	ErrInvalidPassword      = newKindError(ErrUnauthorized, "Invalid password")
	ErrSessionAlreadyActive = newKindError(ErrConflict, "Previous session exists")
	ErrInvalidUserID        = newKindError(ErrNotFound, "Invalid user ID")
	ErrGoogleSignInDisabled = newKindError(ErrValidation, "Google sign-in is not configured")
)

// Order and payment errors.
var (
	ErrReauthRequired     = newKindError(ErrUnauthorized, "Please re-login")
	ErrUserNotFound       = newKindError(ErrNotFound, "User does not exist")
	ErrMethodNotAllowed   = newKindError(ErrValidation, "Send a post request with valid parameter only")
	ErrInvalidAmount      = newKindError(ErrValidation, "Amount must be a non-negative decimal")
	ErrProductsTooLong    = newKindError(ErrValidation, "Product list is too long")
	ErrTransactionTooLong = newKindError(ErrValidation, "Transaction ID is too long")
	ErrMissingNonce       = newKindError(ErrValidation, "paymentMethodNonce is required")
	ErrGatewayUnavailable = newKindError(ErrUpstream, "Payment gateway unavailable, please retry")
	ErrPaymentDeclined    = newKindError(ErrUpstream, "Payment declined")
)

// kindError is a named error that belongs to one of the kinds above.
type kindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// DeclineError carries the gateway's own reason for refusing a charge.
type DeclineError struct {
	Reason string
	Code   string
}

func (e *DeclineError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", ErrPaymentDeclined.Error(), e.Reason, e.Code)
	}
	return fmt.Sprintf("%s: %s", ErrPaymentDeclined.Error(), e.Reason)
}

func (e *DeclineError) Unwrap() error { return ErrPaymentDeclined }

// NewDeclineError builds a terminal payment failure with the gateway's reason.
func NewDeclineError(reason, code string) error {
	return &DeclineError{Reason: reason, Code: code}
}

// IsRetryable reports whether err is a transient upstream failure that the
// caller may safely retry. Declines are terminal.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrGatewayUnavailable)
}

// DeclineReason extracts the gateway decline reason, if any.
func DeclineReason(err error) (string, bool) {
	var de *DeclineError
	if errors.As(err, &de) {
		return de.Reason, true
	}
	return "", false
}

// AppError wraps an infrastructure failure with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }
