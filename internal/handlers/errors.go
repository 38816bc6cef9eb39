package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/dto"
	"github.com/lcodev/ecom_backend/internal/middleware"
)

// publicErrors are shown to clients verbatim; the storefront matches on them.
var publicErrors = []error{
	apperrors.ErrMethodNotAllowed,
	apperrors.ErrMalformedEmail,
	apperrors.ErrPasswordTooShort,
	apperrors.ErrInvalidEmail,
	apperrors.ErrInvalidPassword,
	apperrors.ErrSessionAlreadyActive,
	apperrors.ErrInvalidUserID,
	apperrors.ErrGoogleSignInDisabled,
	apperrors.ErrReauthRequired,
	apperrors.ErrUserNotFound,
	apperrors.ErrInvalidAmount,
	apperrors.ErrProductsTooLong,
	apperrors.ErrTransactionTooLong,
	apperrors.ErrMissingNonce,
	apperrors.ErrGatewayUnavailable,
	apperrors.ErrPaymentDeclined,
}

// statusForError maps error kinds to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, apperrors.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-facing text for err.
func errorMessage(err error, status int) string {
	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusConflict:
		return "Resource already exists"
	default:
		return "Internal server error"
	}
}

// toErrorResponse builds the JSON body for err.
func toErrorResponse(err error) (int, dto.ErrorResponse) {
	status := statusForError(err)
	resp := dto.ErrorResponse{Error: errorMessage(err, status)}
	if errors.Is(err, apperrors.ErrReauthRequired) {
		resp.Code = middleware.ReauthCode
	}
	return status, resp
}

// respondError logs err at a level matching its status and writes the JSON body.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, resp := toErrorResponse(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()), slog.Int("status", status))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, resp)
}

// respondBindError answers a request whose body or query failed to bind.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// respondSessionBindError answers a body that failed to bind on a session
// route. A stale session is reported ahead of the malformed body.
func respondSessionBindError(c *gin.Context, sessions portssvc.SessionCheckerSvc, err error) {
	if !sessions.ValidateSession(c.Request.Context(), c.Param("id"), c.Param("token")) {
		respondError(c, apperrors.ErrReauthRequired, "Request rejected, session invalid")
		return
	}
	respondBindError(c, err)
}
