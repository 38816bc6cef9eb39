package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
)

// Session credential headers for routes that do not carry them in the path.
const (
	HeaderUserID       = "X-User-ID"
	HeaderSessionToken = "X-Session-Token"
)

// ReauthCode tells the storefront to send the user back to sign-in.
const ReauthCode = "1"

// SessionCredentials returns the user id and token of a request. Headers win
// over the :id and :token path parameters.
func SessionCredentials(c *gin.Context) (string, string) {
	userID := c.GetHeader(HeaderUserID)
	token := c.GetHeader(HeaderSessionToken)
	if userID == "" {
		userID = c.Param("id")
	}
	if token == "" {
		token = c.Param("token")
	}
	return userID, token
}

// SessionAuthMiddleware requires a live session token and stores the owning
// user in the context.
func SessionAuthMiddleware(sessions portssvc.SessionCheckerSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, token := SessionCredentials(c)
		if userID == "" || token == "" {
			logger.Warn("Session credentials missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrReauthRequired.Error(), "code": ReauthCode})
			return
		}

		user, err := sessions.Authenticate(c.Request.Context(), userID, token)
		if err != nil {
			logger.Warn("Session rejected", slog.String("user_id", userID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrReauthRequired.Error(), "code": ReauthCode})
			return
		}

		SetUserInContext(c, user)

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx := context.WithValue(c.Request.Context(), userIDKey, user.UserID)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}
