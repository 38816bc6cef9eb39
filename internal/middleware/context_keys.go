package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lcodev/ecom_backend/internal/core/domain"
)

const (
	// userIDKey is the key used to store the authenticated user's ID in the Gin context.
	userIDKey = contextKey("userID")
	// userKey holds the authenticated *domain.User.
	userKey = contextKey("user")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetUserFromContext returns the user resolved by SessionAuthMiddleware.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	val, exists := c.Get(string(userKey))
	if !exists {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok && user != nil
}

// SetUserInContext records an authenticated user. Handlers that check the
// session themselves use it so analytics can attribute the request.
func SetUserInContext(c *gin.Context, user *domain.User) {
	c.Set(string(userKey), user)
	c.Set(string(userIDKey), user.UserID)
}
