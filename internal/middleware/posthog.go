package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lcodev/ecom_backend/internal/core/ports"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events with PostHog
func PosthogMiddleware(tracker ports.EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not configured or path is in skip list
		if tracker == nil || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Skip if there was an error processing the request
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Get user ID from context (set by auth middleware or session-checking handlers)
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// Create event name from route path (e.g., "/api/order/add/:id/:token" -> "api_order_add")
		eventName := routeEventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}

		tracker.Track(userID, eventName, props)
	}
}

// routeEventName drops parameter segments so ids and tokens never reach analytics.
func routeEventName(fullPath string) string {
	var kept []string
	for _, p := range strings.Split(strings.TrimPrefix(fullPath, "/"), "/") {
		if p == "" || strings.HasPrefix(p, ":") || strings.HasPrefix(p, "*") {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "_")
}
