package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Policy *domain.Policy
	// Clock overrides time.Now; tests use it to move past session expiry.
	Clock func() time.Time
}

// Now returns the current UTC time.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeUser checks user against the capabilities required by action.
// Without a configured policy the default action table applies.
func (s *BaseService) AuthorizeUser(ctx context.Context, action domain.Action, user *domain.User) error {
	policy := s.Policy
	if policy == nil {
		policy = defaultPolicy
	}
	if err := policy.Authorize(action, user); err != nil {
		userID := ""
		if user != nil {
			userID = user.UserID
		}
		s.LogDebug(ctx, "Action denied",
			slog.String("action", string(action)),
			slog.String("user_id", userID),
			slog.String("reason", err.Error()))
		return err
	}
	return nil
}

var defaultPolicy = domain.NewPolicy(domain.DefaultRequirements())

// hasCapability reports whether user holds c.
func hasCapability(user *domain.User, c domain.Capability) bool {
	return user.Capabilities()[c]
}
