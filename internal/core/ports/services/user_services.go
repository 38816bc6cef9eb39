package services

import (
	"context"

	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUser retrieves a user. Callers without staff may only read themselves.
	GetUser(ctx context.Context, requester *domain.User, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users; restricted to staff.
	ListUsers(ctx context.Context, requester *domain.User, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser signs a new user up.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user's profile and optionally password.
	UpdateUser(ctx context.Context, requester *domain.User, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// EnsureAdmin creates the superuser account if the email is not taken yet.
	// The bool reports whether a user was created.
	EnsureAdmin(ctx context.Context, email, password string) (*domain.User, bool, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes a user; restricted to superusers.
	DeleteUser(ctx context.Context, requester *domain.User, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
