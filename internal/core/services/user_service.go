package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/core/ports"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/dto"
)

type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	sessionRepo portsrepo.SessionWriter
	hasher      ports.PasswordHasher
}

// NewUserService creates a new user service. sessionRepo is used to sign a
// user out when their password changes.
func NewUserService(
	userRepo portsrepo.UserRepositoryFacade,
	sessionRepo portsrepo.SessionWriter,
	hasher ports.PasswordHasher,
	policy *domain.Policy,
) portssvc.UserSvcFacade {
	return &userService{
		BaseService: BaseService{Policy: policy},
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if err := s.AuthorizeUser(ctx, domain.ActionUserCreate, nil); err != nil {
		return nil, err
	}
	user, err := s.newUser(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	user.Phone = req.Phone
	user.Gender = req.Gender

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user")
		}
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	public := user.Public()
	return &public, nil
}

// newUser validates credentials and builds an active user with a hashed password.
func (s *userService) newUser(email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if !domain.IsValidEmail(email) {
		return nil, apperrors.ErrMalformedEmail
	}
	if len(password) < domain.MinPasswordLength {
		return nil, apperrors.ErrPasswordTooShort
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         domain.DefaultUserName,
		IsActive:     true,
	}
	user.Touch(s.Now())
	return user, nil
}

// checkOwnership allows a user to act on their own account, and staff on any.
func (s *userService) checkOwnership(requester *domain.User, userID string) error {
	if requester.UserID == userID || hasCapability(requester, domain.CapStaff) {
		return nil
	}
	return fmt.Errorf("user %s may not access user %s: %w", requester.UserID, userID, apperrors.ErrForbidden)
}

func (s *userService) GetUser(ctx context.Context, requester *domain.User, userID string) (*domain.User, error) {
	if err := s.AuthorizeUser(ctx, domain.ActionUserRead, requester); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(requester, userID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

func (s *userService) ListUsers(ctx context.Context, requester *domain.User, limit, offset int) ([]domain.User, error) {
	if err := s.AuthorizeUser(ctx, domain.ActionUserList, requester); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]domain.User, len(users))
	for i := range users {
		out[i] = users[i].Public()
	}
	return out, nil
}

func (s *userService) UpdateUser(ctx context.Context, requester *domain.User, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if err := s.AuthorizeUser(ctx, domain.ActionUserUpdate, requester); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(requester, userID); err != nil {
		return nil, err
	}
	if (req.IsStaff != nil || req.IsActive != nil) && !hasCapability(requester, domain.CapSuperuser) {
		return nil, fmt.Errorf("changing role flags requires superuser: %w", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user for update", slog.String("user_id", userID))
		}
		return nil, err
	}
	if requester.UserID != userID && !hasCapability(requester, domain.CapSuperuser) &&
		(req.Password != nil || user.IsSuperuser) {
		return nil, fmt.Errorf("changing another user's password or a superuser account requires superuser: %w", apperrors.ErrForbidden)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
		if user.Name == "" {
			user.Name = domain.DefaultUserName
		}
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Password != nil {
		if len(*req.Password) < domain.MinPasswordLength {
			return nil, apperrors.ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.Touch(s.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	if req.Password != nil {
		if err := s.revokeSession(ctx, userID); err != nil {
			return nil, err
		}
	}

	s.LogInfo(ctx, "User updated",
		slog.String("user_id", userID),
		slog.String("updated_by", requester.UserID),
		slog.Bool("password_changed", req.Password != nil))
	public := user.Public()
	return &public, nil
}

// revokeSession signs the user out so a token issued under the old password
// stops validating.
func (s *userService) revokeSession(ctx context.Context, userID string) error {
	err := s.sessionRepo.UpdateSession(ctx, userID, func(current domain.Session) (*domain.Session, error) {
		current.Clear(s.Now())
		return &current, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to revoke session after password change", slog.String("user_id", userID))
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, requester *domain.User, userID string) error {
	if err := s.AuthorizeUser(ctx, domain.ActionUserDelete, requester); err != nil {
		return err
	}
	if requester.UserID == userID {
		return fmt.Errorf("cannot delete the signed-in account: %w", apperrors.ErrValidation)
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		}
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID), slog.String("deleted_by", requester.UserID))
	return nil
}

func (s *userService) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, bool, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err == nil {
		public := existing.Public()
		return &public, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up admin: %w", err)
	}

	user, err := s.newUser(email, password)
	if err != nil {
		return nil, false, err
	}
	user.Name = "Admin"
	user.IsStaff = true
	user.IsSuperuser = true

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		return nil, false, err
	}
	s.LogInfo(ctx, "Admin user created", slog.String("user_id", user.UserID))
	public := user.Public()
	return &public, true, nil
}
