package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/core/ports"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/platform/metrics"
	"github.com/lcodev/ecom_backend/internal/utils"
)

// sessionService implements the SessionSvcFacade interface
type sessionService struct {
	BaseService
	userRepo        portsrepo.UserReader
	sessionRepo     portsrepo.SessionRepositoryFacade
	hasher          ports.PasswordHasher
	tokens          ports.TokenGenerator
	google          ports.GoogleTokenVerifier
	tracker         ports.EventTracker
	ttl             time.Duration
	clearOnConflict bool
}

// SessionServiceOption is a functional option for configuring the session service
type SessionServiceOption func(*sessionService)

// WithSessionTTL sets how long an issued token stays valid. Zero disables expiry.
func WithSessionTTL(ttl time.Duration) SessionServiceOption {
	return func(s *sessionService) {
		s.ttl = ttl
	}
}

// WithClearOnConflict controls whether a sign-in blocked by a live token
// resets that token so the next attempt succeeds.
func WithClearOnConflict(clear bool) SessionServiceOption {
	return func(s *sessionService) {
		s.clearOnConflict = clear
	}
}

// WithGoogleVerifier enables Google ID token sign-in.
func WithGoogleVerifier(v ports.GoogleTokenVerifier) SessionServiceOption {
	return func(s *sessionService) {
		s.google = v
	}
}

// WithSessionEventTracker adds analytics tracking of sign-ins.
func WithSessionEventTracker(t ports.EventTracker) SessionServiceOption {
	return func(s *sessionService) {
		s.tracker = t
	}
}

// WithSessionClock overrides the service clock.
func WithSessionClock(now func() time.Time) SessionServiceOption {
	return func(s *sessionService) {
		s.Clock = now
	}
}

// WithSessionPolicy sets the action table.
func WithSessionPolicy(p *domain.Policy) SessionServiceOption {
	return func(s *sessionService) {
		s.Policy = p
	}
}

// NewSessionService creates a new session service with the provided options
func NewSessionService(
	userRepo portsrepo.UserReader,
	sessionRepo portsrepo.SessionRepositoryFacade,
	hasher ports.PasswordHasher,
	tokens ports.TokenGenerator,
	options ...SessionServiceOption,
) portssvc.SessionSvcFacade {
	svc := &sessionService{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		hasher:          hasher,
		tokens:          tokens,
		ttl:             30 * 24 * time.Hour,
		clearOnConflict: true,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure sessionService implements the SessionSvcFacade interface
var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) SignIn(ctx context.Context, email, password string) (*portssvc.SignInResult, error) {
	if !domain.IsValidEmail(email) {
		metrics.SignInAttempts.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrMalformedEmail
	}
	if len(password) < domain.MinPasswordLength {
		metrics.SignInAttempts.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrPasswordTooShort
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.SignInAttempts.WithLabelValues("invalid").Inc()
			return nil, apperrors.ErrInvalidEmail
		}
		s.LogError(ctx, err, "Failed to look up user for sign-in")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		s.LogDebug(ctx, "Sign-in attempt for inactive user", slog.String("user_id", user.UserID))
		metrics.SignInAttempts.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidEmail
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.SignInAttempts.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidPassword
	}

	return s.issueToken(ctx, user, "password")
}

func (s *sessionService) SignInWithGoogle(ctx context.Context, idToken string) (*portssvc.SignInResult, error) {
	if s.google == nil {
		return nil, apperrors.ErrGoogleSignInDisabled
	}

	email, err := s.google.VerifiedEmail(ctx, idToken)
	if err != nil {
		s.LogDebug(ctx, "Google ID token rejected", slog.String("reason", err.Error()))
		metrics.SignInAttempts.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("invalid google id token: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.SignInAttempts.WithLabelValues("invalid").Inc()
			return nil, apperrors.ErrInvalidEmail
		}
		s.LogError(ctx, err, "Failed to look up user for Google sign-in")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		metrics.SignInAttempts.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidEmail
	}

	return s.issueToken(ctx, user, "google")
}

// issueToken applies the single-session rule under the per-user session lock.
func (s *sessionService) issueToken(ctx context.Context, user *domain.User, method string) (*portssvc.SignInResult, error) {
	var issued string
	err := s.sessionRepo.UpdateSession(ctx, user.UserID, func(current domain.Session) (*domain.Session, error) {
		now := s.Now()
		if current.IsActive(now) {
			if s.clearOnConflict {
				current.Clear(now)
				return &current, apperrors.ErrSessionAlreadyActive
			}
			return nil, apperrors.ErrSessionAlreadyActive
		}

		token, err := s.tokens.NewSessionToken()
		if err != nil {
			return nil, fmt.Errorf("failed to generate session token: %w", err)
		}
		current.UserID = user.UserID
		current.Activate(token, s.ttl, now)
		issued = token
		return &current, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionAlreadyActive) {
			s.LogInfo(ctx, "Sign-in rejected, previous session exists",
				slog.String("user_id", user.UserID),
				slog.Bool("cleared", s.clearOnConflict))
			metrics.SignInAttempts.WithLabelValues("conflict").Inc()
			return nil, err
		}
		s.LogError(ctx, err, "Failed to store session", slog.String("user_id", user.UserID))
		return nil, err
	}

	metrics.SignInAttempts.WithLabelValues("success").Inc()
	if s.tracker != nil {
		s.tracker.Track(user.UserID, utils.EventSignedIn, map[string]any{"method": method})
	}
	s.LogInfo(ctx, "User signed in", slog.String("user_id", user.UserID), slog.String("method", method))

	return &portssvc.SignInResult{Token: issued, User: user.Public()}, nil
}

func (s *sessionService) SignOut(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.ErrInvalidUserID
	}
	err := s.sessionRepo.UpdateSession(ctx, userID, func(current domain.Session) (*domain.Session, error) {
		current.Clear(s.Now())
		return &current, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidUserID
		}
		s.LogError(ctx, err, "Failed to clear session", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User signed out", slog.String("user_id", userID))
	return nil
}

func (s *sessionService) ValidateSession(ctx context.Context, userID, token string) bool {
	if userID == "" || token == "" {
		return false
	}
	session, err := s.sessionRepo.FindSession(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load session", slog.String("user_id", userID))
		}
		return false
	}
	return session.Matches(token, s.Now())
}

func (s *sessionService) Authenticate(ctx context.Context, userID, token string) (*domain.User, error) {
	if !s.ValidateSession(ctx, userID, token) {
		return nil, apperrors.ErrReauthRequired
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load session owner", slog.String("user_id", userID))
		}
		return nil, apperrors.ErrReauthRequired
	}
	if !user.IsActive {
		return nil, apperrors.ErrReauthRequired
	}
	return user, nil
}
