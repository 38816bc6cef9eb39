package services

import (
	"time"

	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/core/ports"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/platform/config"
)

// Externals are the non-storage collaborators of the services.
type Externals struct {
	Hasher  ports.PasswordHasher
	Tokens  ports.TokenGenerator
	Gateway ports.PaymentGateway
	Google  ports.GoogleTokenVerifier // nil disables Google sign-in
	Tracker ports.EventTracker        // nil disables analytics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, ext Externals) *portssvc.ServiceContainer {
	policy := domain.NewPolicy(domain.DefaultRequirements())
	container := &portssvc.ServiceContainer{Policy: policy}

	sessionOpts := []SessionServiceOption{
		WithSessionTTL(cfg.SessionTTL),
		WithClearOnConflict(cfg.SessionClearOnConflict),
		WithSessionPolicy(policy),
	}
	if ext.Google != nil {
		sessionOpts = append(sessionOpts, WithGoogleVerifier(ext.Google))
	}
	if ext.Tracker != nil {
		sessionOpts = append(sessionOpts, WithSessionEventTracker(ext.Tracker))
	}
	container.Session = NewSessionService(repos.UserRepo, repos.SessionRepo, ext.Hasher, ext.Tokens, sessionOpts...)

	container.Order = NewOrderService(repos.OrderRepo, repos.UserRepo, container.Session,
		WithOrderPolicy(policy),
		WithOrderEventTracker(ext.Tracker),
	)

	container.Payment = NewPaymentService(ext.Gateway, container.Session,
		WithGatewayTimeout(cfg.GatewayTimeout),
		WithGatewayRetry(cfg.GatewayMaxAttempts, 200*time.Millisecond),
		WithPaymentPolicy(policy),
		WithPaymentEventTracker(ext.Tracker),
	)

	container.User = NewUserService(repos.UserRepo, repos.SessionRepo, ext.Hasher, policy)
	container.Catalog = NewCatalogService(repos.CatalogRepo, policy)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.SessionSvcFacade = (*sessionService)(nil)
	_ portssvc.OrderSvcFacade   = (*orderService)(nil)
	_ portssvc.PaymentSvc       = (*paymentService)(nil)
	_ portssvc.UserSvcFacade    = (*userService)(nil)
	_ portssvc.CatalogSvcFacade = (*catalogService)(nil)
)
