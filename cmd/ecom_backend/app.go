package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lcodev/ecom_backend/internal/adapters/database/memory"
	"github.com/lcodev/ecom_backend/internal/adapters/database/pgsql"
	"github.com/lcodev/ecom_backend/internal/adapters/gateway"
	"github.com/lcodev/ecom_backend/internal/adapters/google"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/core/services"
	"github.com/lcodev/ecom_backend/internal/platform/config"
	"github.com/lcodev/ecom_backend/internal/utils"
	"github.com/lcodev/ecom_backend/pkg/database"
)

// application holds everything built from the configuration.
type application struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
	tracker  *utils.PosthogClientWrapper
}

// bootstrap loads the configuration and wires storage, adapters and services.
func bootstrap(ctx context.Context, logger *slog.Logger) (*application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &application{cfg: cfg, logger: logger}

	var repos portsrepo.RepositoryProvider
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on exit.")
		repos = memory.NewRepositoryProvider(memory.NewStore())
	default:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		app.pool = pool
		repos = pgsql.NewRepositoryProvider(pool)
	}

	app.tracker = utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)

	ext := services.Externals{
		Hasher:  utils.BcryptHasher{},
		Tokens:  utils.SessionTokenGenerator{},
		Gateway: gateway.NewSandboxGateway(cfg.GatewayMerchantID, cfg.GatewaySecret),
		Tracker: app.tracker,
	}
	// Assigned only when configured so the interface stays nil otherwise.
	if verifier := google.NewIDTokenVerifier(cfg.GoogleClientID); verifier != nil {
		ext.Google = verifier
	}

	app.services = services.NewServiceContainer(cfg, repos, ext)
	return app, nil
}

// Close releases the database pool and flushes analytics.
func (a *application) Close() {
	a.tracker.Close()
	database.ClosePgxPool(a.pool)
}
