package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(dbPool),
		SessionRepo: newPgxSessionRepository(dbPool),
		OrderRepo:   newPgxOrderRepository(dbPool),
		CatalogRepo: newPgxCatalogRepository(dbPool),
	}
}
