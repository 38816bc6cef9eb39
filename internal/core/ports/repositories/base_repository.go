package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager opens and closes the transactions that hold session row
// locks. Rollback after Commit is a no-op.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
