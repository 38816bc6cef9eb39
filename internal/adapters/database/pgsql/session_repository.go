package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
)

const (
	selectSessionSQL = `
		SELECT u.user_id, u.created_at, s.token, s.expires_at, s.created_at, s.updated_at
		FROM users u
		LEFT JOIN user_sessions s ON s.user_id = u.user_id
		WHERE u.user_id = $1
	`
	// Locking the users row serialises sign-ins even before a session row exists.
	selectSessionForUpdateSQL = selectSessionSQL + ` FOR UPDATE OF u`

	upsertSessionSQL = `
		INSERT INTO user_sessions (user_id, token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			token = EXCLUDED.token,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at;
	`
)

// PgxSessionRepository reads sessions from the pool and runs every
// read-modify-write through txm.
type PgxSessionRepository struct {
	pool *pgxpool.Pool
	txm  portsrepo.TransactionManager
}

func newPgxSessionRepository(db *pgxpool.Pool) *PgxSessionRepository {
	return &PgxSessionRepository{pool: db, txm: &BaseRepository{Pool: db}}
}

var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

func scanSession(row pgx.Row) (*domain.Session, error) {
	var (
		userID                       string
		userCreatedAt                time.Time
		token                        *string
		expiresAt, created, modified *time.Time
	)
	if err := row.Scan(&userID, &userCreatedAt, &token, &expiresAt, &created, &modified); err != nil {
		return nil, err
	}

	if token == nil {
		s := domain.NewSignedOutSession(userID, userCreatedAt)
		return &s, nil
	}
	s := domain.Session{UserID: userID, Token: *token}
	if expiresAt != nil {
		s.ExpiresAt = expiresAt.UTC()
	}
	if created != nil {
		s.CreatedAt = *created
	}
	if modified != nil {
		s.UpdatedAt = *modified
	}
	return &s, nil
}

func (r *PgxSessionRepository) FindSession(ctx context.Context, userID string) (*domain.Session, error) {
	s, err := scanSession(r.pool.QueryRow(ctx, selectSessionSQL, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session for user %s: %w", userID, err)
	}
	return s, nil
}

// UpdateSession runs fn inside a transaction holding the user's row lock.
// The returned session is written and committed even when fn also reports
// an error.
func (r *PgxSessionRepository) UpdateSession(ctx context.Context, userID string, fn portsrepo.SessionMutator) error {
	tx, err := r.txm.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.txm.Rollback(ctx, tx) }()

	current, err := scanSession(tx.QueryRow(ctx, selectSessionForUpdateSQL, userID))
	if err != nil {
		if isNoRows(err) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock session for user %s: %w", userID, err)
	}

	next, fnErr := fn(*current)
	if next == nil {
		return fnErr
	}

	var expiresAt *time.Time
	if !next.ExpiresAt.IsZero() {
		expiresAt = &next.ExpiresAt
	}
	createdAt := next.CreatedAt
	if createdAt.IsZero() {
		createdAt = next.UpdatedAt
	}
	if _, err := tx.Exec(ctx, upsertSessionSQL, userID, next.Token, expiresAt, createdAt, next.UpdatedAt); err != nil {
		return mapWriteError(err, "store session")
	}
	if err := r.txm.Commit(ctx, tx); err != nil {
		return err
	}
	return fnErr
}
