package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
)

const userColumns = `user_id, email, password_hash, name, phone, gender, is_staff, is_superuser, is_active, created_at, updated_at`

const (
	insertUserSQL = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	insertSignedOutSessionSQL = `
		INSERT INTO user_sessions (user_id, token, expires_at, created_at, updated_at)
		VALUES ($1, $2, NULL, $3, $3);
	`
	selectUserByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	selectUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	listUsersSQL         = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at, user_id
		LIMIT $1 OFFSET $2;
	`
	updateUserSQL = `
		UPDATE users SET
			email = $2, password_hash = $3, name = $4, phone = $5, gender = $6,
			is_staff = $7, is_superuser = $8, is_active = $9, updated_at = $10
		WHERE user_id = $1;
	`
	// user_sessions cascades, orders.user_id is set to NULL by the foreign key.
	deleteUserSQL = `DELETE FROM users WHERE user_id = $1;`
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Phone,
		&u.Gender,
		&u.IsStaff,
		&u.IsSuperuser,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, insertUserSQL,
		user.UserID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Phone,
		user.Gender,
		user.IsStaff,
		user.IsSuperuser,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "save user")
	}

	if _, err = tx.Exec(ctx, insertSignedOutSessionSQL, user.UserID, domain.SentinelToken, user.CreatedAt); err != nil {
		return mapWriteError(err, "create session for user")
	}

	return r.Commit(ctx, tx)
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := scanUser(r.Pool.QueryRow(ctx, selectUserByIDSQL, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.Pool.QueryRow(ctx, selectUserByEmailSQL, email))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, listUsersSQL, limitArg(limit), offsetArg(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	tag, err := r.Pool.Exec(ctx, updateUserSQL,
		user.UserID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Phone,
		user.Gender,
		user.IsStaff,
		user.IsSuperuser,
		user.IsActive,
		user.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "update user")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.Pool.Exec(ctx, deleteUserSQL, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
