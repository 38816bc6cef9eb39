package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	unique := fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"})
	assert.ErrorIs(t, mapWriteError(unique, "save user"), apperrors.ErrDuplicate)
	assert.ErrorIs(t, mapWriteError(unique, "save user"), apperrors.ErrConflict)

	fk := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "orders_user_id_fkey"}
	assert.ErrorIs(t, mapWriteError(fk, "save order"), apperrors.ErrNotFound)

	other := errors.New("connection reset")
	mapped := mapWriteError(other, "save order")
	var appErr *apperrors.AppError
	assert.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.ErrorIs(t, mapped, other)
}

func TestLimitArgs(t *testing.T) {
	assert.Nil(t, limitArg(0))
	assert.Nil(t, limitArg(-5))
	assert.Equal(t, 10, limitArg(10))
	assert.Equal(t, 0, offsetArg(-1))
	assert.Equal(t, 7, offsetArg(7))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.True(t, isNoRows(&pgconn.PgError{Code: pgInvalidTextRepresentation}))
	assert.False(t, isNoRows(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isNoRows(errors.New("timeout")))
	assert.ErrorIs(t, mapWriteError(&pgconn.PgError{Code: pgInvalidTextRepresentation}, "delete user"), apperrors.ErrNotFound)
}
