package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRow scans a user without a session row, or fails with err.
type stubRow struct {
	err error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = "u1"
	*dest[1].(*time.Time) = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return nil
}

// stubTx answers the lock query. Other pgx.Tx methods are not used.
type stubTx struct {
	pgx.Tx
	row stubRow
}

func (t *stubTx) QueryRow(context.Context, string, ...any) pgx.Row {
	return t.row
}

type recordingTxManager struct {
	beginErr  error
	tx        *stubTx
	commits   int
	rollbacks int
}

func (m *recordingTxManager) Begin(context.Context) (pgx.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

func (m *recordingTxManager) Commit(context.Context, pgx.Tx) error {
	m.commits++
	return nil
}

func (m *recordingTxManager) Rollback(context.Context, pgx.Tx) error {
	m.rollbacks++
	return nil
}

func TestUpdateSessionBeginFailure(t *testing.T) {
	beginErr := apperrors.NewAppError(500, "failed to begin transaction", errors.New("pool closed"))
	txm := &recordingTxManager{beginErr: beginErr}
	repo := &PgxSessionRepository{txm: txm}

	called := false
	err := repo.UpdateSession(context.Background(), "u1", func(domain.Session) (*domain.Session, error) {
		called = true
		return nil, nil
	})

	assert.ErrorIs(t, err, beginErr)
	assert.False(t, called)
	assert.Zero(t, txm.rollbacks)
}

func TestUpdateSessionUnknownUserRollsBack(t *testing.T) {
	txm := &recordingTxManager{tx: &stubTx{row: stubRow{err: pgx.ErrNoRows}}}
	repo := &PgxSessionRepository{txm: txm}

	called := false
	err := repo.UpdateSession(context.Background(), "missing", func(domain.Session) (*domain.Session, error) {
		called = true
		return nil, nil
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, called)
	assert.Zero(t, txm.commits)
	assert.Equal(t, 1, txm.rollbacks)
}

func TestUpdateSessionNoChangeSkipsCommit(t *testing.T) {
	txm := &recordingTxManager{tx: &stubTx{}}
	repo := &PgxSessionRepository{txm: txm}

	var seen domain.Session
	err := repo.UpdateSession(context.Background(), "u1", func(current domain.Session) (*domain.Session, error) {
		seen = current
		return nil, apperrors.ErrSessionAlreadyActive
	})

	require.ErrorIs(t, err, apperrors.ErrSessionAlreadyActive)
	assert.Equal(t, "u1", seen.UserID)
	assert.False(t, seen.IsActive(time.Now()))
	assert.Zero(t, txm.commits)
	assert.Equal(t, 1, txm.rollbacks)
}
