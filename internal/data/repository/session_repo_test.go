package repository

import (
	"context"
	"testing"
	"time"

	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func refreshSession(userID uuid.UUID) *entity.Session {
	return &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     userID,
		Token:      uuid.New(),
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	}
}

func TestSessionRepository_Rotate(t *testing.T) {
	t.Run("live session is swapped for its successor", func(t *testing.T) {
		mock := newMock(t)
		repo := NewSessionRepository(mock, zap.NewNop())
		previous := uuid.New()
		next := refreshSession(uuid.New())

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE sessions").
			WithArgs(previous, next.UserID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("INSERT INTO sessions").
			WithArgs(next.ID, next.UserID, next.Token, next.UserAgent, next.IPAddress, next.ExpiresAt, next.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Rotate(context.Background(), previous, next))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("used token issues nothing", func(t *testing.T) {
		mock := newMock(t)
		repo := NewSessionRepository(mock, zap.NewNop())
		previous := uuid.New()
		next := refreshSession(uuid.New())

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE sessions").
			WithArgs(previous, next.UserID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Rotate(context.Background(), previous, next), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_RevokeScopedToOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock, zap.NewNop())
	owner, stranger, jti := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectExec("UPDATE sessions").
		WithArgs(jti, stranger).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec("UPDATE sessions").
		WithArgs(jti, owner).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.ErrorIs(t, repo.Revoke(context.Background(), stranger, jti), ErrNotFound)
	require.NoError(t, repo.Revoke(context.Background(), owner, jti))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_RevokeAll(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock, zap.NewNop())
	userID := uuid.New()

	mock.ExpectExec("UPDATE sessions").
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	ended, err := repo.RevokeAll(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), ended)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_FindActiveMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	mock.ExpectQuery("FROM sessions").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	session, err := repo.FindActive(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_PurgeExpired(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	removed, err := repo.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
