package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// sessionRetention keeps expired refresh sessions around for auditing
// before the cleanup job purges them.
const sessionRetention = 7 * 24 * time.Hour

// SessionRepository stores one row per issued refresh token, keyed by the
// token's jti.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindActive(ctx context.Context, jti uuid.UUID) (*entity.Session, error)
	Rotate(ctx context.Context, previous uuid.UUID, next *entity.Session) error
	Revoke(ctx context.Context, userID, jti uuid.UUID) error
	RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

const insertSession = `
	INSERT INTO sessions (id, user_id, token, user_agent, ip_address, expires_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// revokeActive ends one live session; $1 is the jti, $2 the owner.
const revokeActive = `
	UPDATE sessions
	SET revoked_at = NOW()
	WHERE token = $1 AND user_id = $2 AND revoked_at IS NULL AND expires_at > NOW()
`

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func createSession(ctx context.Context, db execer, session *entity.Session) error {
	_, err := db.Exec(ctx, insertSession,
		session.ID,
		session.UserID,
		session.Token,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.CreatedAt,
	)
	return err
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if err := createSession(ctx, r.db, session); err != nil {
		r.log.Error("Failed to record refresh session",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()),
		)
		return fmt.Errorf("record refresh session: %w", err)
	}
	return nil
}

// FindActive returns the unrevoked, unexpired session for a refresh jti,
// or nil.
func (r *sessionRepository) FindActive(ctx context.Context, jti uuid.UUID) (*entity.Session, error) {
	query := `
		SELECT id, user_id, token, user_agent, ip_address, expires_at, revoked_at, created_at
		FROM sessions
		WHERE token = $1 AND revoked_at IS NULL AND expires_at > NOW()
	`

	var s entity.Session
	err := r.db.QueryRow(ctx, query, jti).Scan(
		&s.ID, &s.UserID, &s.Token, &s.UserAgent, &s.IPAddress,
		&s.ExpiresAt, &s.RevokedAt, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to look up refresh session", zap.Error(err))
		return nil, fmt.Errorf("find refresh session: %w", err)
	}
	return &s, nil
}

// Rotate swaps a live refresh session for its successor in one
// transaction. ErrNotFound means the previous token was already used or
// revoked, so nothing is issued.
func (r *sessionRepository) Rotate(ctx context.Context, previous uuid.UUID, next *entity.Session) error {
	log := r.log.With(
		zap.String("user_id", next.UserID.String()),
		zap.String("previous_jti", previous.String()),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		log.Error("Failed to begin rotation", zap.Error(err))
		return fmt.Errorf("begin rotate session: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, revokeActive, previous, next.UserID)
	if err != nil {
		log.Error("Failed to revoke rotated session", zap.Error(err))
		return fmt.Errorf("revoke rotated session: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Warn("Refresh token reused or already revoked")
		return ErrNotFound
	}

	if err := createSession(ctx, tx, next); err != nil {
		log.Error("Failed to record rotated session", zap.Error(err))
		return fmt.Errorf("record rotated session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit rotation", zap.Error(err))
		return fmt.Errorf("commit rotate session: %w", err)
	}
	return nil
}

// Revoke ends the caller's own session. A jti belonging to another user
// is reported as ErrNotFound.
func (r *sessionRepository) Revoke(ctx context.Context, userID, jti uuid.UUID) error {
	result, err := r.db.Exec(ctx, revokeActive, jti, userID)
	if err != nil {
		r.log.Error("Failed to revoke refresh session",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RevokeAll signs a user out of every device and reports how many live
// sessions ended.
func (r *sessionRepository) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		UPDATE sessions
		SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL AND expires_at > NOW()
	`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to revoke user sessions",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("revoke sessions of user %s: %w", userID, err)
	}
	return result.RowsAffected(), nil
}

// PurgeExpired deletes sessions that expired longer ago than the retention
// period.
func (r *sessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM sessions WHERE expires_at < $1`,
		time.Now().Add(-sessionRetention),
	)
	if err != nil {
		r.log.Error("Failed to purge expired sessions", zap.Error(err))
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	return result.RowsAffected(), nil
}
