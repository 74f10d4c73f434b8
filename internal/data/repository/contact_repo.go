package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ContactRepository interface {
	Create(ctx context.Context, message *entity.ContactMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ContactMessage, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.ContactMessage, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, message *entity.ContactMessage) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Triage
	MarkRead(ctx context.Context, ids []uuid.UUID) (int64, error)
	MarkReplied(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type contactRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewContactRepository(db database.PgxIface, log *zap.Logger) ContactRepository {
	return &contactRepository{
		db:  db,
		log: log.With(zap.String("repository", "contact")),
	}
}

const contactColumns = `id, name, email, subject, message, is_read, replied, created_at`

func scanContact(row pgx.Row) (*entity.ContactMessage, error) {
	var message entity.ContactMessage
	err := row.Scan(
		&message.ID,
		&message.Name,
		&message.Email,
		&message.Subject,
		&message.Message,
		&message.IsRead,
		&message.Replied,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *contactRepository) Create(ctx context.Context, message *entity.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, is_read, replied, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		message.ID,
		message.Name,
		message.Email,
		message.Subject,
		message.Message,
		message.IsRead,
		message.Replied,
		message.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create contact message",
			zap.Error(err),
			zap.String("email", message.Email),
		)
		return fmt.Errorf("create contact message from %s: %w", message.Email, err)
	}

	return nil
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages WHERE id = $1`

	message, err := scanContact(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find contact message by ID",
			zap.Error(err),
			zap.String("contact_id", id.String()),
		)
		return nil, fmt.Errorf("find contact message by ID %s: %w", id.String(), err)
	}

	return message, nil
}

func (r *contactRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.ContactMessage, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find contact messages",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find contact messages: %w", err)
	}
	defer rows.Close()

	var messages []*entity.ContactMessage
	for rows.Next() {
		message, err := scanContact(rows)
		if err != nil {
			r.log.Error("Failed to scan contact message row", zap.Error(err))
			return nil, fmt.Errorf("scan contact message row: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate contact message rows: %w", err)
	}

	return messages, nil
}

func (r *contactRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&count); err != nil {
		r.log.Error("Failed to count contact messages", zap.Error(err))
		return 0, fmt.Errorf("count contact messages: %w", err)
	}
	return count, nil
}

func (r *contactRepository) Update(ctx context.Context, message *entity.ContactMessage) error {
	query := `UPDATE contact_messages SET is_read = $2, replied = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, message.ID, message.IsRead, message.Replied)
	if err != nil {
		r.log.Error("Failed to update contact message",
			zap.Error(err),
			zap.String("contact_id", message.ID.String()),
		)
		return fmt.Errorf("update contact message %s: %w", message.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete contact message",
			zap.Error(err),
			zap.String("contact_id", id.String()),
		)
		return fmt.Errorf("delete contact message %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *contactRepository) MarkRead(ctx context.Context, ids []uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `UPDATE contact_messages SET is_read = TRUE WHERE id = ANY($1)`, ids)
	if err != nil {
		r.log.Error("Failed to mark contact messages read", zap.Error(err))
		return 0, fmt.Errorf("mark contact messages read: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *contactRepository) MarkReplied(ctx context.Context, ids []uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `UPDATE contact_messages SET replied = TRUE WHERE id = ANY($1)`, ids)
	if err != nil {
		r.log.Error("Failed to mark contact messages replied", zap.Error(err))
		return 0, fmt.Errorf("mark contact messages replied: %w", err)
	}
	return result.RowsAffected(), nil
}
