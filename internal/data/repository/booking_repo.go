package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// BookingFilter narrows booking listings. Zero values mean "no filter".
type BookingFilter struct {
	Phone  string
	Status entity.BookingStatus
	Date   *time.Time
	Limit  int
	Offset int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter BookingFilter) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	FindUpcoming(ctx context.Context, from time.Time) ([]*entity.Booking, error)
	FindBlockingTimes(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]entity.TimeOfDay, error)
	FindByDateAndStatus(ctx context.Context, date time.Time, status entity.BookingStatus) ([]*entity.Booking, error)
	CompleteMany(ctx context.Context, ids []uuid.UUID, at time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, full_name, phone, email, service_id, stylist_id, date, time, notes,
		       status, send_email, created_at, updated_at, confirmed_at, completed_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var (
		booking entity.Booking
		tod     pgtype.Time
	)
	err := row.Scan(
		&booking.ID,
		&booking.FullName,
		&booking.Phone,
		&booking.Email,
		&booking.ServiceID,
		&booking.StylistID,
		&booking.Date,
		&tod,
		&booking.Notes,
		&booking.Status,
		&booking.SendEmail,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.ConfirmedAt,
		&booking.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	booking.Time = fromPgTime(tod)
	return &booking, nil
}

func (r *bookingRepository) collect(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, full_name, phone, email, service_id, stylist_id, date, time, notes,
		                      status, send_email, created_at, updated_at, confirmed_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.FullName,
		booking.Phone,
		booking.Email,
		booking.ServiceID,
		booking.StylistID,
		toPgDate(booking.Date),
		toPgTime(booking.Time),
		booking.Notes,
		booking.Status,
		booking.SendEmail,
		booking.CreatedAt,
		booking.UpdatedAt,
		booking.ConfirmedAt,
		booking.CompletedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("service_id", booking.ServiceID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

// where renders the filter as a WHERE clause starting at placeholder $1.
func (f BookingFilter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.Phone != "" {
		args = append(args, f.Phone)
		conds = append(conds, fmt.Sprintf("phone = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Date != nil {
		args = append(args, toPgDate(*f.Date))
		conds = append(conds, fmt.Sprintf("date = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + bookingColumns + ` FROM bookings`)

	where, args := filter.where()
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY date DESC, time DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.String("status", string(filter.Status)),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := filter.where()
	query := `SELECT COUNT(*) FROM bookings` + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return total, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET full_name = $2, phone = $3, email = $4, service_id = $5, stylist_id = $6,
		    date = $7, time = $8, notes = $9, status = $10, send_email = $11,
		    updated_at = $12, confirmed_at = $13, completed_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.FullName,
		booking.Phone,
		booking.Email,
		booking.ServiceID,
		booking.StylistID,
		toPgDate(booking.Date),
		toPgTime(booking.Time),
		booking.Notes,
		booking.Status,
		booking.SendEmail,
		booking.UpdatedAt,
		booking.ConfirmedAt,
		booking.CompletedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

// FindUpcoming lists pending and confirmed bookings from the given date on.
func (r *bookingRepository) FindUpcoming(ctx context.Context, from time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date >= $1 AND status IN ('pending', 'confirmed')
		ORDER BY date ASC, time ASC
	`

	rows, err := r.db.Query(ctx, query, toPgDate(from))
	if err != nil {
		r.log.Error("Failed to find upcoming bookings", zap.Error(err))
		return nil, fmt.Errorf("find upcoming bookings: %w", err)
	}

	return r.collect(rows)
}

// FindBlockingTimes returns the times a stylist is held on a date by
// confirmed or completed bookings.
func (r *bookingRepository) FindBlockingTimes(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]entity.TimeOfDay, error) {
	query := `
		SELECT time
		FROM bookings
		WHERE stylist_id = $1 AND date = $2 AND status IN ('confirmed', 'completed')
	`

	rows, err := r.db.Query(ctx, query, stylistID, toPgDate(date))
	if err != nil {
		r.log.Error("Failed to find blocking booking times",
			zap.Error(err),
			zap.String("stylist_id", stylistID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find blocking times for stylist %s: %w", stylistID.String(), err)
	}
	defer rows.Close()

	var times []entity.TimeOfDay
	for rows.Next() {
		var tod pgtype.Time
		if err := rows.Scan(&tod); err != nil {
			r.log.Error("Failed to scan booking time", zap.Error(err))
			return nil, fmt.Errorf("scan booking time: %w", err)
		}
		times = append(times, fromPgTime(tod))
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking times: %w", err)
	}

	return times, nil
}

func (r *bookingRepository) FindByDateAndStatus(ctx context.Context, date time.Time, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date = $1 AND status = $2
		ORDER BY time ASC
	`

	rows, err := r.db.Query(ctx, query, toPgDate(date), status)
	if err != nil {
		r.log.Error("Failed to find bookings by date",
			zap.Error(err),
			zap.Time("date", date),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("find bookings by date: %w", err)
	}

	return r.collect(rows)
}

// CompleteMany completes every listed booking that is still pending or
// confirmed and reports how many rows changed.
func (r *bookingRepository) CompleteMany(ctx context.Context, ids []uuid.UUID, at time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', completed_at = $2, updated_at = $2
		WHERE id = ANY($1) AND status IN ('pending', 'confirmed')
	`

	result, err := r.db.Exec(ctx, query, ids, at)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrSlotTaken
		}
		r.log.Error("Failed to complete bookings",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return 0, fmt.Errorf("complete bookings: %w", err)
	}

	return result.RowsAffected(), nil
}
