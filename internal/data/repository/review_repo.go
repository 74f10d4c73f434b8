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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error)
	FindByApproval(ctx context.Context, approved bool, limit, offset int) ([]*entity.Review, error)
	CountByApproval(ctx context.Context, approved bool) (int64, error)
	Approve(ctx context.Context, ids []uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Statistics
	GetApprovedStats(ctx context.Context) (float64, int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, booking_id, client_name, rating, title, comment, photo_url, is_approved, created_at`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.BookingID,
		&review.ClientName,
		&review.Rating,
		&review.Title,
		&review.Comment,
		&review.PhotoURL,
		&review.IsApproved,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Create fails with ErrDuplicate when the booking already has a review.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, booking_id, client_name, rating, title, comment,
		                     photo_url, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.BookingID,
		review.ClientName,
		review.Rating,
		review.Title,
		review.Comment,
		review.PhotoURL,
		review.IsApproved,
		review.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("booking_id", review.BookingID.String()),
		)
		return fmt.Errorf("create review for booking %s: %w", review.BookingID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE booking_id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find review by booking %s: %w", bookingID.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByApproval(ctx context.Context, approved bool, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE is_approved = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, approved, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews",
			zap.Error(err),
			zap.Bool("approved", approved),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews approved=%t: %w", approved, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByApproval(ctx context.Context, approved bool) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE is_approved = $1`, approved).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews",
			zap.Error(err),
			zap.Bool("approved", approved),
		)
		return 0, fmt.Errorf("count reviews approved=%t: %w", approved, err)
	}

	return count, nil
}

func (r *reviewRepository) Approve(ctx context.Context, ids []uuid.UUID) (int64, error) {
	query := `UPDATE reviews SET is_approved = TRUE WHERE id = ANY($1) AND is_approved = FALSE`

	result, err := r.db.Exec(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to approve reviews",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return 0, fmt.Errorf("approve reviews: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetApprovedStats returns the average rating and count of approved reviews.
func (r *reviewRepository) GetApprovedStats(ctx context.Context) (float64, int64, error) {
	query := `SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*) FROM reviews WHERE is_approved = TRUE`

	var (
		avg   float64
		total int64
	)
	if err := r.db.QueryRow(ctx, query).Scan(&avg, &total); err != nil {
		r.log.Error("Failed to get review stats", zap.Error(err))
		return 0, 0, fmt.Errorf("get review stats: %w", err)
	}

	return avg, total, nil
}
