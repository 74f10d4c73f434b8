package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	ListApproved(ctx context.Context, req *request.PaginatedRequest) (*response.ReviewListResponse, error)

	// Staff moderation
	ListPending(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	ApproveReviews(ctx context.Context, req *request.IDsRequest) (*response.BulkActionResponse, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	now  Clock
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, now Clock, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "review")),
	}
}

// CreateReview stores an unapproved review for a completed booking.
func (s *reviewService) CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	bookingID, err := parseID("booking", req.BookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, FieldError("booking", "Booking does not exist")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, FieldError("booking", "Only completed bookings can be reviewed")
	}

	existing, err := s.repo.Review.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, ConflictError("This booking has already been reviewed", repository.ErrDuplicate)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.now()},
		BookingID:  bookingID,
		ClientName: req.ClientName,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		PhotoURL:   req.PhotoURL,
	}

	// The unique index still decides when two submissions race.
	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ConflictError("This booking has already been reviewed", err)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("booking_id", bookingID.String()),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) ListApproved(ctx context.Context, req *request.PaginatedRequest) (*response.ReviewListResponse, error) {
	page, err := s.list(ctx, true, req)
	if err != nil {
		return nil, err
	}

	avg, _, err := s.repo.Review.GetApprovedStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}

	return &response.ReviewListResponse{
		PaginatedResponse: page,
		AverageRating:     math.Round(avg*10) / 10,
	}, nil
}

func (s *reviewService) ListPending(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	return s.list(ctx, false, req)
}

func (s *reviewService) list(ctx context.Context, approved bool, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByApproval(ctx, approved, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByApproval(ctx, approved)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	return response.NewPaginatedResponse(response.ReviewsToResponse(reviews), req.Page, req.Limit(), total), nil
}

func (s *reviewService) ApproveReviews(ctx context.Context, req *request.IDsRequest) (*response.BulkActionResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Review.Approve(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("approve reviews: %w", err)
	}

	s.log.Info("Reviews approved", zap.Int64("updated", updated))
	return &response.BulkActionResponse{Updated: updated}, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return NotFoundError("Review not found")
	}

	if err := s.repo.Review.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError("Review not found")
		}
		return fmt.Errorf("delete review %s: %w", id, err)
	}
	return nil
}
