package adaptor

import (
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// ListReviews handles GET /api/reviews (approved only)
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	reviews, err := h.service.ListApproved(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// CreateReview handles POST /api/reviews (public)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Thank you! Your review will appear once approved.", review)
}

// ListPending handles GET /api/reviews/pending (staff)
func (h *ReviewHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	reviews, err := h.service.ListPending(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list pending reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// ApproveReviews handles POST /api/reviews/approve (staff)
func (h *ReviewHandler) ApproveReviews(w http.ResponseWriter, r *http.Request) {
	var req request.IDsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.ApproveReviews(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "approve reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews approved", result)
}

// DeleteReview handles DELETE /api/reviews/{id} (staff)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted", nil)
}
