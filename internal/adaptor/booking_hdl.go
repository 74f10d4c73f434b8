package adaptor

import (
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (public)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req, utils.IsStaffContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", booking)
}

// ListBookings handles GET /api/bookings. Anonymous callers must filter by phone.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListBookingsRequest{
		PaginatedRequest: paginationFromQuery(r),
		Phone:            query.Get("phone"),
		Status:           query.Get("status"),
		Date:             query.Get("date"),
	}

	bookings, err := h.service.ListBookings(r.Context(), req, utils.IsStaffContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/bookings/{id} (public)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles POST /api/bookings/{id}/cancel (public)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", booking)
}

// ==================== STAFF METHODS ====================

// UpcomingBookings handles GET /api/bookings/upcoming (staff)
func (h *BookingHandler) UpcomingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.UpcomingBookings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "upcoming bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ReplaceBooking handles PUT /api/bookings/{id} (staff)
func (h *BookingHandler) ReplaceBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	h.update(w, r, req.AsUpdate())
}

// UpdateBooking handles PATCH /api/bookings/{id} (staff)
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.update(w, r, &req)
}

func (h *BookingHandler) update(w http.ResponseWriter, r *http.Request, req *request.UpdateBookingRequest) {
	booking, err := h.service.UpdateBooking(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated", booking)
}

// DeleteBooking handles DELETE /api/bookings/{id} (staff)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking deleted", nil)
}

// ConfirmBooking handles POST /api/bookings/{id}/confirm (staff)
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.ConfirmBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "confirm booking")
		return
	}

	utils.ResponseSuccess(w, "Booking confirmed successfully", booking)
}

// CompleteBooking handles POST /api/bookings/{id}/complete (staff)
func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.CompleteBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking completed", booking)
}

// CompleteBookings handles POST /api/bookings/complete (staff, bulk)
func (h *BookingHandler) CompleteBookings(w http.ResponseWriter, r *http.Request) {
	var req request.IDsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.CompleteBookings(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "complete bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings marked as completed", result)
}
