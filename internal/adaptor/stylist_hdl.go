package adaptor

import (
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StylistHandler struct {
	catalog      usecase.CatalogService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewStylistHandler(catalog usecase.CatalogService, availability usecase.AvailabilityService, log *zap.Logger) *StylistHandler {
	return &StylistHandler{
		catalog:      catalog,
		availability: availability,
		log:          log.With(zap.String("handler", "stylist")),
	}
}

// ListStylists handles GET /api/stylists
func (h *StylistHandler) ListStylists(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	stylists, err := h.catalog.ListStylists(r.Context(), &req, utils.IsStaffContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "list stylists")
		return
	}

	utils.ResponseSuccess(w, "success", stylists)
}

// GetStylist handles GET /api/stylists/{id}
func (h *StylistHandler) GetStylist(w http.ResponseWriter, r *http.Request) {
	stylist, err := h.catalog.GetStylist(r.Context(), chi.URLParam(r, "id"), utils.IsStaffContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "get stylist")
		return
	}

	utils.ResponseSuccess(w, "success", stylist)
}

// AvailableSlots handles GET /api/stylists/{id}/available-slots?date=YYYY-MM-DD
func (h *StylistHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	stylistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseNotFound(w, "Stylist not found")
		return
	}

	req := request.AvailableSlotsRequest{Date: r.URL.Query().Get("date")}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Date parameter is required in YYYY-MM-DD format", errs)
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid date format. Use YYYY-MM-DD", nil)
		return
	}

	slots, err := h.availability.AvailableSlots(r.Context(), stylistID, date, utils.IsStaffContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "available slots")
		return
	}

	utils.ResponseSuccess(w, "success", response.AvailableSlotsResponse{
		Date:           req.Date,
		AvailableSlots: slots,
	})
}

// CreateStylist handles POST /api/stylists (staff)
func (h *StylistHandler) CreateStylist(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	stylist, err := h.catalog.CreateStylist(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create stylist")
		return
	}

	utils.ResponseCreated(w, "Stylist created", stylist)
}

// ReplaceStylist handles PUT /api/stylists/{id} (staff)
func (h *StylistHandler) ReplaceStylist(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	h.update(w, r, req.AsUpdate())
}

// UpdateStylist handles PATCH /api/stylists/{id} (staff)
func (h *StylistHandler) UpdateStylist(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.update(w, r, &req)
}

func (h *StylistHandler) update(w http.ResponseWriter, r *http.Request, req *request.UpdateStylistRequest) {
	stylist, err := h.catalog.UpdateStylist(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, h.log, err, "update stylist")
		return
	}

	utils.ResponseSuccess(w, "Stylist updated", stylist)
}

// DeleteStylist handles DELETE /api/stylists/{id} (staff)
func (h *StylistHandler) DeleteStylist(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteStylist(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete stylist")
		return
	}

	utils.ResponseSuccess(w, "Stylist deleted", nil)
}
