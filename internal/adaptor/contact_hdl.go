package adaptor

import (
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ContactHandler struct {
	service usecase.ContactService
	log     *zap.Logger
}

func NewContactHandler(service usecase.ContactService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log.With(zap.String("handler", "contact")),
	}
}

// CreateMessage handles POST /api/contacts (public)
func (h *ContactHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req request.CreateContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.service.CreateMessage(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create contact message")
		return
	}

	utils.ResponseCreated(w, "Thank you for your message! We will get back to you soon.", message)
}

// ListMessages handles GET /api/contacts (staff)
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	messages, err := h.service.ListMessages(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list contact messages")
		return
	}

	utils.ResponseSuccess(w, "success", messages)
}

// GetMessage handles GET /api/contacts/{id} (staff)
func (h *ContactHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	message, err := h.service.GetMessage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get contact message")
		return
	}

	utils.ResponseSuccess(w, "success", message)
}

// UpdateMessage handles PATCH /api/contacts/{id} (staff)
func (h *ContactHandler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.service.UpdateMessage(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update contact message")
		return
	}

	utils.ResponseSuccess(w, "Message updated", message)
}

// DeleteMessage handles DELETE /api/contacts/{id} (staff)
func (h *ContactHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMessage(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete contact message")
		return
	}

	utils.ResponseSuccess(w, "Message deleted", nil)
}

// MarkRead handles POST /api/contacts/mark-read (staff)
func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req request.IDsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.MarkRead(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "mark messages read")
		return
	}

	utils.ResponseSuccess(w, "Messages marked as read", result)
}

// MarkReplied handles POST /api/contacts/mark-replied (staff)
func (h *ContactHandler) MarkReplied(w http.ResponseWriter, r *http.Request) {
	var req request.IDsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.MarkReplied(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "mark messages replied")
		return
	}

	utils.ResponseSuccess(w, "Messages marked as replied", result)
}
