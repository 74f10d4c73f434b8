package adaptor

import (
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ServiceHandler struct {
	catalog usecase.CatalogService
	log     *zap.Logger
}

func NewServiceHandler(catalog usecase.CatalogService, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{
		catalog: catalog,
		log:     log.With(zap.String("handler", "service")),
	}
}

// ListServices handles GET /api/services (public, staff see inactive too)
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	req := &request.ListServicesRequest{
		PaginatedRequest: paginationFromQuery(r),
		Category:         r.URL.Query().Get("category"),
	}

	services, err := h.catalog.ListServices(r.Context(), req, utils.IsStaffContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetService handles GET /api/services/{id}
func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	service, err := h.catalog.GetService(r.Context(), chi.URLParam(r, "id"), utils.IsStaffContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// CreateService handles POST /api/services (staff)
func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req request.CreateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	service, err := h.catalog.CreateService(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "Service created", service)
}

// ReplaceService handles PUT /api/services/{id} (staff)
func (h *ServiceHandler) ReplaceService(w http.ResponseWriter, r *http.Request) {
	var req request.CreateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	h.update(w, r, req.AsUpdate())
}

// UpdateService handles PATCH /api/services/{id} (staff)
func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.update(w, r, &req)
}

func (h *ServiceHandler) update(w http.ResponseWriter, r *http.Request, req *request.UpdateServiceRequest) {
	service, err := h.catalog.UpdateService(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "Service updated", service)
}

// DeleteService handles DELETE /api/services/{id} (staff)
func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteService(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "Service deleted", nil)
}
