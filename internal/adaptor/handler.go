package adaptor

import (
	"encoding/json"
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Service  *ServiceHandler
	Stylist  *StylistHandler
	Booking  *BookingHandler
	Review   *ReviewHandler
	Contact  *ContactHandler
	Settings *SettingsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Service:  NewServiceHandler(service.Catalog, log),
		Stylist:  NewStylistHandler(service.Catalog, service.Availability, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Review:   NewReviewHandler(service.Review, log),
		Contact:  NewContactHandler(service.Contact, log),
		Settings: NewSettingsHandler(service.Settings, log),
	}
}

// decodeJSON reports a 400 itself when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func paginationFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// handleServiceError maps usecase errors onto the response envelope.
// Anything that is not a usecase.AppError is logged and reported as 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr, ok := usecase.AsAppError(err)
	if !ok {
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch appErr.Kind {
	case usecase.KindValidation:
		log.Warn(operation+" validation failed",
			zap.Any("fields", appErr.Fields),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, appErr.Message, appErr.Fields)

	case usecase.KindConflict:
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, appErr.Message)

	case usecase.KindPolicy, usecase.KindProtected:
		log.Warn(operation+" refused",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, appErr.Message, nil)

	case usecase.KindNotFound:
		utils.ResponseNotFound(w, appErr.Message)

	case usecase.KindUnauthorized:
		utils.ResponseUnauthorized(w, appErr.Message)

	case usecase.KindForbidden:
		utils.ResponseForbidden(w, appErr.Message)

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
