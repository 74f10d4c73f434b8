package response

import (
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/utils"
)

type BookingResponse struct {
	ID             string               `json:"id"`
	Reference      string               `json:"reference"`
	FullName       string               `json:"fullname"`
	Phone          string               `json:"phone"`
	Email          *string              `json:"email"`
	Service        *ServiceResponse     `json:"service"`
	Stylist        *StylistResponse     `json:"stylist"`
	Date           string               `json:"date"`
	Time           entity.TimeOfDay     `json:"time"`
	Notes          string               `json:"notes"`
	Status         entity.BookingStatus `json:"status"`
	SendEmail      bool                 `json:"send_email"`
	IsUpcoming     bool                 `json:"is_upcoming"`
	IsOverdue      bool                 `json:"is_overdue"`
	CanBeCancelled bool                 `json:"can_be_cancelled"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	ConfirmedAt    *time.Time           `json:"confirmed_at"`
	CompletedAt    *time.Time           `json:"completed_at"`
}

// BookingToResponse embeds the related service and stylist when they were
// loaded; now drives the derived flags.
func BookingToResponse(b *entity.Booking, service *entity.Service, stylist *entity.Stylist, now time.Time) BookingResponse {
	resp := BookingResponse{
		ID:             b.ID.String(),
		Reference:      utils.BookingReference(b.ID),
		FullName:       b.FullName,
		Phone:          b.Phone,
		Email:          b.Email,
		Date:           b.Date.Format(utils.DateLayout),
		Time:           b.Time,
		Notes:          b.Notes,
		Status:         b.Status,
		SendEmail:      b.SendEmail,
		IsUpcoming:     b.IsUpcoming(now),
		IsOverdue:      b.IsOverdue(now),
		CanBeCancelled: !b.Status.IsTerminal() && b.CanBeCancelled(now),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
		ConfirmedAt:    b.ConfirmedAt,
		CompletedAt:    b.CompletedAt,
	}
	if service != nil {
		svc := ServiceToResponse(service, false)
		resp.Service = &svc
	}
	if stylist != nil {
		sty := StylistToResponse(stylist, false)
		resp.Stylist = &sty
	}
	return resp
}

type BulkActionResponse struct {
	Updated int64 `json:"updated"`
}
