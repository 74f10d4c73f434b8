package response

import (
	"time"

	"salon-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ServiceResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Category        entity.ServiceCategory `json:"category"`
	Description     string                 `json:"description"`
	Price           decimal.Decimal        `json:"price"`
	DurationMinutes int                    `json:"duration_minutes"`
	IsActive        *bool                  `json:"is_active,omitempty"`
	CreatedAt       *time.Time             `json:"created_at,omitempty"`
	UpdatedAt       *time.Time             `json:"updated_at,omitempty"`
}

// ServiceToResponse projects a service for the caller; bookkeeping fields
// are only shown to staff.
func ServiceToResponse(s *entity.Service, staff bool) ServiceResponse {
	resp := ServiceResponse{
		ID:              s.ID.String(),
		Name:            s.Name,
		Category:        s.Category,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
	if staff {
		resp.IsActive = &s.IsActive
		resp.CreatedAt = &s.CreatedAt
		resp.UpdatedAt = &s.UpdatedAt
	}
	return resp
}

func ServicesToResponse(services []*entity.Service, staff bool) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceToResponse(s, staff))
	}
	return out
}

type StylistResponse struct {
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	Specialization    entity.Specialization `json:"specialization"`
	Bio               string                `json:"bio"`
	Photo             *string               `json:"photo"`
	AvailableServices []ServiceResponse     `json:"available_services"`

	// staff only
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// StylistToResponse hides contact details from the public; inactive
// services are dropped from the public capability list as well.
func StylistToResponse(s *entity.Stylist, staff bool) StylistResponse {
	resp := StylistResponse{
		ID:                s.ID.String(),
		Name:              s.Name,
		Specialization:    s.Specialization,
		Bio:               s.Bio,
		Photo:             s.PhotoURL,
		AvailableServices: []ServiceResponse{},
	}

	for _, svc := range s.Services {
		if !staff && !svc.IsActive {
			continue
		}
		resp.AvailableServices = append(resp.AvailableServices, ServiceToResponse(svc, staff))
	}

	if staff {
		resp.Email = s.Email
		resp.Phone = s.Phone
		resp.IsActive = &s.IsActive
		resp.CreatedAt = &s.CreatedAt
		resp.UpdatedAt = &s.UpdatedAt
	}
	return resp
}

func StylistsToResponse(stylists []*entity.Stylist, staff bool) []StylistResponse {
	out := make([]StylistResponse, 0, len(stylists))
	for _, s := range stylists {
		out = append(out, StylistToResponse(s, staff))
	}
	return out
}

type AvailableSlotsResponse struct {
	Date           string             `json:"date"`
	AvailableSlots []entity.TimeOfDay `json:"available_slots"`
}
