package request

import "github.com/shopspring/decimal"

type CreateServiceRequest struct {
	Name            string           `json:"name" validate:"required,max=100"`
	Category        string           `json:"category" validate:"required,oneof=hair nails makeup braiding"`
	Description     string           `json:"description" validate:"max=2000"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes *int             `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=720"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// UpdateServiceRequest is a partial update; nil fields are left unchanged.
type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Category        *string          `json:"category,omitempty" validate:"omitempty,oneof=hair nails makeup braiding"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=720"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// AsUpdate turns a full replacement into an update that sets every field.
func (r *CreateServiceRequest) AsUpdate() *UpdateServiceRequest {
	return &UpdateServiceRequest{
		Name:            &r.Name,
		Category:        &r.Category,
		Description:     &r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		IsActive:        r.IsActive,
	}
}

type ListServicesRequest struct {
	PaginatedRequest
	Category string `json:"category" validate:"omitempty,oneof=hair nails makeup braiding"`
}
