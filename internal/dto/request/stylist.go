package request

type CreateStylistRequest struct {
	Name           string   `json:"name" validate:"required,max=100"`
	Email          string   `json:"email" validate:"required,email,max=255"`
	Phone          string   `json:"phone" validate:"required,phone"`
	Specialization string   `json:"specialization" validate:"required,oneof=hair nails makeup braiding general"`
	Bio            string   `json:"bio" validate:"max=2000"`
	PhotoURL       *string  `json:"photo,omitempty" validate:"omitempty,url"`
	IsActive       *bool    `json:"is_active,omitempty"`
	ServiceIDs     []string `json:"service_ids" validate:"omitempty,dive,uuid"`
}

type UpdateStylistRequest struct {
	Name           *string   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email          *string   `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone          *string   `json:"phone,omitempty" validate:"omitempty,phone"`
	Specialization *string   `json:"specialization,omitempty" validate:"omitempty,oneof=hair nails makeup braiding general"`
	Bio            *string   `json:"bio,omitempty" validate:"omitempty,max=2000"`
	PhotoURL       *string   `json:"photo,omitempty" validate:"omitempty,url"`
	IsActive       *bool     `json:"is_active,omitempty"`
	ServiceIDs     *[]string `json:"service_ids,omitempty" validate:"omitempty,dive,uuid"`
}

func (r *CreateStylistRequest) AsUpdate() *UpdateStylistRequest {
	ids := r.ServiceIDs
	if ids == nil {
		ids = []string{}
	}
	return &UpdateStylistRequest{
		Name:           &r.Name,
		Email:          &r.Email,
		Phone:          &r.Phone,
		Specialization: &r.Specialization,
		Bio:            &r.Bio,
		PhotoURL:       r.PhotoURL,
		IsActive:       r.IsActive,
		ServiceIDs:     &ids,
	}
}

type AvailableSlotsRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}
