package request

type CreateBookingRequest struct {
	FullName  string  `json:"fullname" validate:"required,max=100"`
	Phone     string  `json:"phone" validate:"required,phone"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	ServiceID string  `json:"service" validate:"required,uuid"`
	StylistID *string `json:"stylist,omitempty" validate:"omitempty,uuid"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string  `json:"time" validate:"required,hhmm"`
	Notes     string  `json:"notes" validate:"max=2000"`
	SendEmail bool    `json:"send_email"`

	// Status is honoured for staff callers only; the public path always confirms.
	Status string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed"`
}

// UpdateBookingRequest edits booking details. Status changes go through
// the lifecycle actions instead.
type UpdateBookingRequest struct {
	FullName  *string `json:"fullname,omitempty" validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	ServiceID *string `json:"service,omitempty" validate:"omitempty,uuid"`
	StylistID *string `json:"stylist,omitempty" validate:"omitempty,uuid"`
	Date      *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time      *string `json:"time,omitempty" validate:"omitempty,hhmm"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	SendEmail *bool   `json:"send_email,omitempty"`

	// ClearStylist detaches the stylist; a JSON null cannot be told apart
	// from an omitted field.
	ClearStylist bool `json:"clear_stylist,omitempty"`
}

func (r *CreateBookingRequest) AsUpdate() *UpdateBookingRequest {
	return &UpdateBookingRequest{
		FullName:     &r.FullName,
		Phone:        &r.Phone,
		Email:        r.Email,
		ServiceID:    &r.ServiceID,
		StylistID:    r.StylistID,
		Date:         &r.Date,
		Time:         &r.Time,
		Notes:        &r.Notes,
		SendEmail:    &r.SendEmail,
		ClearStylist: r.StylistID == nil,
	}
}

type ListBookingsRequest struct {
	PaginatedRequest
	Phone  string `json:"phone"`
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
