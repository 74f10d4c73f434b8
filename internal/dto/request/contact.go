package request

type CreateContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type UpdateContactRequest struct {
	IsRead  *bool `json:"is_read,omitempty"`
	Replied *bool `json:"replied,omitempty"`
}
