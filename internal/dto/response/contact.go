package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	Replied   bool      `json:"replied"`
	CreatedAt time.Time `json:"created_at"`
}

func ContactToResponse(c *entity.ContactMessage) ContactResponse {
	return ContactResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		IsRead:    c.IsRead,
		Replied:   c.Replied,
		CreatedAt: c.CreatedAt,
	}
}

func ContactsToResponse(messages []*entity.ContactMessage) []ContactResponse {
	out := make([]ContactResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, ContactToResponse(m))
	}
	return out
}
