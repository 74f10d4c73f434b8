package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking"`
	ClientName string    `json:"client_name"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Comment    string    `json:"comment"`
	Photo      *string   `json:"photo"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

func ReviewToResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID.String(),
		BookingID:  r.BookingID.String(),
		ClientName: r.ClientName,
		Rating:     r.Rating,
		Title:      r.Title,
		Comment:    r.Comment,
		Photo:      r.PhotoURL,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewToResponse(r))
	}
	return out
}

// ReviewListResponse is the public review feed with its rating summary.
type ReviewListResponse struct {
	*PaginatedResponse[ReviewResponse]
	AverageRating float64 `json:"average_rating"`
}
