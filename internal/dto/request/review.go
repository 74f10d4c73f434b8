package request

type CreateReviewRequest struct {
	BookingID  string  `json:"booking" validate:"required,uuid"`
	ClientName string  `json:"client_name" validate:"required,max=100"`
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Title      string  `json:"title" validate:"required,max=200"`
	Comment    string  `json:"comment" validate:"max=2000"`
	PhotoURL   *string `json:"photo,omitempty" validate:"omitempty,url"`
}
