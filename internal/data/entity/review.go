package entity

import "github.com/google/uuid"

type Review struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	ClientName string    `db:"client_name"`
	Rating     int       `db:"rating"` // 1-5
	Title      string    `db:"title"`
	Comment    string    `db:"comment"`
	PhotoURL   *string   `db:"photo_url"`
	IsApproved bool      `db:"is_approved"`
}
