package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type SettingsResponse struct {
	SalonName                  string           `json:"salon_name"`
	SalonDescription           string           `json:"salon_description"`
	Phone                      string           `json:"phone"`
	Email                      string           `json:"email"`
	Address                    string           `json:"address"`
	OpeningTime                entity.TimeOfDay `json:"opening_time"`
	ClosingTime                entity.TimeOfDay `json:"closing_time"`
	FacebookURL                *string          `json:"facebook_url"`
	InstagramURL               *string          `json:"instagram_url"`
	TwitterURL                 *string          `json:"twitter_url"`
	BookingConfirmationEnabled *bool            `json:"booking_confirmation_enabled,omitempty"`
	AdminNotificationEnabled   *bool            `json:"admin_notification_enabled,omitempty"`
	UpdatedAt                  time.Time        `json:"updated_at"`
}

// SettingsToResponse exposes the notification toggles to staff only.
func SettingsToResponse(s *entity.SalonSettings, staff bool) SettingsResponse {
	resp := SettingsResponse{
		SalonName:        s.SalonName,
		SalonDescription: s.SalonDescription,
		Phone:            s.Phone,
		Email:            s.Email,
		Address:          s.Address,
		OpeningTime:      s.OpeningTime,
		ClosingTime:      s.ClosingTime,
		FacebookURL:      s.FacebookURL,
		InstagramURL:     s.InstagramURL,
		TwitterURL:       s.TwitterURL,
		UpdatedAt:        s.UpdatedAt,
	}
	if staff {
		resp.BookingConfirmationEnabled = &s.BookingConfirmationEnabled
		resp.AdminNotificationEnabled = &s.AdminNotificationEnabled
	}
	return resp
}
