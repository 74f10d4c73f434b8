package entity

import "time"

// SettingsID is the primary key of the only salon_settings row.
const SettingsID = 1

var (
	DefaultOpeningTime = TimeOfDay{Hour: 9}
	DefaultClosingTime = TimeOfDay{Hour: 20}
)

type SalonSettings struct {
	ID                         int       `db:"id"`
	SalonName                  string    `db:"salon_name"`
	SalonDescription           string    `db:"salon_description"`
	Phone                      string    `db:"phone"`
	Email                      string    `db:"email"`
	Address                    string    `db:"address"`
	OpeningTime                TimeOfDay `db:"opening_time"`
	ClosingTime                TimeOfDay `db:"closing_time"`
	FacebookURL                *string   `db:"facebook_url"`
	InstagramURL               *string   `db:"instagram_url"`
	TwitterURL                 *string   `db:"twitter_url"`
	BookingConfirmationEnabled bool      `db:"booking_confirmation_enabled"`
	AdminNotificationEnabled   bool      `db:"admin_notification_enabled"`
	UpdatedAt                  time.Time `db:"updated_at"`
}

// DefaultSettings mirrors the column defaults of salon_settings.
func DefaultSettings() *SalonSettings {
	return &SalonSettings{
		ID:                         SettingsID,
		SalonName:                  "Salon",
		OpeningTime:                DefaultOpeningTime,
		ClosingTime:                DefaultClosingTime,
		BookingConfirmationEnabled: true,
		AdminNotificationEnabled:   true,
	}
}
