package request

type UpdateSettingsRequest struct {
	SalonName                  *string `json:"salon_name,omitempty" validate:"omitempty,min=1,max=100"`
	SalonDescription           *string `json:"salon_description,omitempty"`
	Phone                      *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email                      *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Address                    *string `json:"address,omitempty"`
	OpeningTime                *string `json:"opening_time,omitempty" validate:"omitempty,hhmm"`
	ClosingTime                *string `json:"closing_time,omitempty" validate:"omitempty,hhmm"`
	FacebookURL                *string `json:"facebook_url,omitempty" validate:"omitempty,url"`
	InstagramURL               *string `json:"instagram_url,omitempty" validate:"omitempty,url"`
	TwitterURL                 *string `json:"twitter_url,omitempty" validate:"omitempty,url"`
	BookingConfirmationEnabled *bool   `json:"booking_confirmation_enabled,omitempty"`
	AdminNotificationEnabled   *bool   `json:"admin_notification_enabled,omitempty"`
}
