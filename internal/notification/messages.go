package notification

import (
	"fmt"
	"strings"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/utils"

	"github.com/shopspring/decimal"
)

const (
	KindBookingConfirmation = "booking_confirmation"
	KindAdminBooking        = "admin_booking"
	KindAdminContact        = "admin_contact"
	KindBookingReminder     = "booking_reminder"
)

// BookingDetails is the denormalized view of a booking used in messages.
type BookingDetails struct {
	Booking     *entity.Booking
	ServiceName string
	Price       decimal.Decimal
	StylistName string
}

func (d BookingDetails) stylist() string {
	if d.StylistName == "" {
		return "TBD"
	}
	return d.StylistName
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

func date(t time.Time) string {
	return t.Format(utils.DateLayout)
}

func BookingConfirmation(d BookingDetails) Message {
	b := d.Booking
	ref := utils.BookingReference(b.ID)

	body := fmt.Sprintf(`Hello %s,

Your appointment has been confirmed!

Reference: %s
Service: %s
Date: %s
Time: %s
Stylist: %s
Price: KES %s

Notes: %s

Please arrive 5 minutes early.

Thank you for booking with us!
`, b.FullName, ref, d.ServiceName, date(b.Date), b.Time, d.stylist(), d.Price.StringFixed(2), orNone(b.Notes))

	msg := Message{
		Kind:    KindBookingConfirmation,
		Subject: "Booking Confirmation - " + d.ServiceName,
		Body:    body,
		Phone:   b.Phone,
		SMS: fmt.Sprintf("Hi %s, your %s appointment on %s at %s is confirmed. Ref %s",
			b.FullName, d.ServiceName, date(b.Date), b.Time, ref),
	}
	if b.Email != nil {
		msg.To = *b.Email
	}
	return msg
}

func AdminBookingAlert(to string, d BookingDetails) Message {
	b := d.Booking
	email := "Not provided"
	if b.Email != nil && *b.Email != "" {
		email = *b.Email
	}

	return Message{
		Kind:    KindAdminBooking,
		To:      to,
		Subject: "New Booking - " + d.ServiceName,
		Body: fmt.Sprintf(`New booking received!

Client: %s
Phone: %s
Email: %s
Service: %s
Stylist: %s
Date: %s
Time: %s
Notes: %s
`, b.FullName, b.Phone, email, d.ServiceName, d.stylist(), date(b.Date), b.Time, orNone(b.Notes)),
	}
}

func ContactAlert(to string, c *entity.ContactMessage) Message {
	return Message{
		Kind:    KindAdminContact,
		To:      to,
		Subject: "New Message - " + c.Subject,
		Body: fmt.Sprintf(`New contact message received!

From: %s
Email: %s
Subject: %s

Message:
%s
`, c.Name, c.Email, c.Subject, c.Message),
	}
}

func BookingReminder(d BookingDetails) Message {
	b := d.Booking

	msg := Message{
		Kind:    KindBookingReminder,
		Subject: "Appointment Reminder - " + d.ServiceName,
		Body: fmt.Sprintf(`Hello %s,

This is a reminder of your appointment tomorrow.

Service: %s
Date: %s
Time: %s
Stylist: %s

If you can no longer make it, please let us know.
`, b.FullName, d.ServiceName, date(b.Date), b.Time, d.stylist()),
		Phone: b.Phone,
		SMS: fmt.Sprintf("Reminder: your %s appointment is tomorrow at %s.",
			d.ServiceName, b.Time),
	}
	if b.Email != nil {
		msg.To = *b.Email
	}
	return msg
}
