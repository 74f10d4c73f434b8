package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no lifecycle transition may leave the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// BlocksSlot reports whether a booking in this status reserves its stylist slot.
func (s BookingStatus) BlocksSlot() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCompleted
}

var (
	ErrAlreadyConfirmed   = errors.New("booking is already confirmed")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrBookingFinalized   = errors.New("booking is already finalized")
	ErrCancellationWindow = errors.New("booking can only be cancelled 24 hours before appointment")
)

type Booking struct {
	Base
	FullName    string        `db:"full_name"`
	Phone       string        `db:"phone"`
	Email       *string       `db:"email"`
	ServiceID   uuid.UUID     `db:"service_id"`
	StylistID   *uuid.UUID    `db:"stylist_id"`
	Date        time.Time     `db:"date"`
	Time        TimeOfDay     `db:"time"`
	Notes       string        `db:"notes"`
	Status      BookingStatus `db:"status"`
	SendEmail   bool          `db:"send_email"`
	ConfirmedAt *time.Time    `db:"confirmed_at"`
	CompletedAt *time.Time    `db:"completed_at"`
}

// AppointmentAt is the appointment moment in the salon time zone.
func (b *Booking) AppointmentAt(loc *time.Location) time.Time {
	return b.Time.On(b.Date, loc)
}

func (b *Booking) IsUpcoming(now time.Time) bool {
	return b.AppointmentAt(now.Location()).After(now)
}

func (b *Booking) IsOverdue(now time.Time) bool {
	return b.AppointmentAt(now.Location()).Before(now) && b.Status != BookingStatusCompleted
}

// CanBeCancelled holds when at least one full calendar day separates now
// from the appointment.
func (b *Booking) CanBeCancelled(now time.Time) bool {
	return !now.AddDate(0, 0, 1).After(b.AppointmentAt(now.Location()))
}

// Confirm moves the booking to confirmed. Terminal bookings stay untouched.
func (b *Booking) Confirm(now time.Time) error {
	switch {
	case b.Status == BookingStatusConfirmed:
		return ErrAlreadyConfirmed
	case b.Status.IsTerminal():
		return ErrBookingFinalized
	}
	b.Status = BookingStatusConfirmed
	b.ConfirmedAt = &now
	b.UpdatedAt = now
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	switch b.Status {
	case BookingStatusCancelled:
		return ErrAlreadyCancelled
	case BookingStatusCompleted:
		return ErrBookingFinalized
	}
	if !b.CanBeCancelled(now) {
		return ErrCancellationWindow
	}
	b.Status = BookingStatusCancelled
	b.UpdatedAt = now
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if b.Status.IsTerminal() {
		return ErrBookingFinalized
	}
	b.Status = BookingStatusCompleted
	b.CompletedAt = &now
	b.UpdatedAt = now
	return nil
}
