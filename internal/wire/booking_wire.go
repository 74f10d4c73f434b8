package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, g guards) {
	r.Route("/bookings", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// POST /api/bookings - create, confirmed immediately
		r.With(g.limiter.Limit("bookings")).Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings - anonymous callers must pass ?phone=
		r.Get("/", bookingHandler.ListBookings)

		r.Get("/{id}", bookingHandler.GetBooking)
		r.Post("/{id}/cancel", bookingHandler.CancelBooking)

		// ==================== STAFF ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.staff)

			r.Get("/upcoming", bookingHandler.UpcomingBookings)
			r.Post("/complete", bookingHandler.CompleteBookings)

			r.Put("/{id}", bookingHandler.ReplaceBooking)
			r.Patch("/{id}", bookingHandler.UpdateBooking)
			r.Delete("/{id}", bookingHandler.DeleteBooking)
			r.Post("/{id}/confirm", bookingHandler.ConfirmBooking)
			r.Post("/{id}/complete", bookingHandler.CompleteBooking)
		})
	})
}
