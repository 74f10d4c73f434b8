package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, g guards) {
	r.Route("/reviews", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", reviewHandler.ListReviews)
		r.With(g.limiter.Limit("reviews")).Post("/", reviewHandler.CreateReview)

		// ==================== STAFF ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.staff)

			r.Get("/pending", reviewHandler.ListPending)
			r.Post("/approve", reviewHandler.ApproveReviews)
			r.Delete("/{id}", reviewHandler.DeleteReview)
		})
	})
}
