package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireContact(r chi.Router, contactHandler *adaptor.ContactHandler, g guards) {
	r.Route("/contacts", func(r chi.Router) {
		r.With(g.limiter.Limit("contacts")).Post("/", contactHandler.CreateMessage)

		r.Group(func(r chi.Router) {
			r.Use(g.staff)

			r.Get("/", contactHandler.ListMessages)
			r.Post("/mark-read", contactHandler.MarkRead)
			r.Post("/mark-replied", contactHandler.MarkReplied)
			r.Get("/{id}", contactHandler.GetMessage)
			r.Patch("/{id}", contactHandler.UpdateMessage)
			r.Delete("/{id}", contactHandler.DeleteMessage)
		})
	})
}
