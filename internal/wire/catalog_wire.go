package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, serviceHandler *adaptor.ServiceHandler, stylistHandler *adaptor.StylistHandler, g guards) {
	r.Route("/services", func(r chi.Router) {
		// GET lists only active services unless the caller is staff
		r.Get("/", serviceHandler.ListServices)
		r.Get("/{id}", serviceHandler.GetService)

		r.Group(func(r chi.Router) {
			r.Use(g.staff)

			r.Post("/", serviceHandler.CreateService)
			r.Put("/{id}", serviceHandler.ReplaceService)
			r.Patch("/{id}", serviceHandler.UpdateService)
			r.Delete("/{id}", serviceHandler.DeleteService)
		})
	})

	r.Route("/stylists", func(r chi.Router) {
		r.Get("/", stylistHandler.ListStylists)
		r.Get("/{id}", stylistHandler.GetStylist)
		r.Get("/{id}/available-slots", stylistHandler.AvailableSlots)

		r.Group(func(r chi.Router) {
			r.Use(g.staff)

			r.Post("/", stylistHandler.CreateStylist)
			r.Put("/{id}", stylistHandler.ReplaceStylist)
			r.Patch("/{id}", stylistHandler.UpdateStylist)
			r.Delete("/{id}", stylistHandler.DeleteStylist)
		})
	})
}
