package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSettings(r chi.Router, settingsHandler *adaptor.SettingsHandler, g guards) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", settingsHandler.GetSettings)
		r.Get("/current", settingsHandler.GetSettings)
		r.With(g.staff).Put("/current", settingsHandler.UpdateSettings)
	})
}
