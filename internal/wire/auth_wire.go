package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, g guards) {
	r.Route("/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.With(g.limiter.Limit("auth")).Post("/signup", authHandler.Signup)
		r.With(g.limiter.Limit("auth")).Post("/login", authHandler.Login)
		r.Post("/token/refresh", authHandler.Refresh)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.authenticated)

			r.Post("/logout", authHandler.Logout)
			r.Get("/profile", authHandler.Profile)
			r.Put("/profile", authHandler.UpdateProfile)
		})
	})
}
