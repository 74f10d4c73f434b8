// internal/wire/wire.go
package wire

import (
	"net/http"

	"salon-booking/internal/adaptor"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/notification"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services background jobs reuse.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// guards are the per-route middlewares shared by the resource wirings.
type guards struct {
	authenticated func(http.Handler) http.Handler
	staff         func(http.Handler) http.Handler
	limiter       *middleware.RateLimiter
}

// Wiring builds services, handlers and routes. A nil limiter disables
// rate limiting.
func Wiring(
	repo *repository.Repository,
	notifier notification.Notifier,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	tokens := utils.NewTokenManager(config.JWT)

	service := usecase.NewService(repo, notifier, tokens, config, logger)
	handler := adaptor.NewHandler(service, logger)

	g := guards{
		authenticated: middleware.Authenticate(tokens, logger),
		staff:         middleware.Staff(repo.User, logger),
		limiter:       limiter,
	}

	router := setupRouter(handler, tokens, g, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	tokens *utils.TokenManager,
	g guards,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		// Identity is optional everywhere; staff-only routes add their own guard.
		r.Use(middleware.OptionalAuth(tokens, logger))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.ResponseSuccess(w, "ok", map[string]string{"status": "ok"})
		})

		wireAuth(r, handler.Auth, g)
		wireCatalog(r, handler.Service, handler.Stylist, g)
		wireBooking(r, handler.Booking, g)
		wireReview(r, handler.Review, g)
		wireContact(r, handler.Contact, g)
		wireSettings(r, handler.Settings, g)
	})

	return r
}
