package usecase

import (
	"salon-booking/internal/data/repository"
	"salon-booking/internal/notification"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Catalog      CatalogService
	Availability AvailabilityService
	Booking      BookingService
	Review       ReviewService
	Contact      ContactService
	Settings     SettingsService
}

func NewService(
	repo *repository.Repository,
	notifier notification.Notifier,
	tokens *utils.TokenManager,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	now := SalonClock(config.App.Location())
	adminEmail := config.Email.AdminEmail

	return &Service{
		Auth:         NewAuthService(repo, tokens, now, log),
		Catalog:      NewCatalogService(repo, now, log),
		Availability: NewAvailabilityService(repo, log),
		Booking:      NewBookingService(repo, notifier, adminEmail, now, log),
		Review:       NewReviewService(repo, now, log),
		Contact:      NewContactService(repo, notifier, adminEmail, now, log),
		Settings:     NewSettingsService(repo, now, log),
	}
}
