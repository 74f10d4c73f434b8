package repository

import (
	"salon-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Service  ServiceRepository
	Stylist  StylistRepository
	Booking  BookingRepository
	Review   ReviewRepository
	Contact  ContactRepository
	Settings SettingsRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Service:  NewServiceRepository(db, log),
		Stylist:  NewStylistRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Review:   NewReviewRepository(db, log),
		Contact:  NewContactRepository(db, log),
		Settings: NewSettingsRepository(db, log),
	}
}
