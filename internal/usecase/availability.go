package usecase

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	AvailableSlots(ctx context.Context, stylistID uuid.UUID, date time.Time, staff bool) ([]entity.TimeOfDay, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

// AvailableSlots lists the free hourly slots of a stylist on a date.
// Only confirmed and completed bookings hold a slot. Inactive stylists are
// hidden from public callers.
func (s *availabilityService) AvailableSlots(ctx context.Context, stylistID uuid.UUID, date time.Time, staff bool) ([]entity.TimeOfDay, error) {
	stylist, err := s.repo.Stylist.FindByID(ctx, stylistID)
	if err != nil {
		return nil, fmt.Errorf("load stylist %s: %w", stylistID, err)
	}
	if stylist == nil || (!staff && !stylist.IsActive) {
		return nil, NotFoundError("Stylist not found")
	}

	opening, closing := entity.DefaultOpeningTime, entity.DefaultClosingTime
	settings, err := s.repo.Settings.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("load salon settings: %w", err)
	}
	if settings != nil {
		opening, closing = settings.OpeningTime, settings.ClosingTime
	}

	blocked, err := s.repo.Booking.FindBlockingTimes(ctx, stylistID, date)
	if err != nil {
		return nil, fmt.Errorf("load bookings of stylist %s: %w", stylistID, err)
	}

	slots := FreeSlots(HourlySlots(opening, closing), blocked)

	s.log.Debug("Computed available slots",
		zap.String("stylist_id", stylistID.String()),
		zap.Time("date", date),
		zap.Int("free", len(slots)),
		zap.Int("blocked", len(blocked)),
	)

	return slots, nil
}

// HourlySlots returns every whole hour that starts at or after opening and
// before closing, ascending.
func HourlySlots(opening, closing entity.TimeOfDay) []entity.TimeOfDay {
	first := opening.Hour
	if opening.Minute > 0 {
		first++
	}

	slots := []entity.TimeOfDay{}
	for h := first; h < 24; h++ {
		slot := entity.TimeOfDay{Hour: h}
		if !slot.Before(closing) {
			break
		}
		slots = append(slots, slot)
	}
	return slots
}

// FreeSlots drops candidates equal to a blocked time, keeping order.
func FreeSlots(candidates, blocked []entity.TimeOfDay) []entity.TimeOfDay {
	taken := make(map[entity.TimeOfDay]struct{}, len(blocked))
	for _, t := range blocked {
		taken[t] = struct{}{}
	}

	free := make([]entity.TimeOfDay, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := taken[c]; !ok {
			free = append(free, c)
		}
	}
	return free
}
