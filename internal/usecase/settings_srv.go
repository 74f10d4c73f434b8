package usecase

import (
	"context"
	"fmt"

	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"

	"go.uber.org/zap"
)

type SettingsService interface {
	GetSettings(ctx context.Context, staff bool) (*response.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req *request.UpdateSettingsRequest) (*response.SettingsResponse, error)
}

type settingsService struct {
	repo *repository.Repository
	now  Clock
	log  *zap.Logger
}

func NewSettingsService(repo *repository.Repository, now Clock, log *zap.Logger) SettingsService {
	return &settingsService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "settings")),
	}
}

func (s *settingsService) GetSettings(ctx context.Context, staff bool) (*response.SettingsResponse, error) {
	settings, err := s.repo.Settings.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	resp := response.SettingsToResponse(settings, staff)
	return &resp, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req *request.UpdateSettingsRequest) (*response.SettingsResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	settings, err := s.repo.Settings.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if req.SalonName != nil {
		settings.SalonName = *req.SalonName
	}
	if req.SalonDescription != nil {
		settings.SalonDescription = *req.SalonDescription
	}
	if req.Phone != nil {
		settings.Phone = *req.Phone
	}
	if req.Email != nil {
		settings.Email = *req.Email
	}
	if req.Address != nil {
		settings.Address = *req.Address
	}
	if req.OpeningTime != nil {
		if settings.OpeningTime, err = parseTime("opening_time", *req.OpeningTime); err != nil {
			return nil, err
		}
	}
	if req.ClosingTime != nil {
		if settings.ClosingTime, err = parseTime("closing_time", *req.ClosingTime); err != nil {
			return nil, err
		}
	}
	if req.FacebookURL != nil {
		settings.FacebookURL = req.FacebookURL
	}
	if req.InstagramURL != nil {
		settings.InstagramURL = req.InstagramURL
	}
	if req.TwitterURL != nil {
		settings.TwitterURL = req.TwitterURL
	}
	if req.BookingConfirmationEnabled != nil {
		settings.BookingConfirmationEnabled = *req.BookingConfirmationEnabled
	}
	if req.AdminNotificationEnabled != nil {
		settings.AdminNotificationEnabled = *req.AdminNotificationEnabled
	}

	if !settings.OpeningTime.Before(settings.ClosingTime) {
		return nil, FieldError("closing_time", "Closing time must be after opening time")
	}

	settings.UpdatedAt = s.now()
	if err := s.repo.Settings.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	s.log.Info("Salon settings updated")

	resp := response.SettingsToResponse(settings, true)
	return &resp, nil
}
