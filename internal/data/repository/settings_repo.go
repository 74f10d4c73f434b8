package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

type SettingsRepository interface {
	GetOrCreate(ctx context.Context) (*entity.SalonSettings, error)
	Update(ctx context.Context, settings *entity.SalonSettings) error
}

type settingsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSettingsRepository(db database.PgxIface, log *zap.Logger) SettingsRepository {
	return &settingsRepository{
		db:  db,
		log: log.With(zap.String("repository", "settings")),
	}
}

// GetOrCreate returns the singleton row. The defaults are inserted only
// when the row is missing; ON CONFLICT makes racing first calls converge
// on one row.
func (r *settingsRepository) GetOrCreate(ctx context.Context) (*entity.SalonSettings, error) {
	settings, err := r.find(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("Failed to load settings", zap.Error(err))
		return nil, fmt.Errorf("load settings: %w", err)
	}

	defaults := entity.DefaultSettings()
	insert := `
		INSERT INTO salon_settings (id, salon_name, opening_time, closing_time,
		                            booking_confirmation_enabled, admin_notification_enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO NOTHING
	`
	_, err = r.db.Exec(ctx, insert,
		entity.SettingsID,
		defaults.SalonName,
		toPgTime(defaults.OpeningTime),
		toPgTime(defaults.ClosingTime),
		defaults.BookingConfirmationEnabled,
		defaults.AdminNotificationEnabled,
	)
	if err != nil {
		r.log.Error("Failed to create settings row", zap.Error(err))
		return nil, fmt.Errorf("create settings row: %w", err)
	}
	r.log.Info("Created default salon settings")

	settings, err = r.find(ctx)
	if err != nil {
		r.log.Error("Failed to load settings", zap.Error(err))
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (r *settingsRepository) find(ctx context.Context) (*entity.SalonSettings, error) {
	query := `
		SELECT id, salon_name, salon_description, phone, email, address, opening_time, closing_time,
		       facebook_url, instagram_url, twitter_url,
		       booking_confirmation_enabled, admin_notification_enabled, updated_at
		FROM salon_settings
		WHERE id = $1
	`

	var (
		settings         entity.SalonSettings
		opening, closing pgtype.Time
	)
	err := r.db.QueryRow(ctx, query, entity.SettingsID).Scan(
		&settings.ID,
		&settings.SalonName,
		&settings.SalonDescription,
		&settings.Phone,
		&settings.Email,
		&settings.Address,
		&opening,
		&closing,
		&settings.FacebookURL,
		&settings.InstagramURL,
		&settings.TwitterURL,
		&settings.BookingConfirmationEnabled,
		&settings.AdminNotificationEnabled,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	settings.OpeningTime = fromPgTime(opening)
	settings.ClosingTime = fromPgTime(closing)
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.SalonSettings) error {
	query := `
		UPDATE salon_settings
		SET salon_name = $2, salon_description = $3, phone = $4, email = $5, address = $6,
		    opening_time = $7, closing_time = $8, facebook_url = $9, instagram_url = $10,
		    twitter_url = $11, booking_confirmation_enabled = $12,
		    admin_notification_enabled = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		entity.SettingsID,
		settings.SalonName,
		settings.SalonDescription,
		settings.Phone,
		settings.Email,
		settings.Address,
		toPgTime(settings.OpeningTime),
		toPgTime(settings.ClosingTime),
		settings.FacebookURL,
		settings.InstagramURL,
		settings.TwitterURL,
		settings.BookingConfirmationEnabled,
		settings.AdminNotificationEnabled,
		settings.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update settings", zap.Error(err))
		return fmt.Errorf("update settings: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
