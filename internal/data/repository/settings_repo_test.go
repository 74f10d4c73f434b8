package repository

import (
	"context"
	"testing"
	"time"

	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func reviewFixture() *entity.Review {
	return &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		BookingID:  uuid.New(),
		ClientName: "Wanjiru",
		Rating:     5,
		Title:      "Great braids",
	}
}

var settingsColumns = []string{
	"id", "salon_name", "salon_description", "phone", "email", "address",
	"opening_time", "closing_time", "facebook_url", "instagram_url", "twitter_url",
	"booking_confirmation_enabled", "admin_notification_enabled", "updated_at",
}

func settingsRow(name string, opening, closing entity.TimeOfDay, adminAlerts bool) *pgxmock.Rows {
	return pgxmock.NewRows(settingsColumns).AddRow(
		entity.SettingsID, name, "", "", "", "",
		toPgTime(opening), toPgTime(closing),
		(*string)(nil), (*string)(nil), (*string)(nil),
		true, adminAlerts, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	)
}

func TestSettingsRepository_GetOrCreate(t *testing.T) {
	t.Run("existing row is read without writing", func(t *testing.T) {
		mock := newMock(t)
		repo := NewSettingsRepository(mock, zap.NewNop())

		mock.ExpectQuery("FROM salon_settings").
			WithArgs(entity.SettingsID).
			WillReturnRows(settingsRow("Glow", entity.TimeOfDay{Hour: 8}, entity.TimeOfDay{Hour: 18}, false))

		settings, err := repo.GetOrCreate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Glow", settings.SalonName)
		assert.Equal(t, entity.TimeOfDay{Hour: 8}, settings.OpeningTime)
		assert.Equal(t, entity.TimeOfDay{Hour: 18}, settings.ClosingTime)
		assert.False(t, settings.AdminNotificationEnabled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is created with defaults", func(t *testing.T) {
		mock := newMock(t)
		repo := NewSettingsRepository(mock, zap.NewNop())

		mock.ExpectQuery("FROM salon_settings").
			WithArgs(entity.SettingsID).
			WillReturnRows(pgxmock.NewRows(settingsColumns))
		mock.ExpectExec("ON CONFLICT \\(id\\) DO NOTHING").
			WithArgs(anyArgs(6)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectQuery("FROM salon_settings").
			WithArgs(entity.SettingsID).
			WillReturnRows(settingsRow("Salon", entity.DefaultOpeningTime, entity.DefaultClosingTime, true))

		settings, err := repo.GetOrCreate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, entity.DefaultOpeningTime, settings.OpeningTime)
		assert.True(t, settings.AdminNotificationEnabled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgTimeRoundTrip(t *testing.T) {
	tod := entity.TimeOfDay{Hour: 19, Minute: 45}
	assert.Equal(t, tod, fromPgTime(toPgTime(tod)))
}
