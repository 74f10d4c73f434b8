package usecase

import (
	"context"
	"testing"

	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slots(times ...string) []entity.TimeOfDay {
	out := []entity.TimeOfDay{}
	for _, s := range times {
		t, _ := entity.ParseTimeOfDay(s)
		out = append(out, t)
	}
	return out
}

func TestHourlySlots(t *testing.T) {
	defaults := HourlySlots(entity.DefaultOpeningTime, entity.DefaultClosingTime)
	require.Len(t, defaults, 11)
	assert.Equal(t, "09:00", defaults[0].String())
	assert.Equal(t, "19:00", defaults[10].String())

	assert.Equal(t, slots("10:00", "11:00"), HourlySlots(entity.TimeOfDay{Hour: 9, Minute: 30}, entity.TimeOfDay{Hour: 12}))
	assert.Equal(t, slots("09:00", "10:00", "11:00", "12:00"), HourlySlots(entity.TimeOfDay{Hour: 9}, entity.TimeOfDay{Hour: 12, Minute: 15}))
	assert.Empty(t, HourlySlots(entity.TimeOfDay{Hour: 18}, entity.TimeOfDay{Hour: 18}))
}

func TestFreeSlots(t *testing.T) {
	free := FreeSlots(slots("09:00", "10:00", "11:00"), slots("10:00", "15:00"))
	assert.Equal(t, slots("09:00", "11:00"), free)
}

func TestAvailableSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewAvailabilityService(f.repo, f.log)

	service := f.addService("Cut", true)
	stylist := f.addStylist("amina")
	other := f.addStylist("wanjiru")
	date := day(2025, 6, 1)

	t.Run("no bookings returns all default slots", func(t *testing.T) {
		got, err := svc.AvailableSlots(ctx, stylist.ID, date, false)
		require.NoError(t, err)
		assert.Len(t, got, 11)
	})

	t.Run("only confirmed and completed bookings block", func(t *testing.T) {
		f.addBooking(service.ID, &stylist.ID, date, entity.TimeOfDay{Hour: 10}, entity.BookingStatusConfirmed)
		f.addBooking(service.ID, &stylist.ID, date, entity.TimeOfDay{Hour: 11}, entity.BookingStatusPending)
		f.addBooking(service.ID, &stylist.ID, date, entity.TimeOfDay{Hour: 12}, entity.BookingStatusCancelled)
		f.addBooking(service.ID, &other.ID, date, entity.TimeOfDay{Hour: 13}, entity.BookingStatusCompleted)
		f.addBooking(service.ID, &stylist.ID, date.AddDate(0, 0, 1), entity.TimeOfDay{Hour: 14}, entity.BookingStatusConfirmed)

		got, err := svc.AvailableSlots(ctx, stylist.ID, date, false)
		require.NoError(t, err)
		assert.Len(t, got, 10)
		assert.NotContains(t, got, entity.TimeOfDay{Hour: 10})
		assert.Contains(t, got, entity.TimeOfDay{Hour: 11})
		assert.Contains(t, got, entity.TimeOfDay{Hour: 12})
	})

	t.Run("settings bounds are used", func(t *testing.T) {
		s := entity.DefaultSettings()
		s.OpeningTime = entity.TimeOfDay{Hour: 8}
		s.ClosingTime = entity.TimeOfDay{Hour: 11}
		f.settings.row = s
		defer func() { f.settings.row = nil }()

		got, err := svc.AvailableSlots(ctx, stylist.ID, date, false)
		require.NoError(t, err)
		assert.Equal(t, slots("08:00", "09:00"), got)
	})

	t.Run("inactive stylist is hidden from the public", func(t *testing.T) {
		retired := f.addStylist("retired")
		retired.IsActive = false
		f.stylists.rows[retired.ID] = *retired

		_, err := svc.AvailableSlots(ctx, retired.ID, date, false)
		assert.Equal(t, KindNotFound, KindOf(err))

		got, err := svc.AvailableSlots(ctx, retired.ID, date, true)
		require.NoError(t, err)
		assert.Len(t, got, 11)
	})

	t.Run("unknown stylist", func(t *testing.T) {
		_, err := svc.AvailableSlots(ctx, uuid.New(), date, true)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}
