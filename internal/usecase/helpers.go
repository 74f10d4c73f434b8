package usecase

import (
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
)

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, FieldError(field, "Must be a valid UUID")
	}
	return id, nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := parseID("ids", s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseDate(field, raw string) (time.Time, error) {
	d, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, FieldError(field, "Date has wrong format. Use YYYY-MM-DD")
	}
	return d, nil
}

func parseTime(field, raw string) (entity.TimeOfDay, error) {
	t, err := entity.ParseTimeOfDay(raw)
	if err != nil {
		return entity.TimeOfDay{}, FieldError(field, "Time has wrong format. Use HH:MM")
	}
	return t, nil
}

// today is the calendar date of now, as stored in DATE columns.
func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Clock returns the current time in the salon time zone.
type Clock func() time.Time

func SalonClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}
