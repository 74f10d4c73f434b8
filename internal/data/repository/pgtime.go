package repository

import (
	"time"

	"salon-booking/internal/data/entity"

	"github.com/jackc/pgx/v5/pgtype"
)

func toPgTime(t entity.TimeOfDay) pgtype.Time {
	return pgtype.Time{
		Microseconds: int64(t.Hour)*time.Hour.Microseconds() + int64(t.Minute)*time.Minute.Microseconds(),
		Valid:        true,
	}
}

func fromPgTime(t pgtype.Time) entity.TimeOfDay {
	minutes := t.Microseconds / time.Minute.Microseconds()
	return entity.TimeOfDay{Hour: int(minutes / 60), Minute: int(minutes % 60)}
}

// toPgDate drops the clock part so a DATE column never sees a shifted day.
func toPgDate(d time.Time) pgtype.Date {
	y, m, day := d.Date()
	return pgtype.Date{Time: time.Date(y, m, day, 0, 0, 0, 0, time.UTC), Valid: true}
}
