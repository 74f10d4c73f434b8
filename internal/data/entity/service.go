package entity

import "github.com/shopspring/decimal"

type ServiceCategory string

const (
	CategoryHair     ServiceCategory = "hair"
	CategoryNails    ServiceCategory = "nails"
	CategoryMakeup   ServiceCategory = "makeup"
	CategoryBraiding ServiceCategory = "braiding"
)

const DefaultServiceDuration = 60

type Service struct {
	Base
	Name            string          `db:"name"`
	Category        ServiceCategory `db:"category"`
	Description     string          `db:"description"`
	Price           decimal.Decimal `db:"price"`
	DurationMinutes int             `db:"duration_minutes"`
	IsActive        bool            `db:"is_active"`
}
