package entity

type Specialization string

const (
	SpecializationHair     Specialization = "hair"
	SpecializationNails    Specialization = "nails"
	SpecializationMakeup   Specialization = "makeup"
	SpecializationBraiding Specialization = "braiding"
	SpecializationGeneral  Specialization = "general"
)

type Stylist struct {
	Base
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	Phone          string         `db:"phone"`
	Specialization Specialization `db:"specialization"`
	Bio            string         `db:"bio"`
	PhotoURL       *string        `db:"photo_url"`
	IsActive       bool           `db:"is_active"`

	// Services is the capability set, loaded from stylist_services.
	Services []*Service `db:"-"`
}
