package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Establishment is a business that accepts bookings
type Establishment struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Category  string
	Address   string
	Rating    float64
	IsActive  bool
	CreatedAt time.Time
}

// EstablishmentsFilter narrows the public listing
type EstablishmentsFilter struct {
	Category *string
}

// Service is a bookable offering of an establishment
type Service struct {
	ID              uuid.UUID
	EstablishmentID uuid.UUID
	Name            string
	DurationMinutes int
	Price           float64
}

// BusinessHours is the working window of an establishment for one day of week
type BusinessHours struct {
	EstablishmentID uuid.UUID
	DayOfWeek       time.Weekday
	OpenTime        types.TimeString
	CloseTime       types.TimeString
	LunchStart      *types.TimeString
	LunchEnd        *types.TimeString
	IsClosed        bool
	IsDefault       bool // true when no row exists and the fallback is used
}

// HasLunch returns true if both lunch bounds are set
func (b *BusinessHours) HasLunch() bool {
	return b.LunchStart != nil && b.LunchEnd != nil && !b.LunchStart.IsZero() && !b.LunchEnd.IsZero()
}

// DefaultBusinessHours returns the fallback used when an establishment has no row for the day
func DefaultBusinessHours(establishmentID uuid.UUID, day time.Weekday) *BusinessHours {
	return &BusinessHours{
		EstablishmentID: establishmentID,
		DayOfWeek:       day,
		OpenTime:        DefaultOpenTime,
		CloseTime:       DefaultCloseTime,
		IsDefault:       true,
	}
}

// StaffMember is a person who can be booked
type StaffMember struct {
	ID              uuid.UUID
	EstablishmentID uuid.UUID
	Name            string
	IsActive        bool
}

// StaffSchedule constrains a staff member's working window on a day of week
type StaffSchedule struct {
	StaffID     uuid.UUID
	DayOfWeek   time.Weekday
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}
