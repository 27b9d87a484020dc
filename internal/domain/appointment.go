package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusArrived   AppointmentStatus = "arrived"
	StatusStarted   AppointmentStatus = "started"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a client's booking at an establishment
type Appointment struct {
	ID              uuid.UUID
	EstablishmentID uuid.UUID
	ClientID        uuid.UUID
	StaffID         *uuid.UUID // nil = unassigned or owner-only, blocks every resource
	ServiceIDs      []uuid.UUID
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         *types.TimeString
	DurationMinutes *int
	TotalPrice      float64
	Status          AppointmentStatus
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the appointment reserves time against a resource
func (a *Appointment) IsBlocking() bool {
	return a.Status.IsBlocking()
}

// CanBeCancelled returns true if the client may still cancel the appointment
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsFinished returns true if the appointment no longer reserves time
func (a *Appointment) IsFinished() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled || a.Status == StatusNoShow
}

// StaffResourceID returns the staff id as a resource id, or nil for unassigned appointments
func (a *Appointment) StaffResourceID() *string {
	if a.StaffID == nil {
		return nil
	}
	id := a.StaffID.String()
	return &id
}

// IsBlocking returns true for statuses in BlockingStatuses
func (s AppointmentStatus) IsBlocking() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusArrived, StatusStarted,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether the establishment may move an appointment from s to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusArrived, StatusCancelled, StatusNoShow},
	StatusArrived:   {StatusStarted},
	StatusStarted:   {StatusCompleted},
}

// EstablishmentAppointmentsFilter фильтр для получения записей заведения
type EstablishmentAppointmentsFilter struct {
	EstablishmentID uuid.UUID           // Обязательный параметр
	Date            *time.Time          // Конкретная дата (опционально)
	Statuses        []AppointmentStatus // Фильтр по статусам (пусто = все)
}
