package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Fallback business hours when an establishment has no row for the requested day
const (
	DefaultOpenTime  types.TimeString = "09:00"
	DefaultCloseTime types.TimeString = "18:00"
)

// Business validation constants
const (
	MaxServicesPerAppointment   = 10
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses список статусов, которые занимают время ресурса
// Только эти записи участвуют в расчёте доступности и проверке конфликтов
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusArrived,
	StatusStarted,
}
