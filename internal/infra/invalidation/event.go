package invalidation

import (
	"github.com/google/uuid"
)

const channelPrefix = "availability:"

// Причины инвалидации
const (
	ReasonCreated       = "created"
	ReasonCancelled     = "cancelled"
	ReasonStatusChanged = "status_changed"
)

// Event сигнал о том, что доступность заведения на дату могла измениться
type Event struct {
	EstablishmentID uuid.UUID `json:"establishmentId"`
	AppointmentID   uuid.UUID `json:"appointmentId"`
	Date            string    `json:"date"`
	Reason          string    `json:"reason"`
}

// Channel возвращает имя канала Redis для заведения
func Channel(establishmentID uuid.UUID) string {
	return channelPrefix + establishmentID.String()
}
