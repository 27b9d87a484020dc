package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID        uuid.UUID        // ID клиента (из X-User-ID)
	EstablishmentID uuid.UUID        // ID заведения
	StaffID         *uuid.UUID       // Сотрудник (опционально)
	ServiceIDs      []uuid.UUID      // Выбранные услуги
	Date            time.Time        // Дата записи (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	Notes           *string          // Комментарий клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              uuid.UUID
	EstablishmentID uuid.UUID
	ClientID        uuid.UUID
	StaffID         *uuid.UUID
	ServiceIDs      []uuid.UUID
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	TotalPrice      float64
	Status          string
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
