package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступного времени
type Request struct {
	EstablishmentID uuid.UUID   // ID заведения
	Date            time.Time   // Дата (без времени)
	ServiceIDs      []uuid.UUID // Выбранные услуги, длительность = сумма длительностей
	StaffID         *uuid.UUID  // Конкретный сотрудник (опционально)
}

// Response модель ответа со списком времени начала
type Response struct {
	EstablishmentID uuid.UUID          // ID заведения
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Длительность, по которой считались слоты
	StaffID         *uuid.UUID         // Сотрудник, если был выбран
	Slots           []types.TimeString // Время начала по возрастанию
}
