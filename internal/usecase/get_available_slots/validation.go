package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EstablishmentID == uuid.Nil {
		return fmt.Errorf("%w: establishmentID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services allowed", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	seen := make(map[uuid.UUID]struct{}, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate service id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// sumDurations проверяет, что найдены все запрошенные услуги, и возвращает их суммарную длительность
func sumDurations(requested []uuid.UUID, found []*domain.Service) (int, error) {
	byID := make(map[uuid.UUID]*domain.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	total := 0
	for _, id := range requested {
		service, ok := byID[id]
		if !ok {
			return 0, fmt.Errorf("%w: id=%s", ErrServiceNotFound, id)
		}
		total += service.DurationMinutes
	}

	return total, nil
}

// isDateInPast проверяет, что календарная дата раньше сегодняшней
// Сравниваются только год, месяц и день, часовой пояс берётся у каждого значения свой
func isDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	dateOnly := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
