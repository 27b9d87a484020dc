package create_appointment

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.EstablishmentID == uuid.Nil {
		return fmt.Errorf("%w: establishmentID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
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

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// summarizeServices проверяет, что найдены все услуги, и возвращает суммарные длительность и цену
func summarizeServices(requested []uuid.UUID, found []*domain.Service) (duration int, price float64, err error) {
	byID := make(map[uuid.UUID]*domain.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	for _, id := range requested {
		service, ok := byID[id]
		if !ok {
			return 0, 0, fmt.Errorf("%w: id=%s", ErrServiceNotFound, id)
		}
		duration += service.DurationMinutes
		price += service.Price
	}

	return duration, price, nil
}

// validateBookingTime проверяет дату и запас времени до начала для сегодняшних записей
func validateBookingTime(date time.Time, startMin int, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	if minStart := availability.MinStartForDate(date, now); startMin < minStart {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, availability.TodayBufferMinutes)
	}

	return nil
}

// validateWithinHours проверяет, что [start, end) лежит в часах работы и не задевает обед
func validateWithinHours(hours *domain.BusinessHours, proposed availability.Interval) error {
	if hours.IsClosed {
		return fmt.Errorf("%w: closed on %s", ErrOutsideBusinessHours, hours.DayOfWeek)
	}

	engineHours, err := toEngineHours(hours)
	if err != nil {
		return fmt.Errorf("%w: malformed business hours: %v", ErrInternal, err)
	}

	if proposed.StartMin < engineHours.OpenMin || proposed.EndMin > engineHours.CloseMin {
		return fmt.Errorf("%w: %s-%s", ErrOutsideBusinessHours, hours.OpenTime, hours.CloseTime)
	}

	if engineHours.BreakStartMin != nil && engineHours.BreakEndMin != nil &&
		availability.Overlaps(proposed.StartMin, proposed.EndMin, *engineHours.BreakStartMin, *engineHours.BreakEndMin) {
		return fmt.Errorf("%w: overlaps lunch break", ErrOutsideBusinessHours)
	}

	return nil
}

// validateStaffSchedule проверяет [start, end) по графику сотрудника на день
// Без строки графика сотрудник работает в часы заведения.
func validateStaffSchedule(
	hours *domain.BusinessHours,
	schedules []*domain.StaffSchedule,
	staffID uuid.UUID,
	proposed availability.Interval,
) error {
	var schedule *domain.StaffSchedule
	for _, s := range schedules {
		if s.StaffID == staffID {
			schedule = s
			break
		}
	}
	if schedule == nil {
		return nil
	}

	if !schedule.IsAvailable {
		return fmt.Errorf("%w: day off on %s", ErrStaffUnavailable, schedule.DayOfWeek)
	}

	engineHours, err := toEngineHours(hours)
	if err != nil {
		return fmt.Errorf("%w: malformed business hours: %v", ErrInternal, err)
	}
	start, err := availability.ParseTimeToMinutes(schedule.StartTime.String())
	if err != nil {
		return fmt.Errorf("%w: malformed staff schedule: %v", ErrInternal, err)
	}
	end, err := availability.ParseTimeToMinutes(schedule.EndTime.String())
	if err != nil {
		return fmt.Errorf("%w: malformed staff schedule: %v", ErrInternal, err)
	}

	window := availability.ClampToSchedule(engineHours, start, end)
	if proposed.StartMin < window.OpenMin || proposed.EndMin > window.CloseMin {
		return fmt.Errorf("%w: works %s-%s", ErrStaffUnavailable, schedule.StartTime, schedule.EndTime)
	}

	return nil
}

// toEngineHours переводит часы работы в минуты от полуночи
func toEngineHours(h *domain.BusinessHours) (availability.Hours, error) {
	var lunchStart, lunchEnd *string
	if h.HasLunch() {
		s, e := h.LunchStart.String(), h.LunchEnd.String()
		lunchStart, lunchEnd = &s, &e
	}
	return availability.NewHours(h.OpenTime.String(), h.CloseTime.String(), lunchStart, lunchEnd)
}

// toEngineAppointments нормализует записи дня для проверки конфликтов
func toEngineAppointments(appts []*domain.Appointment) ([]availability.Appointment, error) {
	result := make([]availability.Appointment, 0, len(appts))
	for _, a := range appts {
		var endTime *string
		if a.EndTime != nil && !a.EndTime.IsZero() {
			end := a.EndTime.String()
			endTime = &end
		}

		converted, err := availability.NewAppointment(a.StaffResourceID(), a.StartTime.String(), endTime, a.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("appointment id=%s: %v", a.ID, err)
		}
		result = append(result, converted)
	}
	return result, nil
}

// isDateInPast проверяет, что календарная дата раньше сегодняшней
func isDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	dateOnly := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
