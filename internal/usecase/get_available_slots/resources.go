package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// toEngineHours переводит часы работы в минуты от полуночи
func toEngineHours(h *domain.BusinessHours) (availability.Hours, error) {
	var lunchStart, lunchEnd *string
	if h.HasLunch() {
		s, e := h.LunchStart.String(), h.LunchEnd.String()
		lunchStart, lunchEnd = &s, &e
	}
	return availability.NewHours(h.OpenTime.String(), h.CloseTime.String(), lunchStart, lunchEnd)
}

// toEngineAppointments нормализует записи дня для расчёта занятости
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

// resourceIDs возвращает ID ресурсов: сотрудники или владелец, если персонала нет
func resourceIDs(roster []*domain.StaffMember) []string {
	if len(roster) == 0 {
		return []string{availability.OwnerResourceID}
	}

	ids := make([]string, 0, len(roster))
	for _, m := range roster {
		ids = append(ids, m.ID.String())
	}
	return ids
}

// buildResources строит ресурсы с часами работы
// Часы сотрудника сужаются по его графику. Сотрудник без графика работает в часы заведения,
// с isAvailable=false не принимает записи.
func buildResources(
	base availability.Hours,
	roster []*domain.StaffMember,
	schedules []*domain.StaffSchedule,
) ([]availability.Resource, error) {
	if len(roster) == 0 {
		return []availability.Resource{{ID: availability.OwnerResourceID, Hours: base, Available: true}}, nil
	}

	byStaff := make(map[uuid.UUID]*domain.StaffSchedule, len(schedules))
	for _, s := range schedules {
		byStaff[s.StaffID] = s
	}

	resources := make([]availability.Resource, 0, len(roster))
	for _, member := range roster {
		resource := availability.Resource{ID: member.ID.String(), Hours: base, Available: true}

		if schedule, ok := byStaff[member.ID]; ok {
			if !schedule.IsAvailable {
				resource.Available = false
			} else {
				start, err := availability.ParseTimeToMinutes(schedule.StartTime.String())
				if err != nil {
					return nil, fmt.Errorf("schedule of staff id=%s: %v", member.ID, err)
				}
				end, err := availability.ParseTimeToMinutes(schedule.EndTime.String())
				if err != nil {
					return nil, fmt.Errorf("schedule of staff id=%s: %v", member.ID, err)
				}
				resource.Hours = availability.ClampToSchedule(base, start, end)
			}
		}

		resources = append(resources, resource)
	}

	return resources, nil
}

// selectResource оставляет только выбранного сотрудника
func selectResource(resources []availability.Resource, staffID uuid.UUID) ([]availability.Resource, bool) {
	id := staffID.String()
	for _, r := range resources {
		if r.ID == id {
			return []availability.Resource{r}, true
		}
	}
	return nil, false
}

func formatSlots(starts []int) []types.TimeString {
	slots := make([]types.TimeString, 0, len(starts))
	for _, m := range starts {
		slots = append(slots, types.FromMinutes(m))
	}
	return slots
}
