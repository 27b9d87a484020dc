package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	EstablishmentID uuid.UUID  `json:"establishmentId"`
	Date            string     `json:"date"`
	DurationMinutes int        `json:"durationMinutes"`
	StaffID         *uuid.UUID `json:"staffId,omitempty"`
	Slots           []string   `json:"slots"` // ["09:00", "09:30", ...]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		EstablishmentID: resp.EstablishmentID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		StaffID:         resp.StaffID,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(establishmentID uuid.UUID, dateStr, serviceIDsStr, staffIDStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	serviceIDs, err := parseUUIDList(serviceIDsStr)
	if err != nil {
		return nil, fmt.Errorf("serviceIds: %w", err)
	}

	req := &getAvailableSlots.Request{
		EstablishmentID: establishmentID,
		Date:            date,
		ServiceIDs:      serviceIDs,
	}

	if staffIDStr != "" {
		staffID, err := uuid.Parse(staffIDStr)
		if err != nil {
			return nil, fmt.Errorf("staffId: %w", err)
		}
		req.StaffID = &staffID
	}

	return req, nil
}

// parseUUIDList разбирает "a,b,c", пустые элементы пропускаются
func parseUUIDList(s string) ([]uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
