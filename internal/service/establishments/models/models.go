package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ListRequest запрос на получение списка заведений
type ListRequest struct {
	Category *string
}

// EstablishmentResponse ответ с данными заведения
type EstablishmentResponse struct {
	ID       uuid.UUID `json:"id"`
	OwnerID  uuid.UUID `json:"ownerId"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Address  string    `json:"address"`
	Rating   float64   `json:"rating"`
}

// EstablishmentListResponse ответ со списком заведений
type EstablishmentListResponse struct {
	Establishments []EstablishmentResponse `json:"establishments"`
}

// BusinessHoursResponse действующие часы работы на дату
type BusinessHoursResponse struct {
	EstablishmentID uuid.UUID `json:"establishmentId"`
	Date            string    `json:"date"`
	DayOfWeek       string    `json:"dayOfWeek"`
	OpenTime        string    `json:"openTime"`
	CloseTime       string    `json:"closeTime"`
	LunchStart      *string   `json:"lunchStart,omitempty"`
	LunchEnd        *string   `json:"lunchEnd,omitempty"`
	IsClosed        bool      `json:"isClosed"`
	IsDefault       bool      `json:"isDefault"`
}

// FromDomainEstablishmentList конвертирует список domain моделей в DTO
func FromDomainEstablishmentList(list []*domain.Establishment) *EstablishmentListResponse {
	resp := &EstablishmentListResponse{
		Establishments: make([]EstablishmentResponse, 0, len(list)),
	}

	for _, e := range list {
		resp.Establishments = append(resp.Establishments, EstablishmentResponse{
			ID:       e.ID,
			OwnerID:  e.OwnerID,
			Name:     e.Name,
			Category: e.Category,
			Address:  e.Address,
			Rating:   e.Rating,
		})
	}

	return resp
}

// FromDomainBusinessHours конвертирует часы работы в DTO
func FromDomainBusinessHours(h *domain.BusinessHours, date time.Time) *BusinessHoursResponse {
	resp := &BusinessHoursResponse{
		EstablishmentID: h.EstablishmentID,
		Date:            date.Format(domain.DateFormat),
		DayOfWeek:       h.DayOfWeek.String(),
		OpenTime:        h.OpenTime.String(),
		CloseTime:       h.CloseTime.String(),
		IsClosed:        h.IsClosed,
		IsDefault:       h.IsDefault,
	}

	if h.HasLunch() {
		start, end := h.LunchStart.String(), h.LunchEnd.String()
		resp.LunchStart = &start
		resp.LunchEnd = &end
	}

	return resp
}
