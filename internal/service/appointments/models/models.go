package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             uuid.UUID `json:"-"`
	CancellationReason string    `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	UserID uuid.UUID `json:"-"`
	Status string    `json:"status"`
}

// GetClientAppointmentsRequest запрос на получение истории записей клиента
type GetClientAppointmentsRequest struct {
	RequesterID uuid.UUID
	ClientID    uuid.UUID
	Status      *string
}

// GetEstablishmentAppointmentsRequest запрос на получение записей заведения
type GetEstablishmentAppointmentsRequest struct {
	UserID          uuid.UUID
	EstablishmentID uuid.UUID
	Date            *time.Time // Фильтр по дате (опционально)
	Statuses        []string   // Фильтр по статусам (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetEstablishmentAppointmentsRequest) ToDomainFilter() (domain.EstablishmentAppointmentsFilter, error) {
	filter := domain.EstablishmentAppointmentsFilter{
		EstablishmentID: r.EstablishmentID,
		Date:            r.Date,
	}

	for _, raw := range r.Statuses {
		status, err := ToDomainStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              uuid.UUID   `json:"id"`
	EstablishmentID uuid.UUID   `json:"establishmentId"`
	ClientID        uuid.UUID   `json:"clientId"`
	StaffID         *uuid.UUID  `json:"staffId,omitempty"`
	ServiceIDs      []uuid.UUID `json:"serviceIds"`
	AppointmentDate string      `json:"appointmentDate"` // "2026-05-04"
	StartTime       string      `json:"startTime"`       // "10:00"
	EndTime         *string     `json:"endTime,omitempty"`
	DurationMinutes *int        `json:"durationMinutes,omitempty"`
	TotalPrice      float64     `json:"totalPrice"`
	Status          string      `json:"status"`
	Notes           *string     `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	serviceIDs := a.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []uuid.UUID{}
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		EstablishmentID:    a.EstablishmentID,
		ClientID:           a.ClientID,
		StaffID:            a.StaffID,
		ServiceIDs:         serviceIDs,
		AppointmentDate:    a.AppointmentDate.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		TotalPrice:         a.TotalPrice,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.EndTime != nil {
		end := a.EndTime.String()
		resp.EndTime = &end
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
