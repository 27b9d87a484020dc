package create_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	EstablishmentID uuid.UUID   `json:"establishmentId"`
	StaffID         *uuid.UUID  `json:"staffId,omitempty"`
	ServiceIDs      []uuid.UUID `json:"serviceIds"`
	Date            string      `json:"date"`      // "2026-05-04"
	StartTime       string      `json:"startTime"` // "10:00"
	Notes           *string     `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              uuid.UUID   `json:"id"`
	EstablishmentID uuid.UUID   `json:"establishmentId"`
	ClientID        uuid.UUID   `json:"clientId"`
	StaffID         *uuid.UUID  `json:"staffId,omitempty"`
	ServiceIDs      []uuid.UUID `json:"serviceIds"`
	AppointmentDate string      `json:"appointmentDate"`
	StartTime       string      `json:"startTime"`
	EndTime         string      `json:"endTime"`
	DurationMinutes int         `json:"durationMinutes"`
	TotalPrice      float64     `json:"totalPrice"`
	Status          string      `json:"status"`
	Notes           *string     `json:"notes,omitempty"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

// errInvalidDate и errInvalidTime различают ошибки парсинга для сообщения клиенту
var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID uuid.UUID) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createAppointment.Request{
		ClientID:        clientID,
		EstablishmentID: r.EstablishmentID,
		StaffID:         r.StaffID,
		ServiceIDs:      r.ServiceIDs,
		Date:            date,
		StartTime:       startTime,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	serviceIDs := resp.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []uuid.UUID{}
	}

	return &AppointmentResponse{
		ID:              resp.ID,
		EstablishmentID: resp.EstablishmentID,
		ClientID:        resp.ClientID,
		StaffID:         resp.StaffID,
		ServiceIDs:      serviceIDs,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		TotalPrice:      resp.TotalPrice,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
