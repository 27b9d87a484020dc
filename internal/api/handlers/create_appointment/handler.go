package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime           = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput          = "некорректные данные записи"
	msgSlotNotAvailable      = "выбранное время уже занято, обновите список доступного времени"
	msgEstablishmentNotFound = "заведение не найдено"
	msgServiceNotFound       = "услуга не найдена"
	msgStaffNotFound         = "сотрудник не найден"
	msgInvalidAppointment    = "некорректная дата записи"
	msgTooLateToBook         = "слишком поздно для записи на это время"
	msgOutsideBusinessHours  = "выбранное время вне часов работы заведения"
	msgStaffUnavailable      = "сотрудник не работает в выбранное время"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%s, establishment_id=%s, date=%s, time=%s",
				clientID, req.EstablishmentID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrEstablishmentNotFound):
			h.logger.Warn("POST /appointments - Establishment not found: establishment_id=%s", req.EstablishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: establishment_id=%s, services=%v",
				req.EstablishmentID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: establishment_id=%s, staff_id=%v",
				req.EstablishmentID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid appointment date: client_id=%s, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidAppointment)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: client_id=%s, date=%s, time=%s",
				clientID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: establishment_id=%s, date=%s, time=%s",
				req.EstablishmentID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, createAppointment.ErrStaffUnavailable):
			h.logger.Warn("POST /appointments - Staff unavailable: staff_id=%v, date=%s, time=%s",
				req.StaffID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgStaffUnavailable)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%s, establishment_id=%s, error=%v",
				clientID, req.EstablishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, client_id=%s, establishment_id=%s",
		result.ID, clientID, req.EstablishmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
