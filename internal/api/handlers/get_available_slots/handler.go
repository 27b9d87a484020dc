package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidEstablishmentID = "некорректный ID заведения"
	msgMissingDate            = "дата обязательна"
	msgInvalidParams          = "некорректные параметры запроса: date (YYYY-MM-DD), serviceIds (UUID через запятую), staffId (UUID)"
	msgInvalidInput           = "некорректные параметры запроса"
	msgDateInPast             = "дата в прошлом"
	msgEstablishmentNotFound  = "заведение не найдено"
	msgServiceNotFound        = "услуга не найдена"
	msgStaffNotFound          = "сотрудник не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/establishments/{establishmentId}/available-slots
// Query params: date (обязательно, YYYY-MM-DD), serviceIds (опционально, через запятую), staffId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	establishmentID, err := uuid.Parse(mux.Vars(r)["establishmentId"])
	if err != nil {
		h.logger.Warn("GET /establishments/{id}/available-slots - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /establishments/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(establishmentID, dateStr, query.Get("serviceIds"), query.Get("staffId"))
	if err != nil {
		h.logger.Warn("GET /establishments/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEstablishmentNotFound):
			h.logger.Warn("GET /establishments/{id}/available-slots - Establishment not found: establishment_id=%s", establishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /establishments/{id}/available-slots - Service not found: establishment_id=%s, services=%v",
				establishmentID, useCaseReq.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /establishments/{id}/available-slots - Staff not found: establishment_id=%s, staff_id=%v",
				establishmentID, useCaseReq.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /establishments/{id}/available-slots - Date in past: establishment_id=%s, date=%s",
				establishmentID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /establishments/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /establishments/{id}/available-slots - Failed to get slots: establishment_id=%s, date=%s, error=%v",
				establishmentID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /establishments/{id}/available-slots - Slots retrieved successfully: establishment_id=%s, date=%s, slots_count=%d",
		establishmentID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
