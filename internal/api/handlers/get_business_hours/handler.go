package get_business_hours

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/establishments"
)

const (
	msgInvalidEstablishmentID = "некорректный ID заведения"
	msgMissingDate            = "дата обязательна"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEstablishmentNotFound  = "заведение не найдено"
)

type Handler struct {
	service EstablishmentService
	logger  Logger
}

func NewHandler(service EstablishmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/establishments/{establishmentId}/business-hours
// Query params: date (обязательно, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	establishmentID, err := uuid.Parse(mux.Vars(r)["establishmentId"])
	if err != nil {
		h.logger.Warn("GET /establishments/{id}/business-hours - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /establishments/{id}/business-hours - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /establishments/{id}/business-hours - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetBusinessHours(r.Context(), establishmentID, date)
	if err != nil {
		switch {
		case errors.Is(err, establishments.ErrEstablishmentNotFound):
			h.logger.Warn("GET /establishments/{id}/business-hours - Establishment not found: establishment_id=%s", establishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)

		default:
			h.logger.Error("GET /establishments/{id}/business-hours - Failed to get hours: establishment_id=%s, error=%v",
				establishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
