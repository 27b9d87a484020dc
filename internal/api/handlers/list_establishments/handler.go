package list_establishments

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/establishments/models"
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

// Handle GET /api/v1/establishments
// Query params: category (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListRequest{}
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		req.Category = &category
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /establishments - Failed to list establishments: category=%v, error=%v", req.Category, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /establishments - Establishments retrieved successfully: count=%d", len(result.Establishments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
