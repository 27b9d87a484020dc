package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"

	checkTimeout = 2 * time.Second
)

// StatusResponse ответ проверки состояния
type StatusResponse struct {
	Status   string            `json:"status"`
	Postgres string            `json:"postgres,omitempty"`
	Redis    string            `json:"redis,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

type Handler struct {
	db     DBPinger
	redis  RedisPinger
	logger Logger
}

func NewHandler(db DBPinger, redis RedisPinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		redis:  redis,
		logger: logger,
	}
}

// Liveness GET /healthz
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: statusOK})
}

// Readiness GET /readyz
// Сервис готов, когда доступны и PostgreSQL, и Redis
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := StatusResponse{Status: statusOK, Postgres: statusOK, Redis: statusOK}
	errs := map[string]string{}

	if err := h.db.PingContext(ctx); err != nil {
		resp.Postgres = statusUnavailable
		errs["postgres"] = err.Error()
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		resp.Redis = statusUnavailable
		errs["redis"] = err.Error()
	}

	if len(errs) > 0 {
		h.logger.Warn("GET /readyz - Not ready: %v", errs)
		resp.Status = statusUnavailable
		resp.Errors = errs
		handlers.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
