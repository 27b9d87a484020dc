package availability_stream

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/invalidation"
)

const (
	msgInvalidEstablishmentID = "некорректный ID заведения"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStreamUnavailable      = "поток обновлений временно недоступен"

	writeWait           = 10 * time.Second
	maxReadBytes        = 512
	defaultPingInterval = 30 * time.Second
)

type Handler struct {
	subscriber   InvalidationSubscriber
	pingInterval time.Duration
	upgrader     websocket.Upgrader
	logger       Logger
}

func NewHandler(subscriber InvalidationSubscriber, pingInterval time.Duration, logger Logger) *Handler {
	if pingInterval <= 0 {
		pingInterval = defaultPingInterval
	}
	return &Handler{
		subscriber:   subscriber,
		pingInterval: pingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin проверяет gateway
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle GET /api/v1/establishments/{establishmentId}/availability/stream
// Query params: date (опционально, YYYY-MM-DD) - присылать только события этой даты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	establishmentID, err := uuid.Parse(mux.Vars(r)["establishmentId"])
	if err != nil {
		h.logger.Warn("GET /establishments/{id}/availability/stream - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	dateFilter := r.URL.Query().Get("date")
	if dateFilter != "" {
		if _, err := time.Parse(domain.DateFormat, dateFilter); err != nil {
			h.logger.Warn("GET /establishments/{id}/availability/stream - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Подписываемся до upgrade, чтобы ошибку Redis можно было вернуть обычным ответом
	sub, err := h.subscriber.Subscribe(ctx, establishmentID)
	if err != nil {
		h.logger.Error("GET /establishments/{id}/availability/stream - Failed to subscribe: establishment_id=%s, error=%v",
			establishmentID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgStreamUnavailable)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrader сам отвечает клиенту
		h.logger.Warn("GET /establishments/{id}/availability/stream - Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("GET /establishments/{id}/availability/stream - Client connected: establishment_id=%s, date=%s",
		establishmentID, dateFilter)

	go h.readLoop(conn, cancel)
	h.writeLoop(ctx, conn, sub.Events(), dateFilter)

	h.logger.Info("GET /establishments/{id}/availability/stream - Client disconnected: establishment_id=%s", establishmentID)
}

// readLoop читает входящие кадры, чтобы обрабатывались pong и close, и отменяет поток при разрыве
func (h *Handler) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	pongWait := 2 * h.pingInterval
	conn.SetReadLimit(maxReadBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, events <-chan invalidation.Event, dateFilter string) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return

		case event, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseTryAgainLater, ""), time.Now().Add(writeWait))
				return
			}
			if dateFilter != "" && event.Date != dateFilter {
				continue
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(fromEvent(event)); err != nil {
				h.logger.Warn("GET /establishments/{id}/availability/stream - Write failed: %v", err)
				return
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
