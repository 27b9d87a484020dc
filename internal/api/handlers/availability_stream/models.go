package availability_stream

import "github.com/m04kA/SMC-AppointmentService/internal/infra/invalidation"

const messageTypeInvalidate = "invalidate"

// StreamMessage сообщение клиенту: доступность на дату нужно перезапросить
type StreamMessage struct {
	Type   string `json:"type"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func fromEvent(event invalidation.Event) StreamMessage {
	return StreamMessage{
		Type:   messageTypeInvalidate,
		Date:   event.Date,
		Reason: event.Reason,
	}
}
