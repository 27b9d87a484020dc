package availability_stream

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/invalidation"
)

type InvalidationSubscriber interface {
	Subscribe(ctx context.Context, establishmentID uuid.UUID) (*invalidation.Subscription, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
