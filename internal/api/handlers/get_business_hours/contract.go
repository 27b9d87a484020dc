package get_business_hours

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/service/establishments/models"
)

type EstablishmentService interface {
	GetBusinessHours(ctx context.Context, establishmentID uuid.UUID, date time.Time) (*models.BusinessHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
