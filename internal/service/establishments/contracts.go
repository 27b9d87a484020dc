package establishments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// EstablishmentRepository интерфейс репозитория заведений
type EstablishmentRepository interface {
	List(ctx context.Context, filter domain.EstablishmentsFilter) ([]*domain.Establishment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Establishment, error)
}

// BusinessHoursRepository интерфейс репозитория часов работы
type BusinessHoursRepository interface {
	GetByEstablishmentAndDay(ctx context.Context, establishmentID uuid.UUID, day time.Weekday) (*domain.BusinessHours, error)
}

// ListCache интерфейс кэша списка заведений
type ListCache interface {
	Get(ctx context.Context, filter domain.EstablishmentsFilter) ([]*domain.Establishment, bool, error)
	Set(ctx context.Context, filter domain.EstablishmentsFilter, list []*domain.Establishment) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
