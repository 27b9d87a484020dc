package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/invalidation"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByClientID(ctx context.Context, clientID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByEstablishmentWithFilter(ctx context.Context, filter domain.EstablishmentAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id uuid.UUID, from domain.AppointmentStatus, reason string) error
}

// EstablishmentRepository интерфейс репозитория заведений
type EstablishmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Establishment, error)
}

// InvalidationPublisher интерфейс издателя событий об изменении доступности
type InvalidationPublisher interface {
	Publish(ctx context.Context, event invalidation.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
