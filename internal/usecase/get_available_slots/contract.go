package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// EstablishmentRepository интерфейс репозитория заведений и услуг
type EstablishmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Establishment, error)
	GetServices(ctx context.Context, establishmentID uuid.UUID, ids []uuid.UUID) ([]*domain.Service, error)
}

// BusinessHoursProvider возвращает действующие часы работы (строка из БД или значения по умолчанию)
type BusinessHoursProvider interface {
	GetEffectiveHours(ctx context.Context, establishmentID uuid.UUID, day time.Weekday) (*domain.BusinessHours, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetActiveByEstablishment(ctx context.Context, establishmentID uuid.UUID) ([]*domain.StaffMember, error)
	GetSchedules(ctx context.Context, staffIDs []uuid.UUID, day time.Weekday) ([]*domain.StaffSchedule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetDayAppointments получает записи заведения на дату с указанными статусами
	GetDayAppointments(ctx context.Context, establishmentID uuid.UUID, date time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// MetricsRecorder интерфейс для учёта расчётов доступности
type MetricsRecorder interface {
	ObserveAvailability(mode string, slots int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
