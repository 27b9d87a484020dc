package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	establishmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/establishment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var tracer = otel.Tracer("github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots")

// UseCase use case для получения доступного времени записи
type UseCase struct {
	establishmentRepo EstablishmentRepository
	hoursProvider     BusinessHoursProvider
	staffRepo         StaffRepository
	appointmentRepo   AppointmentRepository
	metrics           MetricsRecorder
	location          *time.Location
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
// location задаёт часовой пояс, в котором определяются "сегодня" и текущее время
func NewUseCase(
	establishmentRepo EstablishmentRepository,
	hoursProvider BusinessHoursProvider,
	staffRepo StaffRepository,
	appointmentRepo AppointmentRepository,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		establishmentRepo: establishmentRepo,
		hoursProvider:     hoursProvider,
		staffRepo:         staffRepo,
		appointmentRepo:   appointmentRepo,
		metrics:           metrics,
		location:          location,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute выполняет use case получения доступного времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "availability.compute")
	defer span.End()

	span.SetAttributes(
		attribute.String("establishment.id", req.EstablishmentID.String()),
		attribute.String("date", req.Date.Format(domain.DateFormat)),
		attribute.Int("services.count", len(req.ServiceIDs)),
	)

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("slots.count", len(resp.Slots)))
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: establishment=%s, date=%s, services=%v, staff=%v",
		req.EstablishmentID, req.Date.Format(domain.DateFormat), req.ServiceIDs, req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе сервиса
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем заведение
	if _, err := uc.establishmentRepo.GetByID(ctx, req.EstablishmentID); err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			uc.logger.Warn("GetAvailableSlots: establishment id=%s not found", req.EstablishmentID)
			return nil, ErrEstablishmentNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get establishment id=%s: %v", req.EstablishmentID, err)
		return nil, fmt.Errorf("%w: failed to get establishment: %v", ErrInternal, err)
	}

	// 4. Получаем услуги и считаем длительность (пустой список или нулевая сумма дают 30 минут)
	services, err := uc.establishmentRepo.GetServices(ctx, req.EstablishmentID, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	total, err := sumDurations(req.ServiceIDs, services)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}
	duration := availability.EffectiveDuration(total)

	// 5. Прошедшие даты не обслуживаем
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	response := &Response{
		EstablishmentID: req.EstablishmentID,
		Date:            req.Date,
		DurationMinutes: duration,
		StaffID:         req.StaffID,
		Slots:           []types.TimeString{},
	}

	// 6. Часы работы на день недели
	weekday := req.Date.Weekday()
	hours, err := uc.hoursProvider.GetEffectiveHours(ctx, req.EstablishmentID, weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}

	// 7. Сотрудники заведения
	roster, err := uc.staffRepo.GetActiveByEstablishment(ctx, req.EstablishmentID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if req.StaffID != nil && !inRoster(roster, *req.StaffID) {
		uc.logger.Warn("GetAvailableSlots: staff id=%s does not work at establishment=%s", *req.StaffID, req.EstablishmentID)
		return nil, ErrStaffNotFound
	}

	if hours.IsClosed {
		uc.logger.Info("GetAvailableSlots: establishment=%s is closed on %s", req.EstablishmentID, weekday)
		uc.metrics.ObserveAvailability("closed", 0)
		return response, nil
	}

	baseHours, err := toEngineHours(hours)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: malformed business hours: %v", err)
		return nil, fmt.Errorf("%w: malformed business hours: %v", ErrInternal, err)
	}

	// 8. Графики сотрудников на день недели
	staffIDs := make([]uuid.UUID, 0, len(roster))
	for _, m := range roster {
		staffIDs = append(staffIDs, m.ID)
	}

	schedules, err := uc.staffRepo.GetSchedules(ctx, staffIDs, weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get staff schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff schedules: %v", ErrInternal, err)
	}

	// 9. Записи дня, занимающие время
	appts, err := uc.appointmentRepo.GetDayAppointments(ctx, req.EstablishmentID, req.Date, domain.BlockingStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	engineAppts, err := toEngineAppointments(appts)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: malformed appointment: %v", err)
		return nil, fmt.Errorf("%w: malformed appointment: %v", ErrInternal, err)
	}

	// 10. Занятость по ресурсам
	busy := availability.BuildBusyIntervals(engineAppts, resourceIDs(roster))

	// 11. Ресурсы и их часы
	resources, err := buildResources(baseHours, roster, schedules)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: malformed staff schedule: %v", err)
		return nil, fmt.Errorf("%w: malformed staff schedule: %v", ErrInternal, err)
	}

	mode := "union"
	if req.StaffID != nil {
		resources, _ = selectResource(resources, *req.StaffID)
		mode = "staff"
	} else if len(roster) == 0 {
		mode = "owner"
	}

	// 12. Считаем время начала
	opts := availability.Options{MinStartMin: availability.MinStartForDate(req.Date, now)}
	starts := availability.ComputeForResources(resources, duration, busy, opts)

	response.Slots = formatSlots(starts)
	uc.metrics.ObserveAvailability(mode, len(response.Slots))

	uc.logger.Info("GetAvailableSlots: generated %d slots for establishment=%s, date=%s, duration=%d",
		len(response.Slots), req.EstablishmentID, req.Date.Format(domain.DateFormat), duration)

	return response, nil
}

func inRoster(roster []*domain.StaffMember, staffID uuid.UUID) bool {
	for _, m := range roster {
		if m.ID == staffID {
			return true
		}
	}
	return false
}
