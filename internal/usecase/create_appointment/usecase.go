package create_appointment

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
	"github.com/m04kA/SMC-AppointmentService/internal/infra/invalidation"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	establishmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/establishment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Источники конфликтов для метрики booking_conflicts_total
const (
	conflictSourceGuard      = "guard"
	conflictSourceConstraint = "constraint"
)

var tracer = otel.Tracer("github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment")

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo   AppointmentRepository
	establishmentRepo EstablishmentRepository
	hoursProvider     BusinessHoursProvider
	staffRepo         StaffRepository
	txManager         TransactionManager
	publisher         InvalidationPublisher
	metrics           MetricsRecorder
	location          *time.Location
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	establishmentRepo EstablishmentRepository,
	hoursProvider BusinessHoursProvider,
	staffRepo StaffRepository,
	txManager TransactionManager,
	publisher InvalidationPublisher,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:   appointmentRepo,
		establishmentRepo: establishmentRepo,
		hoursProvider:     hoursProvider,
		staffRepo:         staffRepo,
		txManager:         txManager,
		publisher:         publisher,
		metrics:           metrics,
		location:          location,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute выполняет use case создания записи
// Проверка конфликтов снижает вероятность гонки, окончательное решение принимает ограничение БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "appointment.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("establishment.id", req.EstablishmentID.String()),
		attribute.String("date", req.Date.Format(domain.DateFormat)),
		attribute.String("start_time", req.StartTime.String()),
	)

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("appointment.id", resp.ID.String()))
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%s, establishment=%s, staff=%v, services=%v, date=%s, time=%s",
		req.ClientID, req.EstablishmentID, req.StaffID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе сервиса
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем заведение
	if _, err := uc.establishmentRepo.GetByID(ctx, req.EstablishmentID); err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			uc.logger.Warn("CreateAppointment: establishment id=%s not found", req.EstablishmentID)
			return nil, ErrEstablishmentNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get establishment id=%s: %v", req.EstablishmentID, err)
		return nil, fmt.Errorf("%w: failed to get establishment: %v", ErrInternal, err)
	}

	// 4. Услуги: длительность и стоимость
	services, err := uc.establishmentRepo.GetServices(ctx, req.EstablishmentID, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	total, price, err := summarizeServices(req.ServiceIDs, services)
	if err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}
	duration := availability.EffectiveDuration(total)

	// 5. Сотрудник должен работать в заведении
	var staffResourceID *string
	if req.StaffID != nil {
		roster, err := uc.staffRepo.GetActiveByEstablishment(ctx, req.EstablishmentID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get staff: %v", err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !inRoster(roster, *req.StaffID) {
			uc.logger.Warn("CreateAppointment: staff id=%s does not work at establishment=%s", *req.StaffID, req.EstablishmentID)
			return nil, ErrStaffNotFound
		}
		id := req.StaffID.String()
		staffResourceID = &id
	}

	// 6. Дата и запас времени до начала
	startMin, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	proposed := availability.Interval{StartMin: startMin, EndMin: startMin + duration}

	if err := validateBookingTime(req.Date, startMin, now); err != nil {
		uc.logger.Warn("CreateAppointment: booking time validation failed: %v", err)
		return nil, err
	}

	// 7. Время должно лежать в часах работы и не задевать обед
	hours, err := uc.hoursProvider.GetEffectiveHours(ctx, req.EstablishmentID, req.Date.Weekday())
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}

	if err := validateWithinHours(hours, proposed); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 7.1. Выбранный сотрудник должен работать в это время по своему графику
	if req.StaffID != nil {
		schedules, err := uc.staffRepo.GetSchedules(ctx, []uuid.UUID{*req.StaffID}, req.Date.Weekday())
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get schedule of staff id=%s: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff schedule: %v", ErrInternal, err)
		}

		if err := validateStaffSchedule(hours, schedules, *req.StaffID, proposed); err != nil {
			uc.logger.Warn("CreateAppointment: staff id=%s: %v", *req.StaffID, err)
			return nil, err
		}
	}

	appt := &domain.Appointment{
		EstablishmentID: req.EstablishmentID,
		ClientID:        req.ClientID,
		StaffID:         req.StaffID,
		ServiceIDs:      req.ServiceIDs,
		AppointmentDate: req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: &duration,
		TotalPrice:      price,
		Status:          domain.StatusPending,
		Notes:           req.Notes,
	}
	endTime := types.FromMinutes(proposed.EndMin)
	appt.EndTime = &endTime

	var created *domain.Appointment

	// 8. Повторная проверка конфликтов и создание записи в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		dayAppts, err := uc.appointmentRepo.GetDayAppointments(txCtx, req.EstablishmentID, req.Date, domain.BlockingStatuses)
		if err != nil {
			return fmt.Errorf("%w: %v", errGuardUnavailable, err)
		}

		engineAppts, err := toEngineAppointments(dayAppts)
		if err != nil {
			return fmt.Errorf("%w: %v", errGuardUnavailable, err)
		}

		if availability.CheckConflict(proposed, availability.ResourceSelector{StaffID: staffResourceID}, engineAppts) {
			uc.logger.Warn("CreateAppointment: slot %s on %s is taken (guard)", req.StartTime, req.Date.Format(domain.DateFormat))
			uc.metrics.IncBookingConflict(conflictSourceGuard)
			return ErrSlotNotAvailable
		}

		created, err = uc.create(txCtx, appt)
		return err
	})

	// 8.1. Проверка не выполнилась: не блокируем запись, вставляем без неё
	if errors.Is(err, errGuardUnavailable) {
		uc.logger.Warn("CreateAppointment: conflict guard failed, relying on database constraint: %v", err)
		uc.metrics.IncGuardFailure()
		created, err = uc.create(ctx, appt)
	}

	if err != nil {
		return nil, err
	}

	// 9. Сигнал об изменении доступности
	event := invalidation.Event{
		EstablishmentID: created.EstablishmentID,
		AppointmentID:   created.ID,
		Date:            created.AppointmentDate.Format(domain.DateFormat),
		Reason:          invalidation.ReasonCreated,
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish invalidation for appointment id=%s: %v", created.ID, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", created.ID)

	return &Response{
		ID:              created.ID,
		EstablishmentID: created.EstablishmentID,
		ClientID:        created.ClientID,
		StaffID:         created.StaffID,
		ServiceIDs:      created.ServiceIDs,
		AppointmentDate: created.AppointmentDate,
		StartTime:       created.StartTime,
		EndTime:         endTime,
		DurationMinutes: duration,
		TotalPrice:      created.TotalPrice,
		Status:          string(created.Status),
		Notes:           created.Notes,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}

// create сохраняет запись, нарушение ограничения БД означает занятый слот
func (uc *UseCase) create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	created, err := uc.appointmentRepo.Create(ctx, appt)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateAppointment: slot %s is taken (constraint)", appt.StartTime)
			uc.metrics.IncBookingConflict(conflictSourceConstraint)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}
	return created, nil
}

func inRoster(roster []*domain.StaffMember, staffID uuid.UUID) bool {
	for _, m := range roster {
		if m.ID == staffID {
			return true
		}
	}
	return false
}
