package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/invalidation"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	establishmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/establishment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo   AppointmentRepository
	establishmentRepo EstablishmentRepository
	publisher         InvalidationPublisher
	logger            Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	establishmentRepo EstablishmentRepository,
	publisher InvalidationPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:   appointmentRepo,
		establishmentRepo: establishmentRepo,
		publisher:         publisher,
		logger:            logger,
	}
}

// GetByID получает запись по ID
// Видеть запись может её клиент или владелец заведения
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if appt.ClientID != userID {
		if err := s.checkOwnerAccess(ctx, appt.EstablishmentID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", userID, id)
			return nil, ErrAccessDenied
		}
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appt), nil
}

// GetClientAppointments получает историю записей клиента
// Клиент видит только свои записи
func (s *Service) GetClientAppointments(
	ctx context.Context,
	req *models.GetClientAppointmentsRequest,
) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%s, status=%v", req.ClientID, req.Status)

	if req.RequesterID != req.ClientID {
		s.logger.Warn("GetClientAppointments: user=%s requested appointments of client=%s", req.RequesterID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%s", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%s", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetEstablishmentAppointments получает записи заведения с фильтрацией по дате и статусам
// Доступно только владельцу заведения
func (s *Service) GetEstablishmentAppointments(
	ctx context.Context,
	req *models.GetEstablishmentAppointmentsRequest,
) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetEstablishmentAppointments: fetching appointments for establishment=%s, user=%s, statuses=%v",
		req.EstablishmentID, req.UserID, req.Statuses)

	if err := s.checkOwnerAccess(ctx, req.EstablishmentID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetEstablishmentAppointments: invalid filter for establishment=%s: %v", req.EstablishmentID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByEstablishmentWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetEstablishmentAppointments: repository error for establishment=%s: %v", req.EstablishmentID, err)
		return nil, fmt.Errorf("%w: GetEstablishmentAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEstablishmentAppointments: successfully fetched %d appointments for establishment=%s",
		len(appointments), req.EstablishmentID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Клиент отменяет свою запись, владелец заведения любую запись заведения.
// Отменить можно только ожидающую или подтверждённую запись.
func (s *Service) Cancel(ctx context.Context, appointmentID uuid.UUID, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", appointmentID, req.UserID)

	reason := strings.TrimSpace(req.CancellationReason)
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	appt, err := s.getAppointment(ctx, "Cancel", appointmentID)
	if err != nil {
		return err
	}

	if appt.ClientID != req.UserID {
		if err := s.checkOwnerAccess(ctx, appt.EstablishmentID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%s to cancel appointment id=%s", req.UserID, appointmentID)
			return ErrAccessDenied
		}
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, appt.Status, reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusChanged) {
			s.logger.Warn("Cancel: status of appointment id=%s changed from %s during cancellation", appointmentID, appt.Status)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, appt, invalidation.ReasonCancelled)

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", appointmentID)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только владельцу заведения, переход проверяется по таблице статусов
func (s *Service) UpdateStatus(ctx context.Context, appointmentID uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s by user=%s",
		appointmentID, req.Status, req.UserID)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appt, err := s.getAppointment(ctx, "UpdateStatus", appointmentID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, appt.EstablishmentID, req.UserID); err != nil {
		return err
	}

	if !appt.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%s",
			appt.Status, newStatus, appointmentID)
		return ErrInvalidTransition
	}

	// Отмена через смену статуса тоже проставляет cancelled_at
	if newStatus == domain.StatusCancelled {
		err = s.appointmentRepo.Cancel(ctx, appointmentID, appt.Status, "")
	} else {
		err = s.appointmentRepo.UpdateStatus(ctx, appointmentID, appt.Status, newStatus)
	}
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusChanged) {
			s.logger.Warn("UpdateStatus: status of appointment id=%s changed from %s during update", appointmentID, appt.Status)
			return ErrInvalidTransition
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Освобождение слота меняет доступность, переходы внутри блокирующих статусов нет
	if !newStatus.IsBlocking() {
		s.publish(ctx, appt, invalidation.ReasonStatusChanged)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем заведения
func (s *Service) checkOwnerAccess(ctx context.Context, establishmentID uuid.UUID, userID uuid.UUID) error {
	est, err := s.establishmentRepo.GetByID(ctx, establishmentID)
	if err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			s.logger.Warn("checkOwnerAccess: establishment id=%s not found", establishmentID)
			return ErrEstablishmentNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get establishment id=%s: %v", establishmentID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get establishment: %v", ErrInternal, err)
	}

	if est.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%s is not the owner of establishment=%s", userID, establishmentID)
		return ErrAccessDenied
	}

	return nil
}

// publish отправляет сигнал об изменении доступности, ошибка не прерывает операцию
func (s *Service) publish(ctx context.Context, appt *domain.Appointment, reason string) {
	event := invalidation.Event{
		EstablishmentID: appt.EstablishmentID,
		AppointmentID:   appt.ID,
		Date:            appt.AppointmentDate.Format(domain.DateFormat),
		Reason:          reason,
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish invalidation for appointment id=%s: %v", appt.ID, err)
	}
}
