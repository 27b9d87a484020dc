package establishments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessHoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/businesshours"
	establishmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/establishment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/establishments/models"
)

// Service сервис каталога заведений и их часов работы
type Service struct {
	establishmentRepo EstablishmentRepository
	hoursRepo         BusinessHoursRepository
	cache             ListCache
	logger            Logger
}

// NewService создает новый экземпляр сервиса заведений
func NewService(
	establishmentRepo EstablishmentRepository,
	hoursRepo BusinessHoursRepository,
	cache ListCache,
	logger Logger,
) *Service {
	return &Service{
		establishmentRepo: establishmentRepo,
		hoursRepo:         hoursRepo,
		cache:             cache,
		logger:            logger,
	}
}

// List получает список активных заведений
// Сначала читает кэш. Ошибки кэша не прерывают запрос, список берётся из БД.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.EstablishmentListResponse, error) {
	filter := domain.EstablishmentsFilter{Category: req.Category}

	cached, ok, err := s.cache.Get(ctx, filter)
	if err != nil {
		s.logger.Warn("List: cache read failed, falling back to database: %v", err)
	}
	if ok {
		s.logger.Info("List: cache hit, count=%d", len(cached))
		return models.FromDomainEstablishmentList(cached), nil
	}

	list, err := s.establishmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.Set(ctx, filter, list); err != nil {
		s.logger.Warn("List: cache write failed: %v", err)
	}

	s.logger.Info("List: successfully fetched %d establishments", len(list))
	return models.FromDomainEstablishmentList(list), nil
}

// GetBusinessHours возвращает действующие часы работы заведения на дату
func (s *Service) GetBusinessHours(
	ctx context.Context,
	establishmentID uuid.UUID,
	date time.Time,
) (*models.BusinessHoursResponse, error) {
	s.logger.Info("GetBusinessHours: establishment=%s, date=%s", establishmentID, date.Format(domain.DateFormat))

	if _, err := s.establishmentRepo.GetByID(ctx, establishmentID); err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			s.logger.Warn("GetBusinessHours: establishment id=%s not found", establishmentID)
			return nil, ErrEstablishmentNotFound
		}
		s.logger.Error("GetBusinessHours: failed to get establishment id=%s: %v", establishmentID, err)
		return nil, fmt.Errorf("%w: GetBusinessHours - failed to get establishment: %v", ErrInternal, err)
	}

	hours, err := s.GetEffectiveHours(ctx, establishmentID, date.Weekday())
	if err != nil {
		return nil, err
	}

	return models.FromDomainBusinessHours(hours, date), nil
}

// GetEffectiveHours возвращает часы работы на день недели
// Если строки нет, используются часы по умолчанию (09:00-18:00 без обеда)
func (s *Service) GetEffectiveHours(
	ctx context.Context,
	establishmentID uuid.UUID,
	day time.Weekday,
) (*domain.BusinessHours, error) {
	hours, err := s.hoursRepo.GetByEstablishmentAndDay(ctx, establishmentID, day)
	if errors.Is(err, businessHoursRepo.ErrBusinessHoursNotFound) {
		s.logger.Info("GetEffectiveHours: no hours for establishment=%s day=%s, using default", establishmentID, day)
		return domain.DefaultBusinessHours(establishmentID, day), nil
	}
	if err != nil {
		s.logger.Error("GetEffectiveHours: repository error for establishment=%s: %v", establishmentID, err)
		return nil, fmt.Errorf("%w: GetEffectiveHours - repository error: %v", ErrInternal, err)
	}

	return hours, nil
}
