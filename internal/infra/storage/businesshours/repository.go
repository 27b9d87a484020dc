package businesshours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с часами работы заведений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория часов работы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEstablishmentAndDay получает часы работы заведения на день недели
// Если строки нет, возвращает ErrBusinessHoursNotFound. Подстановка значений по умолчанию остаётся за сервисом.
func (r *Repository) GetByEstablishmentAndDay(
	ctx context.Context,
	establishmentID uuid.UUID,
	day time.Weekday,
) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"establishment_id",
		"day_of_week",
		"open_time",
		"close_time",
		"lunch_start",
		"lunch_end",
		"is_closed",
	).
		From("business_hours").
		Where(squirrel.Eq{"establishment_id": establishmentID}).
		Where(squirrel.Eq{"day_of_week": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEstablishmentAndDay - build select query: %v", ErrBuildQuery, err)
	}

	var hours domain.BusinessHours
	var dayOfWeek int

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.EstablishmentID,
		&dayOfWeek,
		&hours.OpenTime,
		&hours.CloseTime,
		&hours.LunchStart,
		&hours.LunchEnd,
		&hours.IsClosed,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEstablishmentAndDay - scan business hours: %v", ErrScanRow, err)
	}

	hours.DayOfWeek = time.Weekday(dayOfWeek)

	return &hours, nil
}
