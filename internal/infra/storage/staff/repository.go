package staff

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с сотрудниками и их графиками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByEstablishment получает активных сотрудников заведения
// Пустой список означает, что заведение работает без персонала (только владелец)
func (r *Repository) GetActiveByEstablishment(ctx context.Context, establishmentID uuid.UUID) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "establishment_id", "name", "is_active").
		From("staff").
		Where(squirrel.Eq{"establishment_id": establishmentID}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByEstablishment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByEstablishment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.StaffMember, 0)
	for rows.Next() {
		var member domain.StaffMember
		if err := rows.Scan(&member.ID, &member.EstablishmentID, &member.Name, &member.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetActiveByEstablishment - scan row: %v", ErrScanRow, err)
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByEstablishment - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}

// GetSchedules получает графики сотрудников на день недели
// Сотрудник без строки графика работает в часы заведения, это решает вызывающий код
func (r *Repository) GetSchedules(ctx context.Context, staffIDs []uuid.UUID, day time.Weekday) ([]*domain.StaffSchedule, error) {
	if len(staffIDs) == 0 {
		return []*domain.StaffSchedule{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_id", "day_of_week", "start_time", "end_time", "is_available").
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(squirrel.Eq{"day_of_week": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.StaffSchedule, 0, len(staffIDs))
	for rows.Next() {
		var schedule domain.StaffSchedule
		var dayOfWeek int

		err := rows.Scan(
			&schedule.StaffID,
			&dayOfWeek,
			&schedule.StartTime,
			&schedule.EndTime,
			&schedule.IsAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSchedules - scan row: %v", ErrScanRow, err)
		}

		schedule.DayOfWeek = time.Weekday(dayOfWeek)
		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}
