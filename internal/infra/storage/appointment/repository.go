package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие, что слот уже занят
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

var appointmentColumns = []string{
	"id",
	"establishment_id",
	"client_id",
	"staff_id",
	"service_ids",
	"appointment_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"total_price",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если ID не задан, генерирует его. Если в контексте есть транзакция, использует её.
// Нарушение exclusion/unique ограничения возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"establishment_id",
			"client_id",
			"staff_id",
			"service_ids",
			"appointment_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"total_price",
			"status",
			"notes",
		).
		Values(
			appt.ID,
			appt.EstablishmentID,
			appt.ClientID,
			appt.StaffID,
			pq.Array(appt.ServiceIDs),
			appt.AppointmentDate,
			appt.StartTime,
			appt.EndTime,
			appt.DurationMinutes,
			appt.TotalPrice,
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&appt.CreatedAt, &appt.UpdatedAt)
	if err != nil {
		if isSlotTaken(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByClientID получает историю записей клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("appointment_date DESC", "start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.query(ctx, "GetByClientID", selectBuilder)
}

// GetDayAppointments получает записи заведения на дату с указанными статусами
// Вызывающий код передаёт блокирующие статусы, репозиторий не решает, что блокирует слот
func (r *Repository) GetDayAppointments(
	ctx context.Context,
	establishmentID uuid.UUID,
	date time.Time,
	statuses []domain.AppointmentStatus,
) ([]*domain.Appointment, error) {
	return r.GetByEstablishmentWithFilter(ctx, domain.EstablishmentAppointmentsFilter{
		EstablishmentID: establishmentID,
		Date:            &date,
		Statuses:        statuses,
	})
}

// GetByEstablishmentWithFilter получает записи заведения с фильтрацией по дате и статусам
func (r *Repository) GetByEstablishmentWithFilter(
	ctx context.Context,
	filter domain.EstablishmentAppointmentsFilter,
) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"establishment_id": filter.EstablishmentID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"appointment_date": filter.Date.Format(domain.DateFormat)}).
			OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC", "start_time DESC")
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	return r.query(ctx, "GetByEstablishmentWithFilter", selectBuilder)
}

// UpdateStatus переводит запись из статуса from в status
// Если статус уже изменился, возвращает ErrStatusChanged.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, status domain.AppointmentStatus) error {
	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "UpdateStatus", query, args)
}

// Cancel отменяет запись в статусе from с указанием причины
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, from domain.AppointmentStatus, reason string) error {
	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "Cancel", query, args)
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return appointments, nil
}

func (r *Repository) execSingle(ctx context.Context, op string, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	// Записи не удаляются, поэтому ноль строк значит, что статус успели сменить
	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.EstablishmentID,
		&appt.ClientID,
		&appt.StaffID,
		pq.Array(&appt.ServiceIDs),
		&appt.AppointmentDate,
		&appt.StartTime,
		&appt.EndTime,
		&appt.DurationMinutes,
		&appt.TotalPrice,
		&appt.Status,
		&appt.Notes,
		&appt.CancellationReason,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// isSlotTaken проверяет, что ошибка вызвана ограничением на пересечение записей
func isSlotTaken(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgExclusionViolation || pqErr.Code == pgUniqueViolation
	}
	return false
}
