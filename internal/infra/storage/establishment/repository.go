package establishment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var establishmentColumns = []string{
	"id",
	"owner_id",
	"name",
	"category",
	"address",
	"rating",
	"is_active",
	"created_at",
}

// Repository репозиторий для работы с заведениями и их услугами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заведений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает активные заведения, опционально по категории
func (r *Repository) List(ctx context.Context, filter domain.EstablishmentsFilter) ([]*domain.Establishment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(establishmentColumns...).
		From("establishments").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("rating DESC", "name ASC")

	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	establishments := make([]*domain.Establishment, 0)
	for rows.Next() {
		est, err := scanEstablishment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		establishments = append(establishments, est)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return establishments, nil
}

// GetByID получает активное заведение по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Establishment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(establishmentColumns...).
		From("establishments").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	est, err := scanEstablishment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEstablishmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan establishment: %v", ErrScanRow, err)
	}

	return est, nil
}

// GetServices получает услуги заведения по списку ID
// Неизвестные ID просто отсутствуют в результате, сверку выполняет вызывающий код
func (r *Repository) GetServices(ctx context.Context, establishmentID uuid.UUID, ids []uuid.UUID) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "establishment_id", "name", "duration_minutes", "price").
		From("services").
		Where(squirrel.Eq{"establishment_id": establishmentID}).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0, len(ids))
	for rows.Next() {
		var service domain.Service
		err := rows.Scan(
			&service.ID,
			&service.EstablishmentID,
			&service.Name,
			&service.DurationMinutes,
			&service.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEstablishment(row rowScanner) (*domain.Establishment, error) {
	var est domain.Establishment
	var createdAt sql.NullTime

	err := row.Scan(
		&est.ID,
		&est.OwnerID,
		&est.Name,
		&est.Category,
		&est.Address,
		&est.Rating,
		&est.IsActive,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	est.CreatedAt = createdAt.Time

	return &est, nil
}
