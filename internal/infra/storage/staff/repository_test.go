package staff

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestRepository_GetActiveByEstablishment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	establishmentID := uuid.New()
	anna, boris := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM staff WHERE establishment_id = $1 AND is_active = $2 ORDER BY name ASC")).
		WithArgs(establishmentID, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "establishment_id", "name", "is_active"}).
			AddRow(anna.String(), establishmentID.String(), "Anna", true).
			AddRow(boris.String(), establishmentID.String(), "Boris", true))

	members, err := repo.GetActiveByEstablishment(context.Background(), establishmentID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, anna, members[0].ID)
	assert.Equal(t, "Boris", members[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetActiveByEstablishment_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err = repo.GetActiveByEstablishment(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_GetSchedules(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	anna, boris := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM staff_schedules WHERE staff_id IN ($1,$2) AND day_of_week = $3")).
		WithArgs(anna, boris, int64(time.Tuesday)).
		WillReturnRows(sqlmock.NewRows([]string{"staff_id", "day_of_week", "start_time", "end_time", "is_available"}).
			AddRow(anna.String(), int64(2), "10:00:00", "14:00:00", true).
			AddRow(boris.String(), int64(2), "09:00:00", "18:00:00", false))

	schedules, err := repo.GetSchedules(context.Background(), []uuid.UUID{anna, boris}, time.Tuesday)
	require.NoError(t, err)
	require.Len(t, schedules, 2)

	assert.Equal(t, types.TimeString("10:00"), schedules[0].StartTime)
	assert.Equal(t, time.Tuesday, schedules[0].DayOfWeek)
	assert.False(t, schedules[1].IsAvailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetSchedules_EmptyRoster(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))

	schedules, err := repo.GetSchedules(context.Background(), nil, time.Monday)
	require.NoError(t, err)

	assert.Empty(t, schedules)
	require.NoError(t, mock.ExpectationsWereMet())
}
