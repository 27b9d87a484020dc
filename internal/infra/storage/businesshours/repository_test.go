package businesshours

import (
	"context"
	"database/sql"
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

var columns = []string{"establishment_id", "day_of_week", "open_time", "close_time", "lunch_start", "lunch_end", "is_closed"}

func TestRepository_GetByEstablishmentAndDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	establishmentID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM business_hours WHERE establishment_id = $1 AND day_of_week = $2")).
		WithArgs(establishmentID, int64(time.Monday)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(establishmentID.String(), int64(1), "09:00:00", "18:00:00", "13:00:00", "14:00:00", false))

	hours, err := repo.GetByEstablishmentAndDay(context.Background(), establishmentID, time.Monday)
	require.NoError(t, err)

	assert.Equal(t, time.Monday, hours.DayOfWeek)
	assert.Equal(t, types.TimeString("09:00"), hours.OpenTime)
	assert.Equal(t, types.TimeString("18:00"), hours.CloseTime)
	require.True(t, hours.HasLunch())
	assert.Equal(t, types.TimeString("13:00"), *hours.LunchStart)
	assert.False(t, hours.IsDefault)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByEstablishmentAndDay_NoLunch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	establishmentID := uuid.New()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(establishmentID.String(), int64(0), "10:00", "16:00", nil, nil, true))

	hours, err := repo.GetByEstablishmentAndDay(context.Background(), establishmentID, time.Sunday)
	require.NoError(t, err)

	assert.False(t, hours.HasLunch())
	assert.True(t, hours.IsClosed)
}

func TestRepository_GetByEstablishmentAndDay_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByEstablishmentAndDay(context.Background(), uuid.New(), time.Friday)
	assert.ErrorIs(t, err, ErrBusinessHoursNotFound)
}
