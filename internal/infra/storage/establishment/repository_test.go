package establishment

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

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_List_ByCategory(t *testing.T) {
	repo, mock := newRepo(t)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM establishments WHERE is_active = $1 AND category = $2 ORDER BY rating DESC, name ASC")).
		WithArgs(true, "barbershop").
		WillReturnRows(sqlmock.NewRows(establishmentColumns).
			AddRow(id.String(), owner.String(), "Fade Lab", "barbershop", "Main st. 1", []byte("4.80"), true, time.Now()))

	list, err := repo.List(context.Background(), domain.EstablishmentsFilter{Category: ptr.Ptr("barbershop")})
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, owner, list[0].OwnerID)
	assert.InDelta(t, 4.8, list[0].Rating, 0.0001)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM establishments WHERE id = $1 AND is_active = $2")).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEstablishmentNotFound)
}

func TestRepository_GetServices(t *testing.T) {
	repo, mock := newRepo(t)
	establishmentID, haircut, beard := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM services WHERE establishment_id = $1 AND id IN ($2,$3)")).
		WithArgs(establishmentID, haircut, beard).
		WillReturnRows(sqlmock.NewRows([]string{"id", "establishment_id", "name", "duration_minutes", "price"}).
			AddRow(haircut.String(), establishmentID.String(), "Haircut", int64(45), []byte("1500.00")).
			AddRow(beard.String(), establishmentID.String(), "Beard", int64(0), []byte("500.00")))

	services, err := repo.GetServices(context.Background(), establishmentID, []uuid.UUID{haircut, beard})
	require.NoError(t, err)
	require.Len(t, services, 2)

	assert.Equal(t, 45, services[0].DurationMinutes)
	assert.InDelta(t, 500.0, services[1].Price, 0.0001)
	require.NoError(t, mock.ExpectationsWereMet())
}
