package get_business_hours

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/establishments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/establishments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	gotDate time.Time
	err     error
}

func (f *fakeService) GetBusinessHours(_ context.Context, id uuid.UUID, date time.Time) (*models.BusinessHoursResponse, error) {
	f.gotDate = date
	if f.err != nil {
		return nil, f.err
	}
	return &models.BusinessHoursResponse{
		EstablishmentID: id,
		Date:            date.Format("2006-01-02"),
		DayOfWeek:       date.Weekday().String(),
		OpenTime:        "09:00",
		CloseTime:       "18:00",
		IsDefault:       true,
	}, nil
}

func serve(svc EstablishmentService, establishmentID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/establishments/"+establishmentID+"/business-hours"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"establishmentId": establishmentID})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	id := uuid.New()

	t.Run("default hours", func(t *testing.T) {
		svc := &fakeService{}
		rec := serve(svc, id.String(), "?date=2026-05-04")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), svc.gotDate)

		var body models.BusinessHoursResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Monday", body.DayOfWeek)
		assert.True(t, body.IsDefault)
	})

	tests := []struct {
		name       string
		id         string
		query      string
		err        error
		wantStatus int
	}{
		{name: "invalid id", id: "42", query: "?date=2026-05-04", wantStatus: http.StatusBadRequest},
		{name: "missing date", id: id.String(), wantStatus: http.StatusBadRequest},
		{name: "malformed date", id: id.String(), query: "?date=04.05.2026", wantStatus: http.StatusBadRequest},
		{name: "not found", id: id.String(), query: "?date=2026-05-04", err: establishments.ErrEstablishmentNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", id: id.String(), query: "?date=2026-05-04", err: fmt.Errorf("%w: boom", establishments.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.id, tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
