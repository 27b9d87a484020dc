package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		EstablishmentID: req.EstablishmentID,
		Date:            req.Date,
		DurationMinutes: 30,
		StaffID:         req.StaffID,
		Slots:           []types.TimeString{"09:00", "09:30"},
	}, nil
}

func serve(uc GetAvailableSlotsUseCase, establishmentID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/establishments/"+establishmentID+"/available-slots"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"establishmentId": establishmentID})
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	establishmentID, service1, service2, staffID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	uc := &fakeUseCase{}

	rec := serve(uc, establishmentID.String(),
		"?date=2026-05-04&serviceIds="+service1.String()+","+service2.String()+"&staffId="+staffID.String())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, establishmentID, uc.got.EstablishmentID)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), uc.got.Date)
	assert.Equal(t, []uuid.UUID{service1, service2}, uc.got.ServiceIDs)
	require.NotNil(t, uc.got.StaffID)
	assert.Equal(t, staffID, *uc.got.StaffID)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-05-04", body.Date)
	assert.Equal(t, 30, body.DurationMinutes)
	assert.Equal(t, []string{"09:00", "09:30"}, body.Slots)
}

func TestHandle_NoServicesOrStaff(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, uuid.NewString(), "?date=2026-05-04")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, uc.got.ServiceIDs)
	assert.Nil(t, uc.got.StaffID)
}

func TestHandle_Errors(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		name       string
		id         string
		query      string
		err        error
		wantStatus int
	}{
		{name: "invalid establishment id", id: "abc", query: "?date=2026-05-04", wantStatus: http.StatusBadRequest},
		{name: "missing date", id: id, wantStatus: http.StatusBadRequest},
		{name: "malformed date", id: id, query: "?date=2026-5-4", wantStatus: http.StatusBadRequest},
		{name: "malformed service id", id: id, query: "?date=2026-05-04&serviceIds=1,2", wantStatus: http.StatusBadRequest},
		{name: "malformed staff id", id: id, query: "?date=2026-05-04&staffId=7", wantStatus: http.StatusBadRequest},
		{name: "establishment not found", id: id, query: "?date=2026-05-04", err: getAvailableSlots.ErrEstablishmentNotFound, wantStatus: http.StatusNotFound},
		{name: "service not found", id: id, query: "?date=2026-05-04", err: getAvailableSlots.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "staff not found", id: id, query: "?date=2026-05-04", err: getAvailableSlots.ErrStaffNotFound, wantStatus: http.StatusNotFound},
		{name: "past date", id: id, query: "?date=2026-05-04", err: getAvailableSlots.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "invalid input", id: id, query: "?date=2026-05-04", err: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", id: id, query: "?date=2026-05-04", err: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.id, tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestParseUUIDList(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := parseUUIDList(" " + a.String() + " ,," + b.String())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	ids, err = parseUUIDList("")
	require.NoError(t, err)
	assert.Nil(t, ids)
}
