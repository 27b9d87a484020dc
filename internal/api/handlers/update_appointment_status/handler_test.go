package update_appointment_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	gotReq *models.UpdateStatusRequest
	err    error
}

func (f *fakeService) UpdateStatus(_ context.Context, _ uuid.UUID, req *models.UpdateStatusRequest) error {
	f.gotReq = req
	return f.err
}

func serve(svc AppointmentService, appointmentID string, userID *uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+appointmentID+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"appointmentId": appointmentID})
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	ownerID, appointmentID := uuid.New(), uuid.New()

	t.Run("ok", func(t *testing.T) {
		svc := &fakeService{}
		rec := serve(svc, appointmentID.String(), &ownerID, `{"status":"confirmed"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, &models.UpdateStatusRequest{UserID: ownerID, Status: "confirmed"}, svc.gotReq)
	})

	valid := `{"status":"arrived"}`
	tests := []struct {
		name       string
		id         string
		userID     *uuid.UUID
		body       string
		err        error
		wantStatus int
	}{
		{name: "invalid id", id: "x", userID: &ownerID, body: valid, wantStatus: http.StatusBadRequest},
		{name: "no user", id: appointmentID.String(), body: valid, wantStatus: http.StatusUnauthorized},
		{name: "empty body", id: appointmentID.String(), userID: &ownerID, wantStatus: http.StatusBadRequest},
		{name: "invalid status", id: appointmentID.String(), userID: &ownerID, body: `{"status":"done"}`, err: appointments.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", id: appointmentID.String(), userID: &ownerID, body: valid, err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "establishment gone", id: appointmentID.String(), userID: &ownerID, body: valid, err: appointments.ErrEstablishmentNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", id: appointmentID.String(), userID: &ownerID, body: valid, err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "bad transition", id: appointmentID.String(), userID: &ownerID, body: valid, err: appointments.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "internal", id: appointmentID.String(), userID: &ownerID, body: valid, err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.id, tt.userID, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
