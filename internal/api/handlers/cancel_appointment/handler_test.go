package cancel_appointment

import (
	"context"
	"io"
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
	gotID  uuid.UUID
	gotReq *models.CancelAppointmentRequest
	err    error
}

func (f *fakeService) Cancel(_ context.Context, id uuid.UUID, req *models.CancelAppointmentRequest) error {
	f.gotID = id
	f.gotReq = req
	return f.err
}

func serve(svc AppointmentService, appointmentID string, userID *uuid.UUID, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+appointmentID+"/cancel", reader)
	req = mux.SetURLVars(req, map[string]string{"appointmentId": appointmentID})
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	userID, appointmentID := uuid.New(), uuid.New()

	t.Run("with reason", func(t *testing.T) {
		svc := &fakeService{}
		rec := serve(svc, appointmentID.String(), &userID, `{"cancellationReason":"заболел"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, appointmentID, svc.gotID)
		assert.Equal(t, userID, svc.gotReq.UserID)
		assert.Equal(t, "заболел", svc.gotReq.CancellationReason)
	})

	t.Run("without body", func(t *testing.T) {
		svc := &fakeService{}
		rec := serve(svc, appointmentID.String(), &userID, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, svc.gotReq.CancellationReason)
	})
}

func TestHandle_Errors(t *testing.T) {
	userID, appointmentID := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		id         string
		userID     *uuid.UUID
		body       string
		err        error
		wantStatus int
	}{
		{name: "invalid id", id: "x", userID: &userID, wantStatus: http.StatusBadRequest},
		{name: "no user", id: appointmentID.String(), wantStatus: http.StatusUnauthorized},
		{name: "malformed body", id: appointmentID.String(), userID: &userID, body: `{"cancellationReason":`, wantStatus: http.StatusBadRequest},
		{name: "not found", id: appointmentID.String(), userID: &userID, err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", id: appointmentID.String(), userID: &userID, err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "cannot cancel", id: appointmentID.String(), userID: &userID, err: appointments.ErrCannotCancel, wantStatus: http.StatusBadRequest},
		{name: "reason too long", id: appointmentID.String(), userID: &userID, err: appointments.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", id: appointmentID.String(), userID: &userID, err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.id, tt.userID, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
