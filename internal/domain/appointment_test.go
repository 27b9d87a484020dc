package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_IsBlocking(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusArrived, StatusStarted} {
		assert.True(t, s.IsBlocking(), s)
	}
	for _, s := range []AppointmentStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.False(t, s.IsBlocking(), s)
	}
}

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusArrived))
	assert.True(t, StatusStarted.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
}

func TestAppointment_StaffResourceID(t *testing.T) {
	a := &Appointment{}
	assert.Nil(t, a.StaffResourceID())

	id := uuid.New()
	a.StaffID = &id
	assert.Equal(t, id.String(), *a.StaffResourceID())
}

func TestDefaultBusinessHours(t *testing.T) {
	h := DefaultBusinessHours(uuid.New(), 1)
	assert.Equal(t, DefaultOpenTime, h.OpenTime)
	assert.Equal(t, DefaultCloseTime, h.CloseTime)
	assert.True(t, h.IsDefault)
	assert.False(t, h.HasLunch())
}
