package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/invalidation"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	establishmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/establishment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointments struct {
	day       []*domain.Appointment
	dayErr    error
	createErr error
	created   []*domain.Appointment
}

func (f *fakeAppointments) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	appt.ID = uuid.New()
	f.created = append(f.created, appt)
	return appt, nil
}

func (f *fakeAppointments) GetDayAppointments(_ context.Context, _ uuid.UUID, _ time.Time, _ []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return f.day, f.dayErr
}

type fakeEstablishments struct {
	establishment *domain.Establishment
	services      []*domain.Service
}

func (f *fakeEstablishments) GetByID(_ context.Context, id uuid.UUID) (*domain.Establishment, error) {
	if f.establishment.ID != id {
		return nil, establishmentRepo.ErrEstablishmentNotFound
	}
	return f.establishment, nil
}

func (f *fakeEstablishments) GetServices(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]*domain.Service, error) {
	return f.services, nil
}

type fakeHours struct {
	hours *domain.BusinessHours
}

func (f *fakeHours) GetEffectiveHours(_ context.Context, _ uuid.UUID, _ time.Weekday) (*domain.BusinessHours, error) {
	return f.hours, nil
}

type fakeStaff struct {
	roster      []*domain.StaffMember
	schedules   []*domain.StaffSchedule
	scheduleErr error
}

func (f *fakeStaff) GetActiveByEstablishment(_ context.Context, _ uuid.UUID) ([]*domain.StaffMember, error) {
	return f.roster, nil
}

func (f *fakeStaff) GetSchedules(_ context.Context, staffIDs []uuid.UUID, day time.Weekday) ([]*domain.StaffSchedule, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	var result []*domain.StaffSchedule
	for _, s := range f.schedules {
		for _, id := range staffIDs {
			if s.StaffID == id && s.DayOfWeek == day {
				result = append(result, s)
			}
		}
	}
	return result, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakePublisher struct {
	events []invalidation.Event
}

func (f *fakePublisher) Publish(_ context.Context, event invalidation.Event) error {
	f.events = append(f.events, event)
	return nil
}

type fakeMetrics struct {
	conflicts     []string
	guardFailures int
}

func (f *fakeMetrics) IncBookingConflict(source string) {
	f.conflicts = append(f.conflicts, source)
}

func (f *fakeMetrics) IncGuardFailure() {
	f.guardFailures++
}

type fixture struct {
	uc        *UseCase
	appts     *fakeAppointments
	est       *fakeEstablishments
	staff     *fakeStaff
	publisher *fakePublisher
	metrics   *fakeMetrics
	anna      *domain.StaffMember
	boris     *domain.StaffMember
	haircut   *domain.Service
}

// 2026-05-04 is a Monday.
var monday = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	lunchStart, lunchEnd := types.TimeString("13:00"), types.TimeString("14:00")
	est := &domain.Establishment{ID: uuid.New(), OwnerID: uuid.New(), IsActive: true}

	f := &fixture{
		appts:     &fakeAppointments{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
		anna:      &domain.StaffMember{ID: uuid.New(), EstablishmentID: est.ID, Name: "Anna", IsActive: true},
		boris:     &domain.StaffMember{ID: uuid.New(), EstablishmentID: est.ID, Name: "Boris", IsActive: true},
		haircut:   &domain.Service{ID: uuid.New(), EstablishmentID: est.ID, DurationMinutes: 30, Price: 1500},
	}
	f.est = &fakeEstablishments{establishment: est, services: []*domain.Service{f.haircut}}
	f.staff = &fakeStaff{roster: []*domain.StaffMember{f.anna, f.boris}}

	hours := &fakeHours{hours: &domain.BusinessHours{
		EstablishmentID: est.ID,
		DayOfWeek:       time.Monday,
		OpenTime:        "09:00",
		CloseTime:       "18:00",
		LunchStart:      &lunchStart,
		LunchEnd:        &lunchEnd,
	}}

	f.uc = NewUseCase(f.appts, f.est, hours, f.staff, &fakeTxManager{}, f.publisher, f.metrics, time.UTC, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: time.Date(2026, 5, 3, 12, 0, 0, 0, time.UTC)}
	return f
}

func (f *fixture) request(start string, staff *domain.StaffMember) *Request {
	req := &Request{
		ClientID:        uuid.New(),
		EstablishmentID: f.est.establishment.ID,
		ServiceIDs:      []uuid.UUID{f.haircut.ID},
		Date:            monday,
		StartTime:       types.TimeString(start),
	}
	if staff != nil {
		req.StaffID = &staff.ID
	}
	return req
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), f.request("10:00", f.anna))
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, 1500.0, resp.TotalPrice)
	require.Len(t, f.appts.created, 1)
	assert.Equal(t, f.anna.ID, *f.appts.created[0].StaffID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, invalidation.Event{
		EstablishmentID: f.est.establishment.ID,
		AppointmentID:   resp.ID,
		Date:            "2026-05-04",
		Reason:          invalidation.ReasonCreated,
	}, f.publisher.events[0])
	assert.Empty(t, f.metrics.conflicts)
}

func TestExecute_NoServicesUsesDefaultDuration(t *testing.T) {
	f := newFixture()
	f.est.services = nil
	req := f.request("10:00", nil)
	req.ServiceIDs = nil

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, 0.0, resp.TotalPrice)
}

func TestExecute_GuardConflict(t *testing.T) {
	anna := func(f *fixture) *domain.StaffMember { return f.anna }
	boris := func(f *fixture) *domain.StaffMember { return f.boris }
	nobody := func(f *fixture) *domain.StaffMember { return nil }

	tests := []struct {
		name      string
		existing  domain.Appointment
		bookedFor func(f *fixture) *domain.StaffMember
		requested func(f *fixture) *domain.StaffMember
		conflict  bool
	}{
		{
			name:      "same staff",
			existing:  domain.Appointment{StartTime: "10:15", DurationMinutes: ptr.Ptr(30)},
			bookedFor: anna,
			requested: anna,
			conflict:  true,
		},
		{
			name:      "other staff",
			existing:  domain.Appointment{StartTime: "10:15", DurationMinutes: ptr.Ptr(30)},
			bookedFor: boris,
			requested: anna,
		},
		{
			name:      "touching end",
			existing:  domain.Appointment{StartTime: "09:30", EndTime: ptr.Ptr(types.TimeString("10:00"))},
			bookedFor: anna,
			requested: anna,
		},
		{
			name:      "no staff requested",
			existing:  domain.Appointment{StartTime: "10:00"},
			bookedFor: boris,
			requested: nobody,
			conflict:  true,
		},
		{
			name:      "unassigned appointment",
			existing:  domain.Appointment{StartTime: "10:00"},
			bookedFor: nobody,
			requested: boris,
			conflict:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			existing := tt.existing
			existing.ID = uuid.New()
			if member := tt.bookedFor(f); member != nil {
				existing.StaffID = &member.ID
			}
			f.appts.day = []*domain.Appointment{&existing}

			_, err := f.uc.Execute(context.Background(), f.request("10:00", tt.requested(f)))

			if tt.conflict {
				assert.ErrorIs(t, err, ErrSlotNotAvailable)
				assert.Empty(t, f.appts.created)
				assert.Empty(t, f.publisher.events)
				assert.Equal(t, []string{"guard"}, f.metrics.conflicts)
				return
			}
			require.NoError(t, err)
			assert.Len(t, f.appts.created, 1)
		})
	}
}

func TestExecute_ConstraintIsFinalArbiter(t *testing.T) {
	f := newFixture()
	f.appts.createErr = appointmentRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), f.request("10:00", f.anna))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, []string{"constraint"}, f.metrics.conflicts)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_GuardFailureIsFailOpen(t *testing.T) {
	f := newFixture()
	f.appts.dayErr = errors.New("read timeout")

	resp, err := f.uc.Execute(context.Background(), f.request("10:00", f.anna))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Len(t, f.appts.created, 1)
	assert.Equal(t, 1, f.metrics.guardFailures)
	assert.Empty(t, f.metrics.conflicts)
}

func TestExecute_GuardFailureThenConstraint(t *testing.T) {
	f := newFixture()
	f.appts.dayErr = errors.New("read timeout")
	f.appts.createErr = appointmentRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), f.request("10:00", f.anna))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.guardFailures)
	assert.Equal(t, []string{"constraint"}, f.metrics.conflicts)
}

func TestExecute_TimeRules(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		now     time.Time
		date    time.Time
		wantErr error
	}{
		{name: "past date", start: "10:00", now: monday.Add(24 * time.Hour), date: monday, wantErr: ErrInvalidDate},
		{name: "inside buffer", start: "10:15", now: monday.Add(10*time.Hour + 5*time.Minute), date: monday, wantErr: ErrTooLateToBook},
		{name: "after buffer", start: "10:30", now: monday.Add(10*time.Hour + 5*time.Minute), date: monday},
		{name: "before opening", start: "08:30", date: monday, wantErr: ErrOutsideBusinessHours},
		{name: "ends after closing", start: "17:45", date: monday, wantErr: ErrOutsideBusinessHours},
		{name: "ends at closing", start: "17:30", date: monday},
		{name: "overlaps lunch", start: "12:45", date: monday, wantErr: ErrOutsideBusinessHours},
		{name: "right after lunch", start: "14:00", date: monday},
		{name: "malformed time", start: "9:00", date: monday, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if !tt.now.IsZero() {
				f.uc.timeProvider = fixedTime{now: tt.now}
			}
			req := f.request(tt.start, nil)
			req.Date = tt.date

			_, err := f.uc.Execute(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExecute_StaffSchedule(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		available bool
		from, to  types.TimeString
		wantErr   error
	}{
		{name: "day off", start: "10:00", available: false, from: "09:00", to: "18:00", wantErr: ErrStaffUnavailable},
		{name: "before shift", start: "10:00", available: true, from: "12:00", to: "16:00", wantErr: ErrStaffUnavailable},
		{name: "ends after shift", start: "15:45", available: true, from: "12:00", to: "16:00", wantErr: ErrStaffUnavailable},
		{name: "ends at shift end", start: "15:30", available: true, from: "12:00", to: "16:00"},
		{name: "shift wider than business hours", start: "17:45", available: true, from: "08:00", to: "20:00", wantErr: ErrOutsideBusinessHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.staff.schedules = []*domain.StaffSchedule{{
				StaffID:     f.anna.ID,
				DayOfWeek:   time.Monday,
				StartTime:   tt.from,
				EndTime:     tt.to,
				IsAvailable: tt.available,
			}}

			_, err := f.uc.Execute(context.Background(), f.request(tt.start, f.anna))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.appts.created)
				assert.Empty(t, f.publisher.events)
				return
			}
			require.NoError(t, err)
			assert.Len(t, f.appts.created, 1)
		})
	}
}

func TestExecute_StaffScheduleOnlyForRequestedStaff(t *testing.T) {
	f := newFixture()
	f.staff.schedules = []*domain.StaffSchedule{{
		StaffID: f.boris.ID, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "18:00", IsAvailable: false,
	}}

	_, err := f.uc.Execute(context.Background(), f.request("17:30", f.anna))
	require.NoError(t, err)

	f.staff.scheduleErr = errors.New("connection reset")
	_, err = f.uc.Execute(context.Background(), f.request("11:00", f.anna))
	assert.ErrorIs(t, err, ErrInternal)

	_, err = f.uc.Execute(context.Background(), f.request("11:00", nil))
	assert.NoError(t, err)
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture()
	f.uc.hoursProvider.(*fakeHours).hours.IsClosed = true

	_, err := f.uc.Execute(context.Background(), f.request("10:00", nil))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_LookupErrors(t *testing.T) {
	t.Run("unknown staff", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(context.Background(), f.request("10:00", &domain.StaffMember{ID: uuid.New()}))
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		f := newFixture()
		req := f.request("10:00", nil)
		req.ServiceIDs = append(req.ServiceIDs, uuid.New())

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("unknown establishment", func(t *testing.T) {
		f := newFixture()
		req := f.request("10:00", nil)
		req.EstablishmentID = uuid.New()

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrEstablishmentNotFound)
	})

	t.Run("notes too long", func(t *testing.T) {
		f := newFixture()
		req := f.request("10:00", nil)
		long := make([]rune, domain.MaxNotesLength+1)
		for i := range long {
			long[i] = 'я'
		}
		req.Notes = ptr.Ptr(string(long))

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
