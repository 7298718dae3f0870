//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/pkg/clock"
	"telescope-scheduler/internal/usecase/commands"
	"telescope-scheduler/internal/usecase/shared"
	"telescope-scheduler/tests/common/uowtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store       *uowtest.Store
	pub         *uowtest.Publisher
	clock       *clock.MockClock
	cmds        commands.AppointmentCommands
	userID      uuid.UUID
	telescopeID uuid.UUID
	actor       user.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := uowtest.NewStore()
	capTime := 50 * time.Hour
	userID := st.AddUser(user.RoleResearcher, &capTime)

	pub := &uowtest.Publisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	clk := clock.NewMockClock(now)
	return &fixture{
		store:       st,
		pub:         pub,
		clock:       clk,
		cmds:        commands.NewAppointmentUseCase(uowtest.NewUoW(st), &uowtest.AuditLogs{Store: st}, pub, clk),
		userID:      userID,
		telescopeID: st.AddTelescope(),
		actor:       user.Actor{UserID: userID, Role: user.RoleResearcher},
	}
}

func (f *fixture) request(start time.Time, d time.Duration) commands.CreateAppointmentRequest {
	return commands.CreateAppointmentRequest{
		UserID:      f.userID,
		TelescopeID: f.telescopeID,
		Start:       start,
		End:         start.Add(d),
		IsPublic:    true,
		Priority:    appointment.PriorityPrimary,
		Type:        appointment.TypePoint,
		Payload: appointment.PointPayload{
			Coordinate: appointment.Coordinate{Hours: 5, Minutes: 35, Seconds: 17, Declination: -5.39},
		},
	}
}

func (f *fixture) lastLog(t *testing.T) shared.AuditEntry {
	t.Helper()
	require.NotEmpty(t, f.store.Logs)
	return f.store.Logs[len(f.store.Logs)-1]
}

func assertTag(t *testing.T, err error, tag appointment.ErrorTag) {
	t.Helper()
	require.Error(t, err)
	verr, ok := appointment.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.True(t, verr.Errors.Has(tag), "expected %s in %v", tag, verr.Errors.Tags())
}

func TestAppointmentUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success: stored as scheduled with audit row", func(t *testing.T) {
		f := newFixture(t)

		id, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), 2*time.Hour))
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		stored := f.store.Get(id)
		require.NotNil(t, stored)
		assert.Equal(t, appointment.StatusScheduled, stored.Status())

		require.Len(t, f.store.Logs, 1)
		entry := f.store.Logs[0]
		assert.True(t, entry.Success)
		assert.Equal(t, shared.AuditActionCreate, entry.Action)
		assert.Equal(t, shared.AuditTableAppointment, entry.AffectedTable)
		assert.Equal(t, "SCHEDULED", entry.Event)
		require.NotNil(t, entry.RecordID)
		assert.Equal(t, id, *entry.RecordID)
		require.NotNil(t, entry.UserID)
		assert.Equal(t, f.userID, *entry.UserID)
		assert.Equal(t, now, entry.Timestamp)

		assert.Equal(t, []string{"user:" + f.userID.String(), "telescope:" + f.telescopeID.String()}, f.store.Locks)
		f.pub.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("error: overlap leaves nothing stored", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), 2*time.Hour))
		require.NoError(t, err)

		_, err = f.cmds.Create(ctx, f.actor, f.request(now.Add(2*time.Hour), 2*time.Hour))
		assertTag(t, err, appointment.TagOverlap)
		assert.Len(t, f.store.Appointments, 1)

		entry := f.lastLog(t)
		assert.False(t, entry.Success)
		assert.Nil(t, entry.RecordID)
		assert.Equal(t, []string{"OVERLAP"}, entry.ErrorTags)
	})

	t.Run("success: back to back windows do not overlap", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.NoError(t, err)
		_, err = f.cmds.Create(ctx, f.actor, f.request(now.Add(2*time.Hour), time.Hour))
		require.NoError(t, err)
		assert.Len(t, f.store.Appointments, 2)
	})

	t.Run("error: pending request blocks the slot", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.cmds.Request(ctx, f.actor, f.request(now.Add(time.Hour), 2*time.Hour))
		require.NoError(t, err)

		_, err = f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		assertTag(t, err, appointment.TagOverlap)
	})

	t.Run("error: no approved category", func(t *testing.T) {
		f := newFixture(t)
		f.userID = f.store.AddUser("", nil)

		_, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		assertTag(t, err, appointment.TagCategoryOfService)
		assert.Empty(t, f.store.Appointments)
		assert.Equal(t, []string{"CATEGORY_OF_SERVICE"}, f.lastLog(t).ErrorTags)
	})

	t.Run("error: unknown user and telescope are both reported", func(t *testing.T) {
		f := newFixture(t)
		f.userID = uuid.New()
		f.telescopeID = uuid.New()

		_, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		assertTag(t, err, appointment.TagUserID)
		assertTag(t, err, appointment.TagTelescopeID)
		assert.Equal(t, []string{"TELESCOPE_ID", "USER_ID"}, f.lastLog(t).ErrorTags)
	})

	t.Run("error: exceeds remaining allotted time", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), 40*time.Hour))
		require.NoError(t, err)

		_, err = f.cmds.Create(ctx, f.actor, f.request(now.Add(50*time.Hour), 11*time.Hour))
		assertTag(t, err, appointment.TagAllottedTime)
	})

	t.Run("error: start time in the past", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(-time.Hour), 2*time.Hour))
		assertTag(t, err, appointment.TagStartTime)
	})

	t.Run("error: storage failure is tagged internal", func(t *testing.T) {
		f := newFixture(t)
		f.store.FailWrites = errors.New("connection reset")

		_, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.Error(t, err)
		_, isValidation := appointment.AsValidation(err)
		assert.False(t, isValidation)
		assert.Equal(t, []string{"INTERNAL"}, f.lastLog(t).ErrorTags)
	})

	t.Run("success: publisher failure does not fail the command", func(t *testing.T) {
		f := newFixture(t)
		pub := &uowtest.Publisher{}
		pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
		cmds := commands.NewAppointmentUseCase(uowtest.NewUoW(f.store), &uowtest.AuditLogs{Store: f.store}, pub, f.clock)

		id, err := cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.NoError(t, err)
		assert.NotNil(t, f.store.Get(id))
		pub.AssertNumberOfCalls(t, "Publish", 1)
	})
}

func TestAppointmentUseCase_RequestAndApprove(t *testing.T) {
	ctx := context.Background()
	admin := user.Actor{UserID: uuid.New(), Role: user.RoleAdmin}

	t.Run("success: request then approve", func(t *testing.T) {
		f := newFixture(t)

		id, err := f.cmds.Request(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusRequested, f.store.Get(id).Status())
		assert.Equal(t, "REQUESTED", f.lastLog(t).Event)

		require.NoError(t, f.cmds.Approve(ctx, admin, id))
		assert.Equal(t, appointment.StatusScheduled, f.store.Get(id).Status())

		entry := f.lastLog(t)
		assert.True(t, entry.Success)
		assert.Equal(t, "approve", entry.Event)
		assert.Equal(t, shared.AuditActionUpdate, entry.Action)
		assert.Equal(t, admin.UserID, *entry.UserID)
	})

	t.Run("error: approve conflicts with an overlapping request until it is denied", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.cmds.Request(ctx, f.actor, f.request(now.Add(time.Hour), 2*time.Hour))
		require.NoError(t, err)
		second, err := f.cmds.Request(ctx, f.actor, f.request(now.Add(2*time.Hour), 2*time.Hour))
		require.NoError(t, err)

		err = f.cmds.Approve(ctx, admin, first)
		assertTag(t, err, appointment.TagOverlap)
		assert.Equal(t, appointment.StatusRequested, f.store.Get(first).Status())
		assert.Equal(t, []string{"OVERLAP"}, f.lastLog(t).ErrorTags)

		require.NoError(t, f.cmds.Deny(ctx, admin, second))
		assert.Equal(t, appointment.StatusCanceled, f.store.Get(second).Status())

		require.NoError(t, f.cmds.Approve(ctx, admin, first))
		assert.Equal(t, appointment.StatusScheduled, f.store.Get(first).Status())
	})

	t.Run("error: approve twice", func(t *testing.T) {
		f := newFixture(t)

		id, err := f.cmds.Request(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.NoError(t, err)
		require.NoError(t, f.cmds.Approve(ctx, admin, id))

		assertTag(t, f.cmds.Approve(ctx, admin, id), appointment.TagStatus)
	})
}

func TestAppointmentUseCase_Lifecycle(t *testing.T) {
	ctx := context.Background()
	admin := user.Actor{UserID: uuid.New(), Role: user.RoleAdmin}

	t.Run("success: start then finish", func(t *testing.T) {
		f := newFixture(t)
		id, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.NoError(t, err)

		f.clock.Add(time.Hour)
		require.NoError(t, f.cmds.Start(ctx, admin, id))
		assert.Equal(t, appointment.StatusInProgress, f.store.Get(id).Status())
		assert.Equal(t, now.Add(time.Hour), f.store.Get(id).UpdatedAt())

		require.NoError(t, f.cmds.Finish(ctx, admin, id))
		assert.Equal(t, appointment.StatusCompleted, f.store.Get(id).Status())
		assert.Equal(t, "finish", f.lastLog(t).Event)

		assertTag(t, f.cmds.Cancel(ctx, admin, id), appointment.TagStatus)
	})

	t.Run("error: start a requested appointment", func(t *testing.T) {
		f := newFixture(t)
		id, err := f.cmds.Request(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.NoError(t, err)

		assertTag(t, f.cmds.Start(ctx, admin, id), appointment.TagStatus)
		assert.Equal(t, appointment.StatusRequested, f.store.Get(id).Status())
	})

	t.Run("success: owner cancels and the slot frees up", func(t *testing.T) {
		f := newFixture(t)
		id, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.NoError(t, err)

		require.NoError(t, f.cmds.Cancel(ctx, f.actor, id))
		assert.Equal(t, appointment.StatusCanceled, f.store.Get(id).Status())

		_, err = f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.NoError(t, err)
	})

	t.Run("error: cancel by someone else", func(t *testing.T) {
		f := newFixture(t)
		id, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.NoError(t, err)

		stranger := user.Actor{UserID: uuid.New(), Role: user.RoleResearcher}
		assertTag(t, f.cmds.Cancel(ctx, stranger, id), appointment.TagUserID)
		assert.Equal(t, appointment.StatusScheduled, f.store.Get(id).Status())
		assert.Equal(t, []string{"USER_ID"}, f.lastLog(t).ErrorTags)
	})

	t.Run("error: make public twice", func(t *testing.T) {
		f := newFixture(t)
		req := f.request(now.Add(time.Hour), time.Hour)
		req.IsPublic = false
		id, err := f.cmds.Create(ctx, f.actor, req)
		require.NoError(t, err)

		require.NoError(t, f.cmds.MakePublic(ctx, f.actor, id))
		assert.True(t, f.store.Get(id).IsPublic())
		assert.Equal(t, "makePublic", f.lastLog(t).Event)

		assertTag(t, f.cmds.MakePublic(ctx, f.actor, id), appointment.TagPublic)
	})

	t.Run("error: unknown appointment", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()

		err := f.cmds.Cancel(ctx, admin, id)
		assertTag(t, err, appointment.TagID)

		verr, _ := appointment.AsValidation(err)
		assert.True(t, verr.IsNotFound())
		assert.Equal(t, id, *f.lastLog(t).RecordID)
	})

	t.Run("error: storage failure rolls back the transition", func(t *testing.T) {
		f := newFixture(t)
		id, err := f.cmds.Create(ctx, f.actor, f.request(now.Add(time.Hour), time.Hour))
		require.NoError(t, err)

		f.store.FailWrites = errors.New("disk full")
		require.Error(t, f.cmds.Cancel(ctx, f.actor, id))
		assert.Equal(t, appointment.StatusScheduled, f.store.Get(id).Status())
		assert.Equal(t, []string{"INTERNAL"}, f.lastLog(t).ErrorTags)
	})
}
