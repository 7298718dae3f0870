//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireTag(t *testing.T, err error, tag appointment.ErrorTag) {
	t.Helper()
	verr, ok := appointment.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, []appointment.ErrorTag{tag}, verr.Errors.Tags())
}

func TestLifecycleTransitions(t *testing.T) {
	later := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)

	type transitionCase struct {
		name  string
		event appointment.Event
		from  appointment.Status
		run   func(*appointment.Appointment) error
		want  appointment.Status
	}

	admin := user.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
	statuses := []appointment.Status{
		appointment.StatusRequested,
		appointment.StatusScheduled,
		appointment.StatusInProgress,
		appointment.StatusCompleted,
		appointment.StatusCanceled,
	}

	allowed := []transitionCase{
		{name: "approve", event: appointment.EventApprove, from: appointment.StatusRequested, want: appointment.StatusScheduled,
			run: func(a *appointment.Appointment) error { return a.Approve(nil, later) }},
		{name: "deny", event: appointment.EventDeny, from: appointment.StatusRequested, want: appointment.StatusCanceled,
			run: func(a *appointment.Appointment) error { return a.Deny(later) }},
		{name: "start", event: appointment.EventStart, from: appointment.StatusScheduled, want: appointment.StatusInProgress,
			run: func(a *appointment.Appointment) error { return a.Start(later) }},
		{name: "finish", event: appointment.EventFinish, from: appointment.StatusInProgress, want: appointment.StatusCompleted,
			run: func(a *appointment.Appointment) error { return a.Finish(later) }},
		{name: "cancel requested", event: appointment.EventCancel, from: appointment.StatusRequested, want: appointment.StatusCanceled,
			run: func(a *appointment.Appointment) error { return a.Cancel(admin, later) }},
		{name: "cancel scheduled", event: appointment.EventCancel, from: appointment.StatusScheduled, want: appointment.StatusCanceled,
			run: func(a *appointment.Appointment) error { return a.Cancel(admin, later) }},
	}

	for _, c := range allowed {
		t.Run(c.name+" succeeds", func(t *testing.T) {
			a := builder.NewAppointmentBuilder().BuildReconstructed(uuid.New(), c.from)
			require.NoError(t, c.run(a))
			assert.Equal(t, c.want, a.Status())
			assert.Equal(t, later, a.UpdatedAt())
		})
	}

	for _, c := range allowed {
		for _, from := range statuses {
			legal := false
			for _, other := range allowed {
				if other.event == c.event && other.from == from {
					legal = true
				}
			}
			if legal {
				continue
			}
			t.Run(c.name+" refused from "+from.String(), func(t *testing.T) {
				a := builder.NewAppointmentBuilder().BuildReconstructed(uuid.New(), from)
				requireTag(t, c.run(a), appointment.TagStatus)
				assert.Equal(t, from, a.Status())
			})
		}
	}
}

func TestApprove(t *testing.T) {
	b := builder.NewAppointmentBuilder()
	now := b.Now

	t.Run("conflict refuses and keeps status", func(t *testing.T) {
		a := b.BuildReconstructed(uuid.New(), appointment.StatusRequested)
		existing := b.BuildBooking(b.Start.Add(30*time.Minute), b.End.Add(time.Hour), appointment.StatusScheduled)

		requireTag(t, a.Approve([]appointment.Booking{existing}, now), appointment.TagOverlap)
		assert.Equal(t, appointment.StatusRequested, a.Status())
	})

	t.Run("own booking is not a conflict", func(t *testing.T) {
		a := b.BuildReconstructed(uuid.New(), appointment.StatusRequested)

		require.NoError(t, a.Approve([]appointment.Booking{a.Booking()}, now))
		assert.Equal(t, appointment.StatusScheduled, a.Status())
	})

	t.Run("other telescope is not a conflict", func(t *testing.T) {
		a := b.BuildReconstructed(uuid.New(), appointment.StatusRequested)
		existing := b.BuildBooking(b.Start, b.End, appointment.StatusScheduled)
		existing.TelescopeID = uuid.New()

		require.NoError(t, a.Approve([]appointment.Booking{existing}, now))
	})

	t.Run("status is checked before overlap", func(t *testing.T) {
		a := b.BuildReconstructed(uuid.New(), appointment.StatusScheduled)
		existing := b.BuildBooking(b.Start, b.End, appointment.StatusScheduled)

		requireTag(t, a.Approve([]appointment.Booking{existing}, now), appointment.TagStatus)
	})
}

func TestCancelOwnership(t *testing.T) {
	b := builder.NewAppointmentBuilder()

	t.Run("owner can cancel", func(t *testing.T) {
		a := b.BuildReconstructed(uuid.New(), appointment.StatusScheduled)
		require.NoError(t, a.Cancel(user.Actor{UserID: b.UserID, Role: user.RoleStudent}, b.Now))
		assert.Equal(t, appointment.StatusCanceled, a.Status())
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		a := b.BuildReconstructed(uuid.New(), appointment.StatusScheduled)
		requireTag(t, a.Cancel(user.Actor{UserID: uuid.New(), Role: user.RoleResearcher}, b.Now), appointment.TagUserID)
		assert.Equal(t, appointment.StatusScheduled, a.Status())
	})
}

func TestMakePublic(t *testing.T) {
	b := builder.NewAppointmentBuilder().AsPrivate()
	owner := user.Actor{UserID: b.UserID, Role: user.RoleGuest}

	t.Run("succeeds once", func(t *testing.T) {
		a := b.BuildReconstructed(uuid.New(), appointment.StatusScheduled)

		require.NoError(t, a.MakePublic(owner, b.Now))
		assert.True(t, a.IsPublic())
		assert.Equal(t, appointment.StatusScheduled, a.Status())

		requireTag(t, a.MakePublic(owner, b.Now), appointment.TagPublic)
	})

	t.Run("only scheduled appointments", func(t *testing.T) {
		for _, s := range []appointment.Status{
			appointment.StatusRequested, appointment.StatusInProgress, appointment.StatusCompleted, appointment.StatusCanceled,
		} {
			a := b.BuildReconstructed(uuid.New(), s)
			requireTag(t, a.MakePublic(owner, b.Now), appointment.TagStatus)
			assert.False(t, a.IsPublic())
		}
	})

	t.Run("admin may publish", func(t *testing.T) {
		a := b.BuildReconstructed(uuid.New(), appointment.StatusScheduled)
		require.NoError(t, a.MakePublic(user.Actor{UserID: uuid.New(), Role: user.RoleAdmin}, b.Now))
	})

	t.Run("stranger may not publish", func(t *testing.T) {
		a := b.BuildReconstructed(uuid.New(), appointment.StatusScheduled)
		requireTag(t, a.MakePublic(user.Actor{UserID: uuid.New(), Role: user.RoleMember}, b.Now), appointment.TagUserID)
	})
}
