//go:build unit

package appointment_test

import (
	"errors"
	"testing"

	"telescope-scheduler/internal/domain/appointment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	t.Run("zero value is empty", func(t *testing.T) {
		var e appointment.Errors
		assert.True(t, e.IsEmpty())
		assert.Zero(t, e.Size())
		assert.NoError(t, e.Err())
	})

	t.Run("multiple messages per tag", func(t *testing.T) {
		var e appointment.Errors
		e.Add(appointment.TagAllottedTime, "first")
		e.Add(appointment.TagAllottedTime, "second")
		e.Add(appointment.TagEndTime, "third")

		assert.Equal(t, 3, e.Size())
		assert.Equal(t, []string{"first", "second"}, e.Get(appointment.TagAllottedTime))
		assert.True(t, e.Has(appointment.TagEndTime))
		assert.False(t, e.Has(appointment.TagOverlap))
	})

	t.Run("merge keeps both sides", func(t *testing.T) {
		var a, b appointment.Errors
		a.Add(appointment.TagHours, "h")
		b.Add(appointment.TagHours, "h2")
		b.Add(appointment.TagSeconds, "s")

		a.Merge(b)
		assert.Equal(t, map[appointment.ErrorTag][]string{
			appointment.TagHours:   {"h", "h2"},
			appointment.TagSeconds: {"s"},
		}, a.Map())
	})

	t.Run("wrapped validation error is recognised", func(t *testing.T) {
		err := fmtWrap(appointment.NewError(appointment.TagID, "Appointment not found"))

		require.ErrorIs(t, err, appointment.ErrValidation)
		verr, ok := appointment.AsValidation(err)
		require.True(t, ok)
		assert.True(t, verr.IsNotFound())
		assert.Contains(t, err.Error(), "ID: Appointment not found")
	})
}

func fmtWrap(err error) error {
	return errors.Join(errors.New("context"), err)
}
