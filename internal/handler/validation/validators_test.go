//go:build unit

package validation_test

import (
	"testing"

	"telescope-scheduler/internal/handler/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enumProbe struct {
	Priority string `validate:"omitempty,priority"`
	Type     string `validate:"omitempty,appointment_type"`
	Category string `validate:"omitempty,category"`
}

func TestRegisterOn(t *testing.T) {
	v := validator.New()
	require.NoError(t, validation.RegisterOn(v))

	testCases := []struct {
		name    string
		probe   enumProbe
		invalid map[string]string
	}{
		{
			name:  "valid enums",
			probe: enumProbe{Priority: "SECONDARY", Type: "RASTER_SCAN", Category: "STUDENT"},
		},
		{
			name:    "lowercase priority is rejected",
			probe:   enumProbe{Priority: "primary"},
			invalid: map[string]string{"Priority": "priority"},
		},
		{
			name:    "unknown type",
			probe:   enumProbe{Type: "TELEPORT"},
			invalid: map[string]string{"Type": "appointment_type"},
		},
		{
			name:    "admin is not a category of service",
			probe:   enumProbe{Category: "ADMIN"},
			invalid: map[string]string{"Category": "category"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.probe)
			if tc.invalid == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.invalid, validation.Details(err))
		})
	}
}
