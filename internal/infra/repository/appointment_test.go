//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/infra/repository"
	"telescope-scheduler/tests/common/builder"
	sharedmock "telescope-scheduler/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// idRow answers a RETURNING id scan.
type idRow struct {
	id  uuid.UUID
	err error
}

func (r idRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*uuid.UUID) = r.id
	return nil
}

func anyArgs(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = gomock.Any()
	}
	return out
}

// =============================================================================
// Create Appointment Tests
// =============================================================================

func TestAppointmentRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		rowErr        error
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: appointment created",
		},
		{
			name:          "error: telescope window already taken",
			rowErr:        &pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint"},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name:          "error: unknown telescope reference",
			rowErr:        &pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"},
			expectedError: true,
			expectKind:    infra.KindForeignKeyViolated,
		},
		{
			name:          "error: database failure",
			rowErr:        errors.New("connection reset"),
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := sharedmock.NewMockDBTX(ctrl)

			a, err := builder.NewAppointmentBuilder().BuildDomain()
			require.NoError(t, err)

			db.EXPECT().QueryRow(ctx, gomock.Any(), anyArgs(12)...).Return(idRow{id: a.ID(), err: tc.rowErr})

			repo := repository.NewAppointmentRepository()
			id, err := repo.Create(ctx, db, a)

			if tc.expectedError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind %s, got %v", tc.expectKind, err)
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, a.ID(), id)
		})
	}
}

// =============================================================================
// Update Appointment Tests
// =============================================================================

func TestAppointmentRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		tag           pgconn.CommandTag
		execErr       error
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: status persisted",
			tag:  pgconn.NewCommandTag("UPDATE 1"),
		},
		{
			name:          "error: appointment vanished",
			tag:           pgconn.NewCommandTag("UPDATE 0"),
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name:          "error: approval collides with a scheduled window",
			execErr:       &pgconn.PgError{Code: "23P01"},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := sharedmock.NewMockDBTX(ctrl)

			a := builder.NewAppointmentBuilder().BuildReconstructed(uuid.New(), appointment.StatusScheduled)

			db.EXPECT().
				Exec(ctx, gomock.Any(), a.ID(), appointment.StatusScheduled.String(), a.IsPublic(), a.UpdatedAt()).
				Return(tc.tag, tc.execErr)

			err := repository.NewAppointmentRepository().Update(ctx, db, a)

			if tc.expectedError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind %s, got %v", tc.expectKind, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
