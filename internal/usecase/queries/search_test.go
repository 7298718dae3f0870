//go:build unit

package queries_test

import (
	"testing"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearch(t *testing.T) {
	telescopeID := uuid.MustParse("0b6f8f0e-7a4c-4e21-9d43-3f0b1f5d2c11")

	testCases := []struct {
		name     string
		criteria []queries.SearchCriterion
		want     queries.Predicate
	}{
		{
			name:     "single name criterion escapes like wildcards",
			criteria: []queries.SearchCriterion{{Key: "userFirstName", Value: "50%_off"}},
			want: queries.And{
				queries.Cond{Field: queries.FieldUserFirstName, Op: queries.OpILike, Value: `%50\%\_off%`},
			},
		},
		{
			name: "separate criteria are anded in order",
			criteria: []queries.SearchCriterion{
				{Key: "telescopeId", Value: telescopeID.String()},
				{Key: "status", Value: "scheduled"},
			},
			want: queries.And{
				queries.Eq(queries.FieldTelescopeID, telescopeID),
				queries.Eq(queries.FieldStatus, appointment.StatusScheduled),
			},
		},
		{
			name:     "combined key becomes an or group",
			criteria: []queries.SearchCriterion{{Key: "userFirstName userLastName", Value: " bell "}},
			want: queries.And{
				queries.Or{
					queries.Cond{Field: queries.FieldUserFirstName, Op: queries.OpILike, Value: "%bell%"},
					queries.Cond{Field: queries.FieldUserLastName, Op: queries.OpILike, Value: "%bell%"},
				},
			},
		},
		{
			name: "date only and rfc3339 bounds",
			criteria: []queries.SearchCriterion{
				{Key: "startAfter", Value: "2030-01-02"},
				{Key: "endBefore", Value: "2030-01-03T04:05:06Z"},
			},
			want: queries.And{
				queries.Cond{Field: queries.FieldStartTime, Op: queries.OpGte, Value: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)},
				queries.Cond{Field: queries.FieldEndTime, Op: queries.OpLte, Value: time.Date(2030, 1, 3, 4, 5, 6, 0, time.UTC)},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := queries.ParseSearch(tc.criteria)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSearch_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		criteria []queries.SearchCriterion
		wantMsgs int
	}{
		{name: "no criteria", criteria: nil, wantMsgs: 1},
		{name: "unknown key", criteria: []queries.SearchCriterion{{Key: "password", Value: "x"}}, wantMsgs: 1},
		{name: "missing value", criteria: []queries.SearchCriterion{{Key: "status", Value: "  "}}, wantMsgs: 1},
		{name: "bad status", criteria: []queries.SearchCriterion{{Key: "status", Value: "LOST"}}, wantMsgs: 1},
		{
			name: "every failure is collected",
			criteria: []queries.SearchCriterion{
				{Key: "telescopeId", Value: "not-a-uuid"},
				{Key: "startAfter", Value: "yesterday"},
				{Key: "userFirstName+nickname", Value: "ada"},
			},
			wantMsgs: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := queries.ParseSearch(tc.criteria)
			require.Error(t, err)
			assert.Nil(t, got)

			verr, ok := appointment.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, []appointment.ErrorTag{appointment.TagSearch}, verr.Errors.Tags())
			assert.Len(t, verr.Errors.Get(appointment.TagSearch), tc.wantMsgs)
		})
	}
}

func TestVisibleTo(t *testing.T) {
	admin := user.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
	assert.Nil(t, queries.VisibleTo(admin))

	member := user.Actor{UserID: uuid.New(), Role: user.RoleMember}
	assert.Equal(t, queries.Or{
		queries.Eq(queries.FieldIsPublic, true),
		queries.Eq(queries.FieldUserID, member.UserID),
	}, queries.VisibleTo(member))
}

func TestAllOf_Flattens(t *testing.T) {
	a := queries.Eq(queries.FieldIsPublic, true)
	b := queries.Eq(queries.FieldStatus, appointment.StatusCompleted)

	got := queries.AllOf(nil, queries.And{a, queries.And{b}}, nil)
	assert.Equal(t, queries.And{a, b}, got)
}

func TestCursor_RoundTrip(t *testing.T) {
	at := time.Date(2030, 5, 6, 7, 8, 9, 123456000, time.UTC)
	id := uuid.New()

	gotTime, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))
	require.NoError(t, err)
	assert.True(t, at.Equal(gotTime))
	assert.Equal(t, id, gotID)

	for _, bad := range []string{"", "!!!", "djI6MTIz"} {
		_, _, err := queries.DecodeAfterCursor(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, queries.ValidateLimit(0))
	assert.Equal(t, 7, queries.ValidateLimit(7))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
