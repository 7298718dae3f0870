//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/pkg/clock"
	"telescope-scheduler/internal/usecase/queries"
	"telescope-scheduler/tests/common/uowtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

// fakeReadStore returns canned rows and records the last Find call.
type fakeReadStore struct {
	byID map[uuid.UUID]*queries.AppointmentView
	rows []*queries.AppointmentView
	err  error

	filter queries.Predicate
	after  *queries.Keyset
	order  queries.SortOrder
	limit  int32
}

func (f *fakeReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
}

func (f *fakeReadStore) Find(_ context.Context, filter queries.Predicate, after *queries.Keyset, order queries.SortOrder, limit int32) ([]*queries.AppointmentView, error) {
	f.filter, f.after, f.order, f.limit = filter, after, order, limit
	if f.err != nil {
		return nil, f.err
	}
	if int(limit) < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

type fakeDirectory map[uuid.UUID]bool

func (d fakeDirectory) TelescopeExists(_ context.Context, id uuid.UUID) (bool, error) {
	return d[id], nil
}

func views(n int) []*queries.AppointmentView {
	out := make([]*queries.AppointmentView, n)
	for i := range out {
		out[i] = &queries.AppointmentView{
			ID:        uuid.New(),
			StartTime: now.Add(time.Duration(i) * time.Hour),
			EndTime:   now.Add(time.Duration(i)*time.Hour + 30*time.Minute),
			IsPublic:  true,
		}
	}
	return out
}

func TestAppointmentQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	private := &queries.AppointmentView{ID: uuid.New(), UserID: ownerID, IsPublic: false}
	public := &queries.AppointmentView{ID: uuid.New(), UserID: ownerID, IsPublic: true}

	store := &fakeReadStore{byID: map[uuid.UUID]*queries.AppointmentView{private.ID: private, public.ID: public}}
	q := queries.NewAppointmentQueries(store, fakeDirectory{}, clock.NewMockClock(now))

	testCases := []struct {
		name    string
		actor   user.Actor
		id      uuid.UUID
		wantErr bool
	}{
		{name: "anonymous sees public", id: public.ID},
		{name: "anonymous cannot see private", id: private.ID, wantErr: true},
		{name: "owner sees private", actor: user.Actor{UserID: ownerID, Role: user.RoleStudent}, id: private.ID},
		{name: "admin sees private", actor: user.Actor{UserID: uuid.New(), Role: user.RoleAdmin}, id: private.ID},
		{name: "other user cannot see private", actor: user.Actor{UserID: uuid.New(), Role: user.RoleMember}, id: private.ID, wantErr: true},
		{name: "unknown id", id: uuid.New(), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := q.GetByID(ctx, tc.actor, tc.id)
			if tc.wantErr {
				require.Error(t, err)
				verr, ok := appointment.AsValidation(err)
				require.True(t, ok)
				assert.True(t, verr.IsNotFound())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.id, v.ID)
		})
	}
}

func TestAppointmentQueries_Pagination(t *testing.T) {
	ctx := context.Background()
	rows := views(5)
	store := &fakeReadStore{rows: rows}
	q := queries.NewAppointmentQueries(store, fakeDirectory{}, clock.NewMockClock(now))

	page, next, err := q.CompletedPublic(ctx, queries.PageRequest{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, rows[:3], page)
	assert.Equal(t, int32(4), store.limit)
	assert.Equal(t, queries.SortAsc, store.order)
	assert.Nil(t, store.after)
	require.NotNil(t, next)

	at, id, err := queries.DecodeAfterCursor(next.After)
	require.NoError(t, err)
	assert.True(t, rows[2].StartTime.Equal(at))
	assert.Equal(t, rows[2].ID, id)

	store.rows = rows[3:]
	page, next, err = q.CompletedPublic(ctx, queries.PageRequest{Cursor: next, Limit: 3, Order: queries.SortDesc})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Nil(t, next)
	require.NotNil(t, store.after)
	assert.Equal(t, rows[2].ID, store.after.ID)
	assert.Equal(t, queries.SortDesc, store.order)

	assert.Equal(t, queries.And{
		queries.Eq(queries.FieldStatus, appointment.StatusCompleted),
		queries.Eq(queries.FieldIsPublic, true),
	}, store.filter)
}

func TestAppointmentQueries_InvalidCursor(t *testing.T) {
	q := queries.NewAppointmentQueries(&fakeReadStore{}, fakeDirectory{}, clock.NewMockClock(now))

	_, _, err := q.Requested(context.Background(), queries.PageRequest{Cursor: &queries.Cursor{After: "garbage"}})
	require.Error(t, err)
	verr, ok := appointment.AsValidation(err)
	require.True(t, ok)
	assert.True(t, verr.Errors.Has(appointment.TagPageParams))
}

func TestAppointmentQueries_Filters(t *testing.T) {
	ctx := context.Background()
	actor := user.Actor{UserID: uuid.New(), Role: user.RoleResearcher}
	visible := queries.Or{queries.Eq(queries.FieldIsPublic, true), queries.Eq(queries.FieldUserID, actor.UserID)}
	telescopeID := uuid.New()
	userID := uuid.New()

	store := &fakeReadStore{}
	q := queries.NewAppointmentQueries(store, fakeDirectory{telescopeID: true}, clock.NewMockClock(now))

	t.Run("future excludes canceled and ends after now", func(t *testing.T) {
		_, _, err := q.FutureByUser(ctx, actor, userID, queries.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, queries.And{
			queries.Eq(queries.FieldUserID, userID),
			queries.Cond{Field: queries.FieldEndTime, Op: queries.OpGt, Value: now},
			queries.Cond{Field: queries.FieldStatus, Op: queries.OpNe, Value: appointment.StatusCanceled},
			visible,
		}, store.filter)
		assert.Equal(t, int32(21), store.limit)
	})

	t.Run("past ends before now", func(t *testing.T) {
		_, _, err := q.PastByUser(ctx, actor, userID, queries.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, queries.And{
			queries.Eq(queries.FieldUserID, userID),
			queries.Cond{Field: queries.FieldEndTime, Op: queries.OpLt, Value: now},
			visible,
		}, store.filter)
	})

	t.Run("between dates overlaps the window", func(t *testing.T) {
		start, end := now, now.Add(24*time.Hour)
		_, _, err := q.BetweenDates(ctx, actor, telescopeID, start, end, queries.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, queries.And{
			queries.Eq(queries.FieldTelescopeID, telescopeID),
			queries.Cond{Field: queries.FieldStartTime, Op: queries.OpLt, Value: end},
			queries.Cond{Field: queries.FieldEndTime, Op: queries.OpGt, Value: start},
			queries.Cond{Field: queries.FieldStatus, Op: queries.OpNe, Value: appointment.StatusCanceled},
			visible,
		}, store.filter)
	})

	t.Run("between dates reports window and telescope together", func(t *testing.T) {
		_, _, err := q.BetweenDates(ctx, actor, uuid.New(), now, now, queries.PageRequest{})
		require.Error(t, err)
		verr, ok := appointment.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, []appointment.ErrorTag{appointment.TagEndTime, appointment.TagTelescopeID}, verr.Errors.Tags())
	})

	t.Run("search ands visibility after the criteria", func(t *testing.T) {
		_, _, err := q.Search(ctx, actor, []queries.SearchCriterion{{Key: "status", Value: "COMPLETED"}}, queries.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, queries.And{
			queries.Eq(queries.FieldStatus, appointment.StatusCompleted),
			visible,
		}, store.filter)
	})

	t.Run("admin is not filtered by visibility", func(t *testing.T) {
		admin := user.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
		_, _, err := q.ByTelescope(ctx, admin, telescopeID, queries.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, queries.And{queries.Eq(queries.FieldTelescopeID, telescopeID)}, store.filter)
	})

	t.Run("store failure is passed through", func(t *testing.T) {
		failing := &fakeReadStore{err: errors.New("timeout")}
		_, _, err := queries.NewAppointmentQueries(failing, fakeDirectory{}, clock.NewMockClock(now)).
			Requested(ctx, queries.PageRequest{})
		require.Error(t, err)
		_, isValidation := appointment.AsValidation(err)
		assert.False(t, isValidation)
	})
}

func TestUserQueries_AvailableTime(t *testing.T) {
	ctx := context.Background()

	st := uowtest.NewStore()
	capTime := 50 * time.Hour
	researcher := st.AddUser(user.RoleResearcher, &capTime)
	member := st.AddUser(user.RoleMember, nil)
	pending := st.AddUser("", nil)

	slot, err := appointment.NewTimeSlot(now, now.Add(2*time.Hour))
	require.NoError(t, err)
	st.Put(appointment.ReconstructAppointment(uuid.New(), researcher, uuid.New(), slot, true,
		appointment.PriorityPrimary, appointment.StatusScheduled, appointment.TypeFreeControl,
		appointment.FreeControlPayload{}, now, now))
	st.Put(appointment.ReconstructAppointment(uuid.New(), researcher, uuid.New(), slot, true,
		appointment.PriorityPrimary, appointment.StatusRequested, appointment.TypeFreeControl,
		appointment.FreeControlPayload{}, now, now))

	q := queries.NewUserQueries(uowtest.NewUoW(st))

	v, err := q.AvailableTime(ctx, researcher)
	require.NoError(t, err)
	assert.Equal(t, "RESEARCHER", v.Category)
	assert.Equal(t, 48*time.Hour, v.Available)
	assert.False(t, v.Unlimited)

	v, err = q.AvailableTime(ctx, member)
	require.NoError(t, err)
	assert.True(t, v.Unlimited)

	_, err = q.AvailableTime(ctx, pending)
	verr, ok := appointment.AsValidation(err)
	require.True(t, ok)
	assert.True(t, verr.Errors.Has(appointment.TagCategoryOfService))

	_, err = q.AvailableTime(ctx, uuid.New())
	verr, ok = appointment.AsValidation(err)
	require.True(t, ok)
	assert.True(t, verr.Errors.Has(appointment.TagUserID))
}

type fakeLogStore struct {
	rows  []*queries.LogView
	after *queries.Keyset
	limit int32
}

func (f *fakeLogStore) Find(_ context.Context, after *queries.Keyset, limit int32) ([]*queries.LogView, error) {
	f.after, f.limit = after, limit
	if int(limit) < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func TestLogQueries_List(t *testing.T) {
	rows := make([]*queries.LogView, 3)
	for i := range rows {
		rows[i] = &queries.LogView{ID: uuid.New(), Event: "cancel", Timestamp: now.Add(-time.Duration(i) * time.Minute)}
	}
	store := &fakeLogStore{rows: rows}
	q := queries.NewLogQueries(store)

	page, next, err := q.List(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	require.NotNil(t, next)
	assert.Equal(t, int32(3), store.limit)

	_, _, err = q.List(context.Background(), next, 2)
	require.NoError(t, err)
	require.NotNil(t, store.after)
	assert.Equal(t, rows[1].ID, store.after.ID)
}
