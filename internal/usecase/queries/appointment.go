package queries

import (
	"context"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/pkg/clock"

	"github.com/google/uuid"
)

type AppointmentView struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	UserFirstName string    `json:"user_first_name"`
	UserLastName  string    `json:"user_last_name"`
	TelescopeID   uuid.UUID `json:"telescope_id"`
	TelescopeName string    `json:"telescope_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	IsPublic      bool      `json:"is_public"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
	Payload       []byte    `json:"payload"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// PageRequest pages on (start_time, id). Asc lists soonest first and Desc newest first.
type PageRequest struct {
	Cursor *Cursor
	Limit  int
	Order  SortOrder
}

type Keyset struct {
	Time time.Time
	ID   uuid.UUID
}

type AppointmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	Find(ctx context.Context, filter Predicate, after *Keyset, order SortOrder, limit int32) ([]*AppointmentView, error)
}

type DirectoryReadStore interface {
	TelescopeExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*AppointmentView, error)
	Search(ctx context.Context, actor user.Actor, criteria []SearchCriterion, page PageRequest) ([]*AppointmentView, *Cursor, error)
	FutureByUser(ctx context.Context, actor user.Actor, userID uuid.UUID, page PageRequest) ([]*AppointmentView, *Cursor, error)
	PastByUser(ctx context.Context, actor user.Actor, userID uuid.UUID, page PageRequest) ([]*AppointmentView, *Cursor, error)
	ByTelescope(ctx context.Context, actor user.Actor, telescopeID uuid.UUID, page PageRequest) ([]*AppointmentView, *Cursor, error)
	BetweenDates(ctx context.Context, actor user.Actor, telescopeID uuid.UUID, start, end time.Time, page PageRequest) ([]*AppointmentView, *Cursor, error)
	CompletedPublic(ctx context.Context, page PageRequest) ([]*AppointmentView, *Cursor, error)
	Requested(ctx context.Context, page PageRequest) ([]*AppointmentView, *Cursor, error)
}

type appointmentQueriesImpl struct {
	repo      AppointmentReadStore
	directory DirectoryReadStore
	clock     clock.Clock
}

func NewAppointmentQueries(repo AppointmentReadStore, directory DirectoryReadStore, clk clock.Clock) AppointmentQueries {
	return &appointmentQueriesImpl{repo: repo, directory: directory, clock: clk}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*AppointmentView, error) {
	v, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, appointment.NewError(appointment.TagID, "Appointment not found")
		}
		return nil, err
	}
	// hidden appointments are reported as missing
	if !v.IsPublic && !actor.CanManage(v.UserID) {
		return nil, appointment.NewError(appointment.TagID, "Appointment not found")
	}
	return v, nil
}

func (q *appointmentQueriesImpl) Search(ctx context.Context, actor user.Actor, criteria []SearchCriterion, page PageRequest) ([]*AppointmentView, *Cursor, error) {
	pred, err := ParseSearch(criteria)
	if err != nil {
		return nil, nil, err
	}
	return q.list(ctx, AllOf(pred, VisibleTo(actor)), page)
}

func (q *appointmentQueriesImpl) FutureByUser(ctx context.Context, actor user.Actor, userID uuid.UUID, page PageRequest) ([]*AppointmentView, *Cursor, error) {
	return q.list(ctx, AllOf(
		Eq(FieldUserID, userID),
		Cond{Field: FieldEndTime, Op: OpGt, Value: q.clock.Now()},
		Cond{Field: FieldStatus, Op: OpNe, Value: appointment.StatusCanceled},
		VisibleTo(actor),
	), page)
}

func (q *appointmentQueriesImpl) PastByUser(ctx context.Context, actor user.Actor, userID uuid.UUID, page PageRequest) ([]*AppointmentView, *Cursor, error) {
	return q.list(ctx, AllOf(
		Eq(FieldUserID, userID),
		Cond{Field: FieldEndTime, Op: OpLt, Value: q.clock.Now()},
		VisibleTo(actor),
	), page)
}

func (q *appointmentQueriesImpl) ByTelescope(ctx context.Context, actor user.Actor, telescopeID uuid.UUID, page PageRequest) ([]*AppointmentView, *Cursor, error) {
	return q.list(ctx, AllOf(Eq(FieldTelescopeID, telescopeID), VisibleTo(actor)), page)
}

// BetweenDates lists non-canceled appointments on the telescope overlapping [start, end).
func (q *appointmentQueriesImpl) BetweenDates(ctx context.Context, actor user.Actor, telescopeID uuid.UUID, start, end time.Time, page PageRequest) ([]*AppointmentView, *Cursor, error) {
	var errs appointment.Errors
	if !start.Before(end) {
		errs.Add(appointment.TagEndTime, "End time must be after start time")
	}
	exists, err := q.directory.TelescopeExists(ctx, telescopeID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		errs.Add(appointment.TagTelescopeID, "Telescope not found")
	}
	if !errs.IsEmpty() {
		return nil, nil, errs.Err()
	}

	return q.list(ctx, AllOf(
		Eq(FieldTelescopeID, telescopeID),
		Cond{Field: FieldStartTime, Op: OpLt, Value: end},
		Cond{Field: FieldEndTime, Op: OpGt, Value: start},
		Cond{Field: FieldStatus, Op: OpNe, Value: appointment.StatusCanceled},
		VisibleTo(actor),
	), page)
}

func (q *appointmentQueriesImpl) CompletedPublic(ctx context.Context, page PageRequest) ([]*AppointmentView, *Cursor, error) {
	return q.list(ctx, AllOf(
		Eq(FieldStatus, appointment.StatusCompleted),
		Eq(FieldIsPublic, true),
	), page)
}

func (q *appointmentQueriesImpl) Requested(ctx context.Context, page PageRequest) ([]*AppointmentView, *Cursor, error) {
	return q.list(ctx, AllOf(Eq(FieldStatus, appointment.StatusRequested)), page)
}

func (q *appointmentQueriesImpl) list(ctx context.Context, filter Predicate, page PageRequest) ([]*AppointmentView, *Cursor, error) {
	limit := ValidateLimit(page.Limit)
	order := page.Order
	if order != SortDesc {
		order = SortAsc
	}

	var after *Keyset
	if page.Cursor != nil && page.Cursor.After != "" {
		t, id, err := DecodeAfterCursor(page.Cursor.After)
		if err != nil {
			return nil, nil, appointment.NewError(appointment.TagPageParams, "Invalid cursor")
		}
		after = &Keyset{Time: t, ID: id}
	}

	rows, err := q.repo.Find(ctx, filter, after, order, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.StartTime, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
