//go:build unit || e2e

// Package uowtest provides an in-memory unit of work for use case tests.
// Transactions are serialized and roll back on error.
package uowtest

import (
	"context"
	"slices"
	"sync"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Store struct {
	txMu sync.Mutex

	Telescopes   map[uuid.UUID]bool
	Users        map[uuid.UUID]bool
	Bodies       map[uuid.UUID]bool
	Categories   map[uuid.UUID]user.Role
	Caps         map[uuid.UUID]*time.Duration
	Appointments map[uuid.UUID]*appointment.Appointment
	Logs         []shared.AuditEntry
	Locks        []string

	// FailWrites makes every repository write fail when set.
	FailWrites error
}

func NewStore() *Store {
	return &Store{
		Telescopes:   map[uuid.UUID]bool{},
		Users:        map[uuid.UUID]bool{},
		Bodies:       map[uuid.UUID]bool{},
		Categories:   map[uuid.UUID]user.Role{},
		Caps:         map[uuid.UUID]*time.Duration{},
		Appointments: map[uuid.UUID]*appointment.Appointment{},
	}
}

func (s *Store) AddTelescope() uuid.UUID {
	id := uuid.New()
	s.Telescopes[id] = true
	return id
}

// AddUser registers a user approved for category with the given cap.
// A nil capTime is unlimited.
func (s *Store) AddUser(category user.Role, capTime *time.Duration) uuid.UUID {
	id := uuid.New()
	s.Users[id] = true
	if category != "" {
		s.Categories[id] = category
		s.Caps[id] = capTime
	}
	return id
}

func (s *Store) Put(a *appointment.Appointment) {
	s.Appointments[a.ID()] = clone(a)
}

func (s *Store) Get(id uuid.UUID) *appointment.Appointment {
	if a, ok := s.Appointments[id]; ok {
		return clone(a)
	}
	return nil
}

func (s *Store) snapshot() *Store {
	return &Store{
		Categories:   cloneMap(s.Categories),
		Caps:         cloneMap(s.Caps),
		Appointments: cloneMap(s.Appointments),
		Logs:         slices.Clone(s.Logs),
	}
}

func (s *Store) restore(snap *Store) {
	s.Categories = snap.Categories
	s.Caps = snap.Caps
	s.Appointments = snap.Appointments
	s.Logs = snap.Logs
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clone(a *appointment.Appointment) *appointment.Appointment {
	return appointment.ReconstructAppointment(
		a.ID(), a.UserID(), a.TelescopeID(), a.Slot(), a.IsPublic(), a.Priority(),
		a.Status(), a.Type(), a.Payload(), a.CreatedAt(), a.UpdatedAt(),
	)
}

// UoW implements shared.UnitOfWork over a Store.
type UoW struct {
	store *Store
}

func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.txMu.Lock()
	defer u.store.txMu.Unlock()

	snap := u.store.snapshot()
	if err := fn(ctx, &memTx{store: u.store}); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db shared.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UoW) WithDB(ctx context.Context, fn func(ctx context.Context, db shared.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UoW) CommandReads() shared.CommandReads {
	return &reads{store: u.store}
}

type memTx struct {
	store *Store
}

func (t *memTx) Appointments() shared.AppointmentRepository { return &appointments{store: t.store} }
func (t *memTx) Memberships() shared.MembershipRepository   { return &memberships{store: t.store} }
func (t *memTx) AuditLogs() shared.AuditLogRepository       { return &AuditLogs{Store: t.store} }
func (t *memTx) Locks() shared.LockRepository               { return &locks{store: t.store} }
func (t *memTx) Reads() shared.CommandReads                 { return &reads{store: t.store} }
func (t *memTx) DB() shared.DBTX                            { return nil }

type appointments struct {
	store *Store
}

// Create enforces the same exclusion rule as the database constraint.
func (r *appointments) Create(_ context.Context, _ shared.DBTX, a *appointment.Appointment) (uuid.UUID, error) {
	if r.store.FailWrites != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create appointment", r.store.FailWrites, infra.KindDBFailure)
	}
	if blocksSlot(a.Status()) {
		for _, other := range r.store.Appointments {
			if other.TelescopeID() == a.TelescopeID() && blocksSlot(other.Status()) && other.Slot().Overlaps(a.Slot()) {
				return uuid.Nil, infra.WrapRepoErr("failed to create appointment", nil, infra.KindConflict)
			}
		}
	}
	r.store.Put(a)
	return a.ID(), nil
}

func (r *appointments) Update(_ context.Context, _ shared.DBTX, a *appointment.Appointment) error {
	if r.store.FailWrites != nil {
		return infra.WrapRepoErr("failed to update appointment", r.store.FailWrites, infra.KindDBFailure)
	}
	if _, ok := r.store.Appointments[a.ID()]; !ok {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	r.store.Put(a)
	return nil
}

func blocksSlot(s appointment.Status) bool {
	return s == appointment.StatusScheduled || s == appointment.StatusInProgress
}

type memberships struct {
	store *Store
}

func (r *memberships) Approve(_ context.Context, _ shared.DBTX, m *user.Membership) error {
	if r.store.FailWrites != nil {
		return infra.WrapRepoErr("failed to approve membership", r.store.FailWrites, infra.KindDBFailure)
	}
	r.store.Categories[m.UserID()] = m.Category()
	r.store.Caps[m.UserID()] = m.AllottedTime()
	return nil
}

// AuditLogs is exported so tests can pass it as the out-of-transaction
// audit repository.
type AuditLogs struct {
	Store *Store
}

func (r *AuditLogs) Create(_ context.Context, _ shared.DBTX, entry shared.AuditEntry) error {
	r.Store.Logs = append(r.Store.Logs, entry)
	return nil
}

type locks struct {
	store *Store
}

func (r *locks) LockUser(_ context.Context, _ shared.DBTX, userID uuid.UUID) error {
	r.store.Locks = append(r.store.Locks, "user:"+userID.String())
	return nil
}

func (r *locks) LockTelescope(_ context.Context, _ shared.DBTX, telescopeID uuid.UUID) error {
	r.store.Locks = append(r.store.Locks, "telescope:"+telescopeID.String())
	return nil
}

type reads struct {
	store *Store
}

func (r *reads) TelescopeExists(_ context.Context, id uuid.UUID) (bool, error) {
	return r.store.Telescopes[id], nil
}

func (r *reads) UserExists(_ context.Context, id uuid.UUID) (bool, error) {
	return r.store.Users[id], nil
}

func (r *reads) CelestialBodyExists(_ context.Context, id uuid.UUID) (bool, error) {
	return r.store.Bodies[id], nil
}

func (r *reads) ApprovedCategory(_ context.Context, userID uuid.UUID) (*user.Role, error) {
	role, ok := r.store.Categories[userID]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r *reads) AllottedTimeCap(_ context.Context, userID uuid.UUID) (*time.Duration, bool, error) {
	capTime, ok := r.store.Caps[userID]
	return capTime, ok, nil
}

func (r *reads) ScheduledDuration(_ context.Context, userID uuid.UUID) (time.Duration, error) {
	var total time.Duration
	for _, a := range r.store.Appointments {
		if a.UserID() == userID && a.Status() == appointment.StatusScheduled {
			total += a.Slot().Duration()
		}
	}
	return total, nil
}

func (r *reads) ActiveBookings(_ context.Context, telescopeID uuid.UUID, slot appointment.TimeSlot) ([]appointment.Booking, error) {
	var out []appointment.Booking
	for _, a := range r.store.Appointments {
		if a.TelescopeID() != telescopeID || !a.Slot().Overlaps(slot) {
			continue
		}
		switch a.Status() {
		case appointment.StatusRequested, appointment.StatusScheduled, appointment.StatusInProgress:
			out = append(out, a.Booking())
		}
	}
	return out, nil
}

func (r *reads) AppointmentForUpdate(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a := r.store.Get(id)
	if a == nil {
		return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return a, nil
}

func (r *reads) StaleRequests(_ context.Context, startedBefore time.Time, limit int) ([]uuid.UUID, error) {
	var stale []*appointment.Appointment
	for _, a := range r.store.Appointments {
		if a.Status() == appointment.StatusRequested && a.Slot().Start().Before(startedBefore) {
			stale = append(stale, a)
		}
	}
	slices.SortFunc(stale, func(x, y *appointment.Appointment) int {
		return x.Slot().Start().Compare(y.Slot().Start())
	})
	if len(stale) > limit {
		stale = stale[:limit]
	}
	ids := make([]uuid.UUID, len(stale))
	for i, a := range stale {
		ids[i] = a.ID()
	}
	return ids, nil
}

// Publisher records published entries and can be told to fail.
type Publisher struct {
	mock.Mock
}

func (p *Publisher) Publish(ctx context.Context, entry shared.AuditEntry) error {
	args := p.Called(ctx, entry)
	return args.Error(0)
}
