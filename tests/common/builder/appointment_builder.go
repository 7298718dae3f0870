//go:build unit || e2e

package builder

import (
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	reqdto "telescope-scheduler/internal/handler/dto/request"
	"telescope-scheduler/internal/infra/repository/converter"
	"telescope-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	Now         time.Time
	UserID      uuid.UUID
	TelescopeID uuid.UUID
	Start       time.Time
	End         time.Time
	IsPublic    bool
	Priority    appointment.Priority
	Type        appointment.Type
	Payload     appointment.Payload
	Initial     appointment.Status
	Facts       appointment.Facts
}

func NewAppointmentBuilder() *AppointmentBuilder {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	category := user.RoleResearcher
	available := 50 * time.Hour
	return &AppointmentBuilder{
		Now:         now,
		UserID:      uuid.New(),
		TelescopeID: uuid.New(),
		Start:       now.Add(time.Hour),
		End:         now.Add(3 * time.Hour),
		IsPublic:    true,
		Priority:    appointment.PriorityPrimary,
		Type:        appointment.TypePoint,
		Payload: appointment.PointPayload{
			Coordinate: appointment.Coordinate{Hours: 5, Minutes: 35, Seconds: 17, Declination: -5.39},
		},
		Initial: appointment.StatusScheduled,
		Facts: appointment.Facts{
			TelescopeExists:     true,
			UserExists:          true,
			Category:            &category,
			Available:           &available,
			CelestialBodyExists: true,
		},
	}
}

func (a *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	if mutate != nil {
		mutate(a)
	}
	return a
}

// Build methods
func (a *AppointmentBuilder) BuildSpec() appointment.CreateSpec {
	return appointment.CreateSpec{
		UserID:      a.UserID,
		TelescopeID: a.TelescopeID,
		Start:       a.Start,
		End:         a.End,
		IsPublic:    a.IsPublic,
		Priority:    a.Priority,
		Type:        a.Type,
		Payload:     a.Payload,
	}
}

func (a *AppointmentBuilder) BuildDomain() (*appointment.Appointment, error) {
	return appointment.NewAppointment(a.BuildSpec(), a.Facts, a.Initial, a.Now)
}

// BuildReconstructed skips validation, for lifecycle tests that need a given status.
func (a *AppointmentBuilder) BuildReconstructed(id uuid.UUID, status appointment.Status) *appointment.Appointment {
	slot, err := appointment.NewTimeSlot(a.Start, a.End)
	if err != nil {
		panic(err)
	}
	return appointment.ReconstructAppointment(
		id, a.UserID, a.TelescopeID, slot, a.IsPublic, a.Priority, status, a.Type, a.Payload, a.Now, a.Now,
	)
}

func (a *AppointmentBuilder) BuildBooking(start, end time.Time, status appointment.Status) appointment.Booking {
	slot, err := appointment.NewTimeSlot(start, end)
	if err != nil {
		panic(err)
	}
	return appointment.Booking{
		ID:          uuid.New(),
		TelescopeID: a.TelescopeID,
		Slot:        slot,
		Status:      status,
		Priority:    appointment.PriorityPrimary,
	}
}

// BuildCreateRequestDTO only carries Point payloads; other types are set per test.
func (a *AppointmentBuilder) BuildCreateRequestDTO() reqdto.CreateAppointmentRequest {
	public := a.IsPublic
	req := reqdto.CreateAppointmentRequest{
		TelescopeID: a.TelescopeID,
		StartTime:   a.Start,
		EndTime:     a.End,
		IsPublic:    &public,
		Priority:    string(a.Priority),
		Type:        string(a.Type),
	}
	if p, ok := a.Payload.(appointment.PointPayload); ok {
		req.Coordinate = &reqdto.CoordinateRequest{
			Hours:       p.Coordinate.Hours,
			Minutes:     p.Coordinate.Minutes,
			Seconds:     p.Coordinate.Seconds,
			Declination: p.Coordinate.Declination,
		}
	}
	return req
}

func (a *AppointmentBuilder) BuildView(id uuid.UUID, status appointment.Status) *queries.AppointmentView {
	payload, err := converter.EncodePayload(a.Payload)
	if err != nil {
		panic(err)
	}
	return &queries.AppointmentView{
		ID:            id,
		UserID:        a.UserID,
		UserFirstName: "Jocelyn",
		UserLastName:  "Bell",
		TelescopeID:   a.TelescopeID,
		TelescopeName: "Haystack",
		StartTime:     a.Start,
		EndTime:       a.End,
		IsPublic:      a.IsPublic,
		Priority:      string(a.Priority),
		Status:        string(status),
		Type:          string(a.Type),
		Payload:       payload,
		CreatedAt:     a.Now,
		UpdatedAt:     a.Now,
	}
}

// Fluent builder methods
func (a *AppointmentBuilder) WithWindow(start, end time.Time) *AppointmentBuilder {
	a.Start = start
	a.End = end
	return a
}

func (a *AppointmentBuilder) WithDuration(d time.Duration) *AppointmentBuilder {
	a.End = a.Start.Add(d)
	return a
}

func (a *AppointmentBuilder) WithUserID(id uuid.UUID) *AppointmentBuilder {
	a.UserID = id
	return a
}

func (a *AppointmentBuilder) WithTelescopeID(id uuid.UUID) *AppointmentBuilder {
	a.TelescopeID = id
	return a
}

func (a *AppointmentBuilder) WithPayload(p appointment.Payload) *AppointmentBuilder {
	a.Payload = p
	if p != nil {
		a.Type = p.Type()
	}
	return a
}

func (a *AppointmentBuilder) WithCategory(role user.Role, available time.Duration) *AppointmentBuilder {
	a.Facts.Category = &role
	a.Facts.Available = &available
	return a
}

func (a *AppointmentBuilder) WithoutCategory() *AppointmentBuilder {
	a.Facts.Category = nil
	a.Facts.Available = nil
	return a
}

func (a *AppointmentBuilder) WithExisting(bookings ...appointment.Booking) *AppointmentBuilder {
	a.Facts.Existing = append(a.Facts.Existing, bookings...)
	return a
}

func (a *AppointmentBuilder) AsPrivate() *AppointmentBuilder {
	a.IsPublic = false
	return a
}

func (a *AppointmentBuilder) AsRequest() *AppointmentBuilder {
	a.Initial = appointment.StatusRequested
	return a
}
