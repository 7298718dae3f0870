package request

import (
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type CoordinateRequest struct {
	Hours       int     `json:"hours"`
	Minutes     int     `json:"minutes"`
	Seconds     int     `json:"seconds"`
	Declination float64 `json:"declination"`
}

type OrientationRequest struct {
	Elevation float64 `json:"elevation"`
	Azimuth   float64 `json:"azimuth"`
}

// CreateAppointmentRequest carries one of the type-specific payloads:
// coordinate (POINT), orientation (DRIFT_SCAN), celestial_body_id
// (CELESTIAL_BODY) or coordinates (RASTER_SCAN, FREE_CONTROL).
type CreateAppointmentRequest struct {
	// UserID books on behalf of another user (admins only). Defaults to the caller.
	UserID          *uuid.UUID          `json:"user_id,omitempty"`
	TelescopeID     uuid.UUID           `json:"telescope_id" binding:"required"`
	StartTime       time.Time           `json:"start_time" binding:"required"`
	EndTime         time.Time           `json:"end_time" binding:"required"`
	IsPublic        *bool               `json:"is_public,omitempty"`
	Priority        string              `json:"priority" binding:"required,priority"`
	Type            string              `json:"type" binding:"required,appointment_type"`
	Coordinate      *CoordinateRequest  `json:"coordinate,omitempty"`
	Coordinates     []CoordinateRequest `json:"coordinates,omitempty" binding:"omitempty,max=64"`
	Orientation     *OrientationRequest `json:"orientation,omitempty"`
	CelestialBodyID *uuid.UUID          `json:"celestial_body_id,omitempty"`
}

// Public defaults to true when the field is omitted.
func (r CreateAppointmentRequest) Public() bool {
	return r.IsPublic == nil || *r.IsPublic
}

// OwnerID is the user the appointment is booked for.
func (r CreateAppointmentRequest) OwnerID(callerID uuid.UUID) uuid.UUID {
	if r.UserID == nil || *r.UserID == uuid.Nil {
		return callerID
	}
	return *r.UserID
}

func (r CreateAppointmentRequest) ToCommand(callerID uuid.UUID) commands.CreateAppointmentRequest {
	return commands.CreateAppointmentRequest{
		UserID:      r.OwnerID(callerID),
		TelescopeID: r.TelescopeID,
		Start:       r.StartTime.UTC(),
		End:         r.EndTime.UTC(),
		IsPublic:    r.Public(),
		Priority:    appointment.Priority(r.Priority),
		Type:        appointment.Type(r.Type),
		Payload:     r.payload(),
	}
}

// payload returns nil when the body lacks the part its type needs; the core
// reports that as a TYPE error.
func (r CreateAppointmentRequest) payload() appointment.Payload {
	switch appointment.Type(r.Type) {
	case appointment.TypePoint:
		if r.Coordinate == nil {
			return nil
		}
		return appointment.PointPayload{Coordinate: r.Coordinate.toDomain()}
	case appointment.TypeDriftScan:
		if r.Orientation == nil {
			return nil
		}
		return appointment.DriftScanPayload{Orientation: appointment.Orientation{
			Elevation: r.Orientation.Elevation,
			Azimuth:   r.Orientation.Azimuth,
		}}
	case appointment.TypeCelestialBody:
		if r.CelestialBodyID == nil {
			return nil
		}
		return appointment.CelestialBodyPayload{CelestialBodyID: *r.CelestialBodyID}
	case appointment.TypeRasterScan:
		return appointment.RasterScanPayload{Coordinates: coordinatesToDomain(r.Coordinates)}
	case appointment.TypeFreeControl:
		return appointment.FreeControlPayload{Coordinates: coordinatesToDomain(r.Coordinates)}
	default:
		return nil
	}
}

func (c CoordinateRequest) toDomain() appointment.Coordinate {
	return appointment.Coordinate{Hours: c.Hours, Minutes: c.Minutes, Seconds: c.Seconds, Declination: c.Declination}
}

func coordinatesToDomain(cs []CoordinateRequest) []appointment.Coordinate {
	out := make([]appointment.Coordinate, len(cs))
	for i, c := range cs {
		out[i] = c.toDomain()
	}
	return out
}
