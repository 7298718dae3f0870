package converter

import (
	"encoding/json"
	"fmt"

	"telescope-scheduler/internal/domain/appointment"

	"github.com/google/uuid"
)

type coordinateJSON struct {
	Hours       int     `json:"hours"`
	Minutes     int     `json:"minutes"`
	Seconds     int     `json:"seconds"`
	Declination float64 `json:"declination"`
}

type orientationJSON struct {
	Elevation float64 `json:"elevation"`
	Azimuth   float64 `json:"azimuth"`
}

type celestialBodyJSON struct {
	CelestialBodyID uuid.UUID `json:"celestial_body_id"`
}

type coordinatesJSON struct {
	Coordinates []coordinateJSON `json:"coordinates"`
}

// EncodePayload renders the type-specific part of an appointment for the
// payload jsonb column.
func EncodePayload(p appointment.Payload) ([]byte, error) {
	var v any
	switch p := p.(type) {
	case appointment.PointPayload:
		v = coordinateToJSON(p.Coordinate)
	case appointment.DriftScanPayload:
		v = orientationJSON{Elevation: p.Orientation.Elevation, Azimuth: p.Orientation.Azimuth}
	case appointment.CelestialBodyPayload:
		v = celestialBodyJSON{CelestialBodyID: p.CelestialBodyID}
	case appointment.RasterScanPayload:
		v = coordinatesJSON{Coordinates: coordinatesToJSON(p.Coordinates)}
	case appointment.FreeControlPayload:
		v = coordinatesJSON{Coordinates: coordinatesToJSON(p.Coordinates)}
	default:
		return nil, fmt.Errorf("unsupported payload %T", p)
	}
	return json.Marshal(v)
}

// DecodePayload is the inverse of EncodePayload. typ comes from the row's type column.
func DecodePayload(typ appointment.Type, raw []byte) (appointment.Payload, error) {
	switch typ {
	case appointment.TypePoint:
		var c coordinateJSON
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return appointment.PointPayload{Coordinate: coordinateFromJSON(c)}, nil
	case appointment.TypeDriftScan:
		var o orientationJSON
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, err
		}
		return appointment.DriftScanPayload{
			Orientation: appointment.Orientation{Elevation: o.Elevation, Azimuth: o.Azimuth},
		}, nil
	case appointment.TypeCelestialBody:
		var cb celestialBodyJSON
		if err := json.Unmarshal(raw, &cb); err != nil {
			return nil, err
		}
		return appointment.CelestialBodyPayload{CelestialBodyID: cb.CelestialBodyID}, nil
	case appointment.TypeRasterScan:
		var cs coordinatesJSON
		if err := json.Unmarshal(raw, &cs); err != nil {
			return nil, err
		}
		return appointment.RasterScanPayload{Coordinates: coordinatesFromJSON(cs.Coordinates)}, nil
	case appointment.TypeFreeControl:
		var cs coordinatesJSON
		if err := json.Unmarshal(raw, &cs); err != nil {
			return nil, err
		}
		return appointment.FreeControlPayload{Coordinates: coordinatesFromJSON(cs.Coordinates)}, nil
	default:
		return nil, fmt.Errorf("unknown appointment type %q", typ)
	}
}

func coordinateToJSON(c appointment.Coordinate) coordinateJSON {
	return coordinateJSON{Hours: c.Hours, Minutes: c.Minutes, Seconds: c.Seconds, Declination: c.Declination}
}

func coordinateFromJSON(c coordinateJSON) appointment.Coordinate {
	return appointment.Coordinate{Hours: c.Hours, Minutes: c.Minutes, Seconds: c.Seconds, Declination: c.Declination}
}

func coordinatesToJSON(cs []appointment.Coordinate) []coordinateJSON {
	out := make([]coordinateJSON, len(cs))
	for i, c := range cs {
		out[i] = coordinateToJSON(c)
	}
	return out
}

func coordinatesFromJSON(cs []coordinateJSON) []appointment.Coordinate {
	out := make([]appointment.Coordinate, len(cs))
	for i, c := range cs {
		out[i] = coordinateFromJSON(c)
	}
	return out
}
