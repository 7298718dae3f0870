package appointment

import (
	"github.com/google/uuid"
)

// Payload is the type-specific part of an appointment. The set of
// implementations is closed; Type selects which one accompanies a request.
type Payload interface {
	Type() Type
	validate(errs *Errors, facts Facts)
}

type PointPayload struct {
	Coordinate Coordinate
}

func (PointPayload) Type() Type { return TypePoint }

func (p PointPayload) validate(errs *Errors, _ Facts) {
	p.Coordinate.validate(errs)
}

type DriftScanPayload struct {
	Orientation Orientation
}

func (DriftScanPayload) Type() Type { return TypeDriftScan }

func (p DriftScanPayload) validate(errs *Errors, _ Facts) {
	p.Orientation.validate(errs)
}

type CelestialBodyPayload struct {
	CelestialBodyID uuid.UUID
}

func (CelestialBodyPayload) Type() Type { return TypeCelestialBody }

func (p CelestialBodyPayload) validate(errs *Errors, facts Facts) {
	if p.CelestialBodyID == uuid.Nil || !facts.CelestialBodyExists {
		errs.Add(TagCelestialBody, "Celestial body not found")
	}
}

// MinRasterScanCoordinates is the number of corners needed to describe a scan area.
const MinRasterScanCoordinates = 2

type RasterScanPayload struct {
	Coordinates []Coordinate
}

func (RasterScanPayload) Type() Type { return TypeRasterScan }

func (p RasterScanPayload) validate(errs *Errors, _ Facts) {
	if len(p.Coordinates) < MinRasterScanCoordinates {
		errs.Add(TagCoordinates, "Raster scan requires at least two coordinates")
	}
	validateAll(p.Coordinates, errs)
}

type FreeControlPayload struct {
	Coordinates []Coordinate
}

func (FreeControlPayload) Type() Type { return TypeFreeControl }

func (p FreeControlPayload) validate(errs *Errors, _ Facts) {
	if len(p.Coordinates) == 0 {
		errs.Add(TagCoordinates, "Free control requires at least one coordinate")
	}
	validateAll(p.Coordinates, errs)
}

func validateAll(coords []Coordinate, errs *Errors) {
	// one message per tag is enough for the caller
	var each Errors
	for _, c := range coords {
		c.validate(&each)
	}
	for _, tag := range each.Tags() {
		errs.Add(tag, each.Get(tag)[0])
	}
}

// CelestialBodyOf returns the referenced body for celestial body payloads.
func CelestialBodyOf(p Payload) (uuid.UUID, bool) {
	cb, ok := p.(CelestialBodyPayload)
	if !ok {
		return uuid.Nil, false
	}
	return cb.CelestialBodyID, true
}
