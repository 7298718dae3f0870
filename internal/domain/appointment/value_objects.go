package appointment

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeSlot = errors.New("start time must be before end time")

// TimeSlot is the half-open interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps treats touching endpoints as disjoint.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) StartsBefore(t time.Time) bool {
	return ts.start.Before(t)
}

func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.UTC().Format(time.RFC3339Nano), ts.end.UTC().Format(time.RFC3339Nano))
}

const (
	MaxHours       = 23
	MaxMinutes     = 59
	MaxSeconds     = 59
	MinDeclination = -90.0
	MaxDeclination = 90.0
	MinElevation   = 0.0
	MaxElevation   = 90.0
	MinAzimuth     = 0.0
	MaxAzimuth     = 360.0 // exclusive
)

// Coordinate is an equatorial position: right ascension as h/m/s plus declination in degrees.
type Coordinate struct {
	Hours       int
	Minutes     int
	Seconds     int
	Declination float64
}

func (c Coordinate) validate(errs *Errors) {
	if c.Hours < 0 || c.Hours > MaxHours {
		errs.Add(TagHours, fmt.Sprintf("Hours must be between 0 and %d", MaxHours))
	}
	if c.Minutes < 0 || c.Minutes > MaxMinutes {
		errs.Add(TagMinutes, fmt.Sprintf("Minutes must be between 0 and %d", MaxMinutes))
	}
	if c.Seconds < 0 || c.Seconds > MaxSeconds {
		errs.Add(TagSeconds, fmt.Sprintf("Seconds must be between 0 and %d", MaxSeconds))
	}
	if c.Declination < MinDeclination || c.Declination > MaxDeclination {
		errs.Add(TagDeclination, "Declination must be between -90 and 90")
	}
}

type Orientation struct {
	Elevation float64
	Azimuth   float64
}

func (o Orientation) validate(errs *Errors) {
	if o.Elevation < MinElevation || o.Elevation > MaxElevation {
		errs.Add(TagElevation, "Elevation must be between 0 and 90")
	}
	if o.Azimuth < MinAzimuth || o.Azimuth >= MaxAzimuth {
		errs.Add(TagAzimuth, "Azimuth must be between 0 and 360")
	}
}
