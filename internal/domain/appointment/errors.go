package appointment

import (
	"errors"
	"sort"
	"strings"
)

// ErrValidation marks every *ValidationError so callers can use errors.Is.
var ErrValidation = errors.New("appointment validation failed")

type ErrorTag string

const (
	TagID                ErrorTag = "ID"
	TagUserID            ErrorTag = "USER_ID"
	TagTelescopeID       ErrorTag = "TELESCOPE_ID"
	TagStartTime         ErrorTag = "START_TIME"
	TagEndTime           ErrorTag = "END_TIME"
	TagStatus            ErrorTag = "STATUS"
	TagPublic            ErrorTag = "PUBLIC"
	TagOverlap           ErrorTag = "OVERLAP"
	TagAllottedTime      ErrorTag = "ALLOTTED_TIME"
	TagAllottedTimeCap   ErrorTag = "ALLOTTED_TIME_CAP"
	TagCategoryOfService ErrorTag = "CATEGORY_OF_SERVICE"
	TagSearch            ErrorTag = "SEARCH"
	TagPageParams        ErrorTag = "PAGE_PARAMS"
	TagPriority          ErrorTag = "PRIORITY"
	TagType              ErrorTag = "TYPE"
	TagCoordinates       ErrorTag = "COORDINATES"
	TagRightAscension    ErrorTag = "RIGHT_ASCENSION"
	TagHours             ErrorTag = "HOURS"
	TagMinutes           ErrorTag = "MINUTES"
	TagSeconds           ErrorTag = "SECONDS"
	TagDeclination       ErrorTag = "DECLINATION"
	TagElevation         ErrorTag = "ELEVATION"
	TagAzimuth           ErrorTag = "AZIMUTH"
	TagCelestialBody     ErrorTag = "CELESTIAL_BODY"
)

// Errors is a tag to messages multimap. The zero value is ready to use.
type Errors struct {
	m map[ErrorTag][]string
}

func (e *Errors) Add(tag ErrorTag, msg string) {
	if e.m == nil {
		e.m = make(map[ErrorTag][]string)
	}
	e.m[tag] = append(e.m[tag], msg)
}

func (e *Errors) Merge(other Errors) {
	for tag, msgs := range other.m {
		for _, msg := range msgs {
			e.Add(tag, msg)
		}
	}
}

func (e Errors) Has(tag ErrorTag) bool {
	return len(e.m[tag]) > 0
}

func (e Errors) Get(tag ErrorTag) []string {
	return append([]string(nil), e.m[tag]...)
}

func (e Errors) IsEmpty() bool {
	return len(e.m) == 0
}

// Size counts messages, not tags.
func (e Errors) Size() int {
	n := 0
	for _, msgs := range e.m {
		n += len(msgs)
	}
	return n
}

func (e Errors) Tags() []ErrorTag {
	tags := make([]ErrorTag, 0, len(e.m))
	for tag := range e.m {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

func (e Errors) Map() map[ErrorTag][]string {
	out := make(map[ErrorTag][]string, len(e.m))
	for tag, msgs := range e.m {
		out[tag] = append([]string(nil), msgs...)
	}
	return out
}

// Err returns nil when no errors were collected.
func (e Errors) Err() error {
	if e.IsEmpty() {
		return nil
	}
	return &ValidationError{Errors: e}
}

type ValidationError struct {
	Errors Errors
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Errors.m))
	for _, tag := range v.Errors.Tags() {
		parts = append(parts, string(tag)+": "+strings.Join(v.Errors.m[tag], "; "))
	}
	return "appointment validation failed: " + strings.Join(parts, ", ")
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsNotFound is true when the only failure is a missing appointment.
func (v *ValidationError) IsNotFound() bool {
	tags := v.Errors.Tags()
	return len(tags) == 1 && tags[0] == TagID
}

func NewError(tag ErrorTag, msg string) error {
	var e Errors
	e.Add(tag, msg)
	return e.Err()
}

// AsValidation extracts the collected errors from err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
