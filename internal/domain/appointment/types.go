package appointment

type Status string

const (
	StatusRequested  Status = "REQUESTED"
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCanceled   Status = "CANCELED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusScheduled, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the status still occupies the telescope.
func (s Status) IsActive() bool {
	switch s {
	case StatusRequested, StatusScheduled, StatusInProgress:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// ActiveStatuses are the statuses considered by conflict detection.
func ActiveStatuses() []Status {
	return []Status{StatusRequested, StatusScheduled, StatusInProgress}
}

type Priority string

const (
	PriorityPrimary   Priority = "PRIMARY"
	PrioritySecondary Priority = "SECONDARY"
)

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityPrimary, PrioritySecondary:
		return true
	default:
		return false
	}
}

type Type string

const (
	TypePoint         Type = "POINT"
	TypeDriftScan     Type = "DRIFT_SCAN"
	TypeCelestialBody Type = "CELESTIAL_BODY"
	TypeRasterScan    Type = "RASTER_SCAN"
	TypeFreeControl   Type = "FREE_CONTROL"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypePoint, TypeDriftScan, TypeCelestialBody, TypeRasterScan, TypeFreeControl:
		return true
	default:
		return false
	}
}
