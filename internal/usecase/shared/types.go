package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AuditTable string

const (
	AuditTableAppointment AuditTable = "APPOINTMENT"
	AuditTableUser        AuditTable = "USER"
)

type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionRetrieve AuditAction = "RETRIEVE"
	AuditActionUpdate   AuditAction = "UPDATE"
	AuditActionDelete   AuditAction = "DELETE"
)

// AuditEntry is one row of the audit trail.
type AuditEntry struct {
	ID            uuid.UUID   `json:"id"`
	AffectedTable AuditTable  `json:"affected_table"`
	Action        AuditAction `json:"action"`
	Event         string      `json:"event,omitempty"`
	Success       bool        `json:"success"`
	RecordID      *uuid.UUID  `json:"record_id,omitempty"`
	UserID        *uuid.UUID  `json:"user_id,omitempty"`
	ErrorTags     []string    `json:"error_tags,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

// AuditPublisher forwards committed audit entries to downstream consumers.
type AuditPublisher interface {
	Publish(ctx context.Context, entry AuditEntry) error
}
