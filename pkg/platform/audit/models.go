// Package audit defines the append-only event model shared by all sinks.
// Events are emitted from domain logic and fanned out to storage or brokers;
// writes are best-effort and must never abort the emitting pipeline.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Severity routes events to the right level of operator attention.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Well-known event actions.
const (
	ActionRecordResolved    = "RECORD_RESOLVED"
	ActionRecordQuarantined = "RECORD_QUARANTINED"
	ActionRecordDeduped     = "RECORD_DEDUPED"
	ActionStandardizeField  = "STANDARDIZE_FIELD"
	ActionReviewApplied     = "REVIEW_APPLIED"
	ActionRunCompleted      = "RUN_COMPLETED"
)

// Event is one append-only audit entry. Keep it transport-agnostic so
// stores and brokers can fan out without conversion layers.
type Event struct {
	ID        uuid.UUID         `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Action    string            `json:"action"`
	Source    string            `json:"source"`
	RecordID  string            `json:"record_id,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Severity  Severity          `json:"severity"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Sink is the append-only destination for audit events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
