package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowState is the controller state. Anything but Idle means a scan is in flight.
type WorkflowState string

const (
	StateIdle       WorkflowState = "Idle"
	StateValidating WorkflowState = "Validating"
	StateActing     WorkflowState = "Acting"
)

type OutcomeKind string

const (
	OutcomeIgnored        OutcomeKind = "ignored"
	OutcomeInvalidPayload OutcomeKind = "invalid_payload"
	OutcomeRejected       OutcomeKind = "rejected"
	OutcomeRecorded       OutcomeKind = "recorded"
	OutcomeRecordFailed   OutcomeKind = "record_failed"
	OutcomeTimeout        OutcomeKind = "timeout"
)

// Outcome is the result of one HandleScan call.
// Err is nil only for OutcomeRecorded.
type Outcome struct {
	RunID      uuid.UUID
	Kind       OutcomeKind
	DocID      string
	Flow       Flow
	Validation *ValidationResult
	GateCycled bool
	Err        error
	StartedAt  time.Time
	EndedAt    time.Time
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.Kind == OutcomeRecorded
}

func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// ScanEvent is the audit record persisted for every outcome.
type ScanEvent struct {
	ID         uuid.UUID   `cbor:"1,keyasint" json:"id"`
	At         time.Time   `cbor:"2,keyasint" json:"at"`
	DocID      string      `cbor:"3,keyasint" json:"docId"`
	Flow       Flow        `cbor:"4,keyasint" json:"flow"`
	Outcome    OutcomeKind `cbor:"5,keyasint" json:"outcome"`
	Reason     string      `cbor:"6,keyasint" json:"reason"`
	GateCycled bool        `cbor:"7,keyasint" json:"gateCycled"`
	DurationMs int64       `cbor:"8,keyasint" json:"durationMs"`
}

func ToScanEvent(o Outcome) ScanEvent {
	return ScanEvent{
		ID:         o.RunID,
		At:         o.EndedAt,
		DocID:      o.DocID,
		Flow:       o.Flow,
		Outcome:    o.Kind,
		Reason:     o.Reason(),
		GateCycled: o.GateCycled,
		DurationMs: o.EndedAt.Sub(o.StartedAt).Milliseconds(),
	}
}
