package domain

import "sync/atomic"

type WorkflowCounters struct {
	Scans          uint64
	Ignored        uint64
	InvalidPayload uint64
	Rejected       uint64
	Entries        uint64
	Exits          uint64
	RecordFailures uint64
	GateFailures   uint64
}

func NewWorkflowCounters() *WorkflowCounters {
	return &WorkflowCounters{}
}

func (c *WorkflowCounters) IncrScans() {
	atomic.AddUint64(&c.Scans, 1)
}

func (c *WorkflowCounters) IncrGateFailures() {
	atomic.AddUint64(&c.GateFailures, 1)
}

// Observe counts a finished outcome.
func (c *WorkflowCounters) Observe(o Outcome) {
	switch o.Kind {
	case OutcomeIgnored:
		atomic.AddUint64(&c.Ignored, 1)
	case OutcomeInvalidPayload:
		atomic.AddUint64(&c.InvalidPayload, 1)
	case OutcomeRejected, OutcomeTimeout:
		atomic.AddUint64(&c.Rejected, 1)
	case OutcomeRecordFailed:
		atomic.AddUint64(&c.RecordFailures, 1)
	case OutcomeRecorded:
		if o.Flow == FlowExit {
			atomic.AddUint64(&c.Exits, 1)
		} else {
			atomic.AddUint64(&c.Entries, 1)
		}
	}
}

// Snapshot returns a consistent-enough copy for reporting.
func (c *WorkflowCounters) Snapshot() WorkflowCounters {
	return WorkflowCounters{
		Scans:          atomic.LoadUint64(&c.Scans),
		Ignored:        atomic.LoadUint64(&c.Ignored),
		InvalidPayload: atomic.LoadUint64(&c.InvalidPayload),
		Rejected:       atomic.LoadUint64(&c.Rejected),
		Entries:        atomic.LoadUint64(&c.Entries),
		Exits:          atomic.LoadUint64(&c.Exits),
		RecordFailures: atomic.LoadUint64(&c.RecordFailures),
		GateFailures:   atomic.LoadUint64(&c.GateFailures),
	}
}
