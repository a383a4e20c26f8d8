//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"parking-gate/domain"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Decoder is the camera side of the workflow.
// It only knows how to be started, paused, resumed and stopped.
type Decoder interface {
	Start()
	Pause()
	Resume()
	Stop()
	State() domain.SourceState
}

type Validator interface {
	Validate(ctx context.Context, docID string) (domain.ValidationResult, error)
}

type VehicleRecorder interface {
	Enter(ctx context.Context, result domain.ValidationResult) error
	Exit(ctx context.Context, result domain.ValidationResult) error
}

type GateActuator interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	// Cycle opens the gate and schedules the close. It never blocks.
	Cycle(ctx context.Context)
}

type Presenter interface {
	SetText(id domain.ElementID, text string)
	SetVisible(id domain.ElementID, visible bool)
	Alert(message string)
}

type EventStore interface {
	Store(event domain.ScanEvent) error
	Recent(limit int) ([]domain.ScanEvent, error)
}

type ScanHandler interface {
	HandleScan(ctx context.Context, raw string) domain.Outcome
}
