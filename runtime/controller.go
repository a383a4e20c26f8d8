// Package runtime sequences decode, validate and act.
// It owns the single in-flight workflow and nothing else.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"parking-gate/contract"
	"parking-gate/domain"
	gateErrors "parking-gate/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Controller struct {
	mu    sync.Mutex
	state domain.WorkflowState

	log       *slog.Logger
	decoder   contract.Decoder
	validator contract.Validator
	recorder  contract.VehicleRecorder
	gate      contract.GateActuator
	presenter contract.Presenter
	store     contract.EventStore
	counters  *domain.WorkflowCounters

	workflowTimeout time.Duration
	rearmDelay      time.Duration
	now             func() time.Time
}

type ControllerConfig struct {
	WorkflowTimeout time.Duration
	// RearmDelay restarts the decoder after a completed workflow. Zero leaves it stopped.
	RearmDelay time.Duration
}

func NewController(
	log *slog.Logger,
	decoder contract.Decoder,
	validator contract.Validator,
	recorder contract.VehicleRecorder,
	gate contract.GateActuator,
	presenter contract.Presenter,
	store contract.EventStore,
	counters *domain.WorkflowCounters,
	config ControllerConfig,
) *Controller {
	return &Controller{
		state:           domain.StateIdle,
		log:             log,
		decoder:         decoder,
		validator:       validator,
		recorder:        recorder,
		gate:            gate,
		presenter:       presenter,
		store:           store,
		counters:        counters,
		workflowTimeout: config.WorkflowTimeout,
		rearmDelay:      config.RearmDelay,
		now:             time.Now,
	}
}

func (c *Controller) State() domain.WorkflowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Counters() domain.WorkflowCounters {
	return c.counters.Snapshot()
}

// HandleScan runs one validate-then-act workflow for a decoded QR text.
// A scan arriving while another workflow is in flight is dropped.
func (c *Controller) HandleScan(ctx context.Context, raw string) domain.Outcome {
	c.counters.IncrScans()
	outcome := domain.Outcome{RunID: uuid.New(), StartedAt: c.now()}

	if !c.begin() {
		c.log.Info("Scan already in progress, ignoring", "run", outcome.RunID)
		outcome.Kind = domain.OutcomeIgnored
		outcome.Err = gateErrors.ErrWorkflowBusy
		return c.finish(outcome)
	}

	// Only a camera that was in use gets restarted after the workflow.
	rearm := c.rearmDelay > 0 && c.decoder.State() != domain.SourceStopped

	c.presenter.SetVisible(domain.ElementLoader, true)
	c.presenter.SetVisible(domain.ElementConfirmButton, false)
	c.decoder.Pause()

	payload, err := domain.ParseScanPayload(raw)
	if err != nil {
		c.log.Warn("Error parsing QR code data", "run", outcome.RunID, "error", err)
		outcome.Kind = domain.OutcomeInvalidPayload
		outcome.Err = err
		c.abort()
		return c.finish(outcome)
	}
	outcome.DocID = payload.DocID
	c.presenter.SetText(domain.ElementQRResult, "Scanned result: "+payload.DocID)

	if c.workflowTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.workflowTimeout)
		defer cancel()
	}

	result, err := c.validator.Validate(ctx, payload.DocID)
	if err != nil {
		outcome.Kind = lo.Ternary(errors.Is(ctx.Err(), context.DeadlineExceeded), domain.OutcomeTimeout, domain.OutcomeRejected)
		outcome.Err = c.timeoutOr(ctx, err)
		if errors.Is(err, gateErrors.ErrUnknownAction) && result.Message != "" {
			c.presenter.Alert(result.Message)
		}
		c.presenter.SetText(domain.ElementQRResult, fmt.Sprintf("Scanned result: %s (Not valid)", payload.DocID))
		c.log.Info("QR Code is NOT valid", "run", outcome.RunID, "docId", payload.DocID, "error", err)
		c.abort()
		return c.finish(outcome)
	}
	outcome.Validation = &result
	outcome.Flow = result.Flow()
	c.presenter.SetText(domain.ElementQRResult, fmt.Sprintf("Scanned result: %s (Valid)", payload.DocID))

	c.transition(domain.StateActing)
	c.log.Info("Dispatching vehicle flow", "run", outcome.RunID, "docId", payload.DocID, "flow", outcome.Flow)

	switch outcome.Flow {
	case domain.FlowExit:
		err = c.recorder.Exit(ctx, result)
	default:
		err = c.recorder.Enter(ctx, result)
	}

	if err != nil {
		outcome.Kind = lo.Ternary(errors.Is(ctx.Err(), context.DeadlineExceeded), domain.OutcomeTimeout, domain.OutcomeRecordFailed)
		outcome.Err = c.timeoutOr(ctx, err)
		c.log.Error("Vehicle flow failed", "run", outcome.RunID, "flow", outcome.Flow, "error", err)
	} else {
		outcome.Kind = domain.OutcomeRecorded
		c.gate.Cycle(ctx)
		outcome.GateCycled = true
		c.presenter.SetText(domain.ElementConfirmButton, confirmation(outcome.Flow, result))
	}

	c.complete(rearm)
	return c.finish(outcome)
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != domain.StateIdle {
		return false
	}
	c.state = domain.StateValidating
	return true
}

func (c *Controller) transition(state domain.WorkflowState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// abort ends a workflow that never reached the gate: the decoder keeps scanning.
func (c *Controller) abort() {
	c.presenter.SetVisible(domain.ElementLoader, false)
	c.decoder.Resume()
	c.transition(domain.StateIdle)
}

// complete ends a workflow that reached the vehicle API: the camera is released.
// With rearm set, the camera is started again after rearmDelay.
func (c *Controller) complete(rearm bool) {
	c.presenter.SetVisible(domain.ElementLoader, false)
	c.decoder.Stop()
	c.presenter.SetVisible(domain.ElementStartScanning, true)
	c.transition(domain.StateIdle)

	if rearm {
		time.AfterFunc(c.rearmDelay, func() {
			if c.State() == domain.StateIdle && c.decoder.State() == domain.SourceStopped {
				c.decoder.Start()
			}
		})
	}
}

func (c *Controller) finish(outcome domain.Outcome) domain.Outcome {
	outcome.EndedAt = c.now()
	c.counters.Observe(outcome)
	if outcome.Kind == domain.OutcomeIgnored {
		return outcome
	}
	if c.store != nil {
		if err := c.store.Store(domain.ToScanEvent(outcome)); err != nil {
			c.log.Error("Unable to store scan event", "run", outcome.RunID, "error", err)
		}
	}
	return outcome
}

func (c *Controller) timeoutOr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", gateErrors.ErrWorkflowTimeout, err)
	}
	return err
}

func confirmation(flow domain.Flow, result domain.ValidationResult) string {
	name := lo.CoalesceOrEmpty(result.FullName, result.PlateNumber, result.DocID)
	if flow == domain.FlowExit {
		return "Goodbye " + name
	}
	return "Welcome " + name
}
