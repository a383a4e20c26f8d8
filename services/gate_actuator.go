package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"parking-gate/domain"
	"parking-gate/errors"
)

const (
	openPath  = "/api/open"
	closePath = "/api/close"
)

// GateActuator drives the barrier through the local gate controller.
// Commands are never retried.
type GateActuator struct {
	log            *slog.Logger
	client         *http.Client
	baseURL        string
	closeDelay     time.Duration
	commandTimeout time.Duration
	counters       *domain.WorkflowCounters
	wg             sync.WaitGroup
}

func NewGateActuator(log *slog.Logger, client *http.Client, baseURL string,
	closeDelay, commandTimeout time.Duration, counters *domain.WorkflowCounters) *GateActuator {
	return &GateActuator{
		log:            log,
		client:         client,
		baseURL:        baseURL,
		closeDelay:     closeDelay,
		commandTimeout: commandTimeout,
		counters:       counters,
	}
}

func (g *GateActuator) Open(ctx context.Context) error {
	return g.command(ctx, openPath)
}

func (g *GateActuator) Close(ctx context.Context) error {
	return g.command(ctx, closePath)
}

// Cycle opens the gate in the background and, once open, closes it after closeDelay.
// The close timer cannot be cancelled once scheduled.
func (g *GateActuator) Cycle(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		openCtx, cancel := context.WithTimeout(base, g.commandTimeout)
		err := g.Open(openCtx)
		cancel()
		if err != nil {
			return
		}

		g.log.Info("Gate open, closing scheduled", "delay", g.closeDelay)
		g.wg.Add(1)
		time.AfterFunc(g.closeDelay, func() {
			defer g.wg.Done()
			closeCtx, cancel := context.WithTimeout(base, g.commandTimeout)
			defer cancel()
			_ = g.Close(closeCtx)
		})
	}()
}

// Wait blocks until every pending open and scheduled close has run.
func (g *GateActuator) Wait() {
	g.wg.Wait()
}

func (g *GateActuator) command(ctx context.Context, path string) error {
	if _, err := send(ctx, g.client, g.log, http.MethodGet, joinURL(g.baseURL, path), nil); err != nil {
		if g.counters != nil {
			g.counters.IncrGateFailures()
		}
		g.log.Error("Gate command failed", "command", path, "error", err)
		return fmt.Errorf("%w: %s: %w", errors.ErrGateCommand, path, err)
	}
	g.log.Info("Gate command sent", "command", path)
	return nil
}
