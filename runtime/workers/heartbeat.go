package workers

import (
	"context"
	"log/slog"
	"os"
	goruntime "runtime"
	"sync"
	"time"

	"parking-gate/domain"

	"github.com/shirou/gopsutil/process"
)

type CountersProvider func() domain.WorkflowCounters

// HeartbeatWorker periodically samples the process and logs it together with
// the workflow counters. The latest sample is served by the status endpoint.
type HeartbeatWorker struct {
	log      *slog.Logger
	interval time.Duration
	counters CountersProvider

	mu     sync.RWMutex
	latest domain.ProcessStats
}

func NewHeartbeatWorker(log *slog.Logger, interval time.Duration, counters CountersProvider) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, interval: interval, counters: counters}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker", "interval", w.interval)
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.beat(p)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.beat(p)
		}
	}
}

func (w *HeartbeatWorker) Latest() domain.ProcessStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}

func (w *HeartbeatWorker) beat(p *process.Process) {
	stats, err := selfStats(p)
	if err != nil {
		w.log.Error("Failed to collect self stats", "err", err)
		return
	}
	w.mu.Lock()
	w.latest = stats
	w.mu.Unlock()

	counters := w.counters()
	w.log.Info("Heartbeat",
		"status", stats.Status,
		"cpu", stats.CPUPercent,
		"rss", stats.RSSBytes,
		"goroutines", stats.Goroutines,
		"scans", counters.Scans,
		"entries", counters.Entries,
		"exits", counters.Exits,
		"gate_failures", counters.GateFailures,
	)
}

// selfStats retrieves memory, CPU and OS status for the given process.
func selfStats(p *process.Process) (domain.ProcessStats, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return domain.ProcessStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return domain.ProcessStats{}, err
	}
	status, err := p.Status()
	if err != nil {
		return domain.ProcessStats{}, err
	}
	return domain.ProcessStats{
		PID:        p.Pid,
		Status:     domain.ToStatus(status),
		CPUPercent: cpuPercent,
		RSSBytes:   memInfo.RSS,
		Goroutines: goruntime.NumGoroutine(),
		At:         time.Now(),
	}, nil
}
