package workers

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"parking-gate/domain"

	"github.com/stretchr/testify/require"
)

func TestHeartbeatWorker_SamplesTheProcess(t *testing.T) {
	req := require.New(t)
	counters := domain.NewWorkflowCounters()
	counters.IncrScans()
	worker := NewHeartbeatWorker(slog.Default(), 10*time.Millisecond, counters.Snapshot)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req.NoError(worker.Run(ctx))

	latest := worker.Latest()
	req.Equal(int32(os.Getpid()), latest.PID)
	req.NotZero(latest.RSSBytes)
	req.Positive(latest.Goroutines)
	req.False(latest.At.IsZero())
}
