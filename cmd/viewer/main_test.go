package main

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
	"time"

	"parking-gate/domain"
	"parking-gate/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_ToRow_Shortens_Key_And_Fills_Blanks(t *testing.T) {
	req := require.New(t)
	id := uuid.MustParse("0b5f3a1e-7c2d-4e8f-9a10-1234567890ab")
	key := "scan:0000001760000000000:" + id.String()

	row := toRow(key, domain.ScanEvent{
		ID:         id,
		At:         time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC),
		DocID:      "DOC-1",
		Outcome:    domain.OutcomeInvalidPayload,
		DurationMs: 3,
		Reason:     "bad payload",
	})

	req.Equal([]string{
		"scan:0000001760000000000:0b5f3a1e",
		"2026-10-16 08:30:00",
		"DOC-1",
		"-",
		"invalid_payload",
		"-",
		"3ms",
		"bad payload",
	}, row)
}

func Test_Render_Filters_By_DocID(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repositories.NewScanEventRepository(db, slog.Default())
	now := time.Now().UTC()
	for i, docID := range []string{"DOC-A", "DOC-B"} {
		req.NoError(repo.Store(domain.ScanEvent{
			ID:         uuid.New(),
			At:         now.Add(time.Duration(i) * time.Second),
			DocID:      docID,
			Flow:       domain.FlowEntry,
			Outcome:    domain.OutcomeRecorded,
			GateCycled: true,
		}))
	}

	var out bytes.Buffer
	req.NoError(render(&out, repo, "DOC-B"))
	req.Contains(out.String(), "DOC-B")
	req.Contains(out.String(), "cycled")
	req.NotContains(out.String(), "DOC-A")
}

func Test_LoadConfig_Needs_No_Backend(t *testing.T) {
	req := require.New(t)
	for _, key := range []string{"BACKEND_URL", "LOG_LEVEL"} {
		t.Setenv(key, "")
		req.NoError(os.Unsetenv(key))
	}
	t.Setenv("BADGER_FILEPATH", "/var/lib/gate/badger")

	config, err := loadConfig()

	req.NoError(err)
	req.Equal("/var/lib/gate/badger", config.BadgerFilepath)
	req.Equal("INFO", config.LogLevel)
}
