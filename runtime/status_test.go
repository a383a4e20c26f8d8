package runtime

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parking-gate/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newStatusServer(t *testing.T, f *fixture) (*httptest.Server, *Controller) {
	controller := f.controller(ControllerConfig{})
	router := NewStatusRouter(slog.Default(), StatusDeps{
		Controller:   controller,
		Board:        f.board,
		Store:        f.store,
		Camera:       f.decoder,
		Process:      func() domain.ProcessStats { return domain.ProcessStats{PID: 42} },
		RecentEvents: 10,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, controller
}

func TestStatusRouter_HealthAndStatus(t *testing.T) {
	req := require.New(t)
	f, _ := newFixture(t)
	srv, _ := newStatusServer(t, f)

	resp, err := http.Get(srv.URL + "/health")
	req.NoError(err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	req.Equal("OK\n", string(body))

	f.decoder.EXPECT().State().Return(domain.SourceRunning)
	resp, err = http.Get(srv.URL + "/status")
	req.NoError(err)
	defer resp.Body.Close()

	var status statusResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&status))
	req.Equal(domain.StateIdle, status.State)
	req.Equal(domain.SourceRunning, status.Camera)
	req.Equal(int32(42), status.Process.PID)
}

func TestStatusRouter_Events(t *testing.T) {
	req := require.New(t)
	f, _ := newFixture(t)
	srv, _ := newStatusServer(t, f)

	events := []domain.ScanEvent{{ID: uuid.New(), At: time.Now().UTC(), DocID: "DOC-1", Outcome: domain.OutcomeRecorded}}
	f.store.EXPECT().Recent(3).Return(events, nil)

	resp, err := http.Get(srv.URL + "/events?limit=3")
	req.NoError(err)
	defer resp.Body.Close()

	var got []domain.ScanEvent
	req.NoError(json.NewDecoder(resp.Body).Decode(&got))
	req.Len(got, 1)
	req.Equal("DOC-1", got[0].DocID)

	resp, err = http.Get(srv.URL + "/events?limit=nope")
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestStatusRouter_ScanRunsTheWorkflow(t *testing.T) {
	req := require.New(t)
	f, _ := newFixture(t)
	srv, controller := newStatusServer(t, f)

	f.decoder.EXPECT().Pause()
	f.decoder.EXPECT().Resume()
	f.store.EXPECT().Store(gomock.Any()).Return(nil)

	resp, err := http.Post(srv.URL+"/scan", "text/plain", strings.NewReader("not json"))
	req.NoError(err)
	defer resp.Body.Close()

	var outcome outcomeResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&outcome))
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal(domain.OutcomeInvalidPayload, outcome.Kind)
	req.NotEmpty(outcome.Reason)
	req.Equal(uint64(1), controller.Counters().InvalidPayload)
}

func TestStatusRouter_ScannerStart(t *testing.T) {
	req := require.New(t)
	f, _ := newFixture(t)
	srv, _ := newStatusServer(t, f)

	f.decoder.EXPECT().Start()
	f.decoder.EXPECT().State().Return(domain.SourceRunning)

	resp, err := http.Post(srv.URL+"/scanner/start", "application/json", nil)
	req.NoError(err)
	resp.Body.Close()

	req.Equal(http.StatusOK, resp.StatusCode)
	req.True(f.board.Element(domain.ElementReader).Visible)
}

func TestReadScanText(t *testing.T) {
	req := require.New(t)

	r := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(`{"text":"{\"docId\":\"A\"}"}`))
	r.Header.Set("Content-Type", "application/json")
	text, err := readScanText(r)
	req.NoError(err)
	req.Equal(`{"docId":"A"}`, text)

	// A raw payload posted as JSON is passed through untouched
	r = httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(`{"docId":"B"}`))
	r.Header.Set("Content-Type", "application/json")
	text, err = readScanText(r)
	req.NoError(err)
	req.Equal(`{"docId":"B"}`, text)

	r = httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(""))
	_, err = readScanText(r)
	req.Error(err)
}

