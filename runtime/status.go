package runtime

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"parking-gate/contract"
	"parking-gate/domain"
	"parking-gate/presentation"

	"github.com/gorilla/mux"
)

const maxScanBody = 4 << 10

type StatusDeps struct {
	Controller   *Controller
	Board        *presentation.Board
	Store        contract.EventStore
	Camera       contract.Decoder
	Process      func() domain.ProcessStats
	RecentEvents int
}

type statusResponse struct {
	State    domain.WorkflowState    `json:"state"`
	Camera   domain.SourceState      `json:"camera"`
	Counters domain.WorkflowCounters `json:"counters"`
	Process  *domain.ProcessStats    `json:"process,omitempty"`
}

type scanRequest struct {
	Text string `json:"text"`
}

type outcomeResponse struct {
	RunID      string             `json:"runId"`
	Kind       domain.OutcomeKind `json:"kind"`
	DocID      string             `json:"docId,omitempty"`
	Flow       domain.Flow        `json:"flow,omitempty"`
	GateCycled bool               `json:"gateCycled"`
	Reason     string             `json:"reason,omitempty"`
}

// NewStatusRouter exposes the terminal state and the manual controls of the kiosk.
func NewStatusRouter(log *slog.Logger, deps StatusDeps) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	r.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		resp := statusResponse{
			State:    deps.Controller.State(),
			Camera:   deps.Camera.State(),
			Counters: deps.Controller.Counters(),
		}
		if deps.Process != nil {
			stats := deps.Process()
			resp.Process = &stats
		}
		writeJSON(w, log, http.StatusOK, resp)
	}).Methods(http.MethodGet)

	r.HandleFunc("/board", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, http.StatusOK, deps.Board.Snapshot())
	}).Methods(http.MethodGet)

	r.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		limit := deps.RecentEvents
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = min(n, deps.RecentEvents)
		}
		events, err := deps.Store.Recent(limit)
		if err != nil {
			log.Error("Unable to read scan events", "error", err)
			http.Error(w, "unable to read scan events", http.StatusInternalServerError)
			return
		}
		if events == nil {
			events = []domain.ScanEvent{}
		}
		writeJSON(w, log, http.StatusOK, events)
	}).Methods(http.MethodGet)

	r.HandleFunc("/scan", func(w http.ResponseWriter, r *http.Request) {
		text, err := readScanText(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		outcome := deps.Controller.HandleScan(r.Context(), text)
		status := http.StatusOK
		if outcome.Kind == domain.OutcomeIgnored {
			status = http.StatusConflict
		}
		writeJSON(w, log, status, toOutcomeResponse(outcome))
	}).Methods(http.MethodPost)

	r.HandleFunc("/scanner/start", func(w http.ResponseWriter, r *http.Request) {
		deps.Camera.Start()
		deps.Board.SetVisible(domain.ElementReader, true)
		writeJSON(w, log, http.StatusOK, map[string]domain.SourceState{"camera": deps.Camera.State()})
	}).Methods(http.MethodPost)

	return r
}

// readScanText accepts either {"text": "..."} or the raw decoded text as body.
func readScanText(r *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxScanBody))
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req scanRequest
		if err := json.Unmarshal(body, &req); err == nil && req.Text != "" {
			return req.Text, nil
		}
	}
	if len(body) == 0 {
		return "", fmt.Errorf("empty scan")
	}
	return string(body), nil
}

func toOutcomeResponse(o domain.Outcome) outcomeResponse {
	return outcomeResponse{
		RunID:      o.RunID.String(),
		Kind:       o.Kind,
		DocID:      o.DocID,
		Flow:       o.Flow,
		GateCycled: o.GateCycled,
		Reason:     o.Reason(),
	}
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("Unable to write response", "error", err)
	}
}
