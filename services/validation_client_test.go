package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"parking-gate/domain"
	gateErrors "parking-gate/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newValidationServer(t *testing.T, status int, body string, calls *int32, gotDocID *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.URL.Path != validatePath || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var payload validateRequest
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if gotDocID != nil {
			*gotDocID = payload.DocID
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestValidationClient_Validate(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	tests := []struct {
		description string
		status      int
		body        string
		wantErr     error
		want        domain.ValidationResult
	}{
		{
			description: "Should map an enter response",
			status:      http.StatusOK,
			body: `{"action":"enter","message":"Welcome","data":{"status":"outside","fullName":"Ada Lovelace",
				"email":"ada@example.com","phone":"555-0100","plateNumber":"AB-123-CD","vehicleModel":"Zoe"}}`,
			want: domain.ValidationResult{
				DocID: "DOC-1", Action: domain.ActionEnter, Status: "outside", FullName: "Ada Lovelace",
				Email: "ada@example.com", Phone: "555-0100", PlateNumber: "AB-123-CD", VehicleModel: "Zoe",
				Message: "Welcome",
			},
		},
		{
			description: "Should map an exit response with missing personal fields",
			status:      http.StatusOK,
			body:        `{"action":"EXIT","data":{"status":"inside"}}`,
			want:        domain.ValidationResult{DocID: "DOC-1", Action: domain.ActionExit, Status: "inside"},
		},
		{
			description: "Should fail on an unknown action and keep the message",
			status:      http.StatusOK,
			body:        `{"action":"park","message":"Subscription expired"}`,
			wantErr:     gateErrors.ErrUnknownAction,
			want:        domain.ValidationResult{DocID: "DOC-1", Action: "park", Message: "Subscription expired"},
		},
		{
			description: "Should fail when the action is missing",
			status:      http.StatusOK,
			body:        `{"message":"Unknown document"}`,
			wantErr:     gateErrors.ErrUnknownAction,
			want:        domain.ValidationResult{DocID: "DOC-1", Message: "Unknown document"},
		},
		{
			description: "Should report a rejected legacy response",
			status:      http.StatusOK,
			body:        `{"valid":false}`,
			wantErr:     gateErrors.ErrDocumentRejected,
			want:        domain.ValidationResult{DocID: "DOC-1"},
		},
		{
			description: "Should fail on non-2xx",
			status:      http.StatusInternalServerError,
			body:        `{"action":"enter"}`,
			wantErr:     gateErrors.ErrUnexpectedStatus,
			want:        domain.ValidationResult{DocID: "DOC-1"},
		},
		{
			description: "Should fail on a body that is not JSON",
			status:      http.StatusOK,
			body:        `<html>oops</html>`,
			wantErr:     gateErrors.ErrInvalidResponse,
			want:        domain.ValidationResult{DocID: "DOC-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			var calls int32
			var gotDocID string
			srv := newValidationServer(t, tt.status, tt.body, &calls, &gotDocID)
			client := NewValidationClient(log, NewHTTPClient(time.Second), srv.URL)

			result, err := client.Validate(context.Background(), "  DOC-1 ")

			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
			} else {
				req.NoError(err)
			}
			req.Equal(tt.want, result)
			req.Equal(int32(1), atomic.LoadInt32(&calls))
			req.Equal("DOC-1", gotDocID)
		})
	}
}

func TestValidationClient_EmptyDocIDNeverCallsTheAPI(t *testing.T) {
	req := require.New(t)
	var calls int32
	srv := newValidationServer(t, http.StatusOK, `{"action":"enter"}`, &calls, nil)
	client := NewValidationClient(slog.Default(), NewHTTPClient(time.Second), srv.URL)

	_, err := client.Validate(context.Background(), "   ")

	req.ErrorIs(err, gateErrors.ErrEmptyDocID)
	req.Zero(atomic.LoadInt32(&calls))
}

func TestValidationClient_TransportError(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client := NewValidationClient(slog.Default(), NewHTTPClient(time.Second), url)

	_, err := client.Validate(context.Background(), "DOC-1")

	req.Error(err)
	req.False(errors.Is(err, gateErrors.ErrUnknownAction))
}
