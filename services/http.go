package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"parking-gate/errors"

	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}

// send issues a request with an optional JSON body and returns the raw response body.
// Any non-2xx status is reported as ErrUnexpectedStatus.
func send(ctx context.Context, client *http.Client, log *slog.Logger, method, url string, body any) ([]byte, error) {
	reqID := uuid.NewString()
	start := time.Now()

	var reader io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		reader = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("http.request", "req_id", reqID, "method", method, "url", url)

	resp, err := client.Do(req)
	if err != nil {
		log.Error("http.send_error", "req_id", reqID, "url", url, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn("http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidResponse, err)
	}

	log.Debug("http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return raw, fmt.Errorf("%w: %d from %s", errors.ErrUnexpectedStatus, resp.StatusCode, url)
	}
	return raw, nil
}
