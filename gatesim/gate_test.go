package gatesim

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type brokenLink struct{}

func (brokenLink) Write([]byte) (int, error) { return 0, errors.New("unplugged") }

func TestRouter_ForwardsCommandsToTheSerialLink(t *testing.T) {
	req := require.New(t)
	var link bytes.Buffer
	gate := NewGate(slog.Default(), &link)
	srv := httptest.NewServer(NewRouter(gate))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/open")
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
	req.True(gate.IsOpen())

	resp, err = http.Get(srv.URL + "/api/state")
	req.NoError(err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	req.JSONEq(`{"open":true}`, string(body))

	resp, err = http.Get(srv.URL + "/api/close")
	req.NoError(err)
	resp.Body.Close()
	req.False(gate.IsOpen())

	req.Equal("OPEN\r\nCLOSE\r\n", link.String())
	req.Equal([]Command{CommandOpen, CommandClose}, gate.History())
}

func TestRouter_SerialFailureIsA502(t *testing.T) {
	req := require.New(t)
	gate := NewGate(slog.Default(), brokenLink{})
	srv := httptest.NewServer(NewRouter(gate))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/open")
	req.NoError(err)
	resp.Body.Close()

	req.Equal(http.StatusBadGateway, resp.StatusCode)
	req.False(gate.IsOpen())
}

func TestRouter_WithoutLink(t *testing.T) {
	req := require.New(t)
	gate := NewGate(slog.Default(), nil)
	srv := httptest.NewServer(NewRouter(gate))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/open", "", nil)
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/open")
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
}
