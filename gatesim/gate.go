// Package gatesim emulates the local gate controller: an HTTP front for the
// barrier that forwards every command over the serial line to the board.
package gatesim

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
)

type Command string

const (
	CommandOpen  Command = "OPEN"
	CommandClose Command = "CLOSE"
)

type Gate struct {
	mu       sync.Mutex
	log      *slog.Logger
	link     io.Writer
	open     bool
	commands []Command
}

// NewGate builds a gate. link may be nil when no board is attached.
func NewGate(log *slog.Logger, link io.Writer) *Gate {
	return &Gate{log: log, link: link}
}

func (g *Gate) Apply(cmd Command) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.link != nil {
		if _, err := fmt.Fprintf(g.link, "%s\r\n", cmd); err != nil {
			g.log.Error("Serial write failed", "command", cmd, "error", err)
			return err
		}
	}
	g.open = cmd == CommandOpen
	g.commands = append(g.commands, cmd)
	g.log.Info("Gate command applied", "command", cmd, "open", g.open)
	return nil
}

func (g *Gate) IsOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.open
}

func (g *Gate) History() []Command {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Command(nil), g.commands...)
}

func NewRouter(gate *Gate) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/open", commandHandler(gate, CommandOpen)).Methods(http.MethodGet)
	r.HandleFunc("/api/close", commandHandler(gate, CommandClose)).Methods(http.MethodGet)
	r.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"open":%t}`+"\n", gate.IsOpen())
	}).Methods(http.MethodGet)
	return r
}

func commandHandler(gate *Gate, cmd Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := gate.Apply(cmd); err != nil {
			http.Error(w, "serial link unavailable", http.StatusBadGateway)
			return
		}
		_, _ = fmt.Fprintln(w, "OK")
	}
}
