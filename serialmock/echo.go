// Package serialmock plays the microcontroller at the other end of the gate's serial line.
package serialmock

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
)

const Reply = "Data received\n"

// Echo acknowledges every line it receives.
type Echo struct {
	log      *slog.Logger
	received func(line string)
}

func NewEcho(log *slog.Logger) *Echo {
	return &Echo{log: log}
}

// OnLine registers a callback invoked for every received line.
func (e *Echo) OnLine(fn func(line string)) *Echo {
	e.received = fn
	return e
}

// Serve reads CRLF-terminated lines from rw and answers each one with Reply.
// It returns nil on EOF.
func (e *Echo) Serve(ctx context.Context, rw io.ReadWriter) error {
	scanner := bufio.NewScanner(rw)
	scanner.Split(ScanCRLF)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()
		e.log.Info("Mock Arduino received data", "data", line)
		if e.received != nil {
			e.received(line)
		}
		if _, err := io.WriteString(rw, Reply); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// ScanCRLF is a bufio.SplitFunc for "\r\n" delimited lines. A bare "\n" also ends a line.
func ScanCRLF(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[:i], []byte("\r")), nil
	}
	if atEOF {
		return len(data), bytes.TrimSuffix(data, []byte("\r")), nil
	}
	return 0, nil, nil
}
