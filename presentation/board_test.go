package presentation

import (
	"bytes"
	"testing"

	"parking-gate/domain"

	"github.com/stretchr/testify/require"
)

func TestBoard_TracksElements(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	board := NewBoard(&out, false)

	// Given a fresh board, only the start button is visible
	req.True(board.Element(domain.ElementStartScanning).Visible)
	req.False(board.Element(domain.ElementLoader).Visible)

	board.SetText(domain.ElementQRResult, "Scanned result: DOC-1")
	board.SetVisible(domain.ElementLoader, true)
	board.SetVisible(domain.ElementLoader, false)
	board.SetVisible(domain.ElementConfirmButton, false)

	req.Equal("Scanned result: DOC-1", board.Element(domain.ElementQRResult).Text)
	req.False(board.Element(domain.ElementLoader).Visible)

	snapshot := board.Snapshot()
	req.Len(snapshot, len(domain.AllElements))
	for i, id := range domain.AllElements {
		req.Equal(id, snapshot[i].ID)
	}

	req.Contains(out.String(), "[qr-result] Scanned result: DOC-1")
	req.Contains(out.String(), "[loader] processing...")
	req.Contains(out.String(), "[loader] ready")
}

func TestBoard_Alert(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	board := NewBoard(&out, false)

	board.Alert("Subscription expired")

	req.Equal("Subscription expired", board.LastAlert())
	req.Contains(out.String(), "[alert] Subscription expired")
}
