package domain

// ElementID names a region of the terminal UI. The identifiers match the
// markup of the browser kiosk so both front ends stay interchangeable.
type ElementID string

const (
	ElementQRResult      ElementID = "qr-result"
	ElementConfirmButton ElementID = "confirm-btn"
	ElementStartScanning ElementID = "start-scanning"
	ElementReader        ElementID = "reader"
	ElementLoader        ElementID = "loader"
)

var AllElements = []ElementID{
	ElementQRResult,
	ElementConfirmButton,
	ElementStartScanning,
	ElementReader,
	ElementLoader,
}

type Element struct {
	ID      ElementID `json:"id"`
	Text    string    `json:"text"`
	Visible bool      `json:"visible"`
}

// SourceState is the lifecycle of the camera decoder.
type SourceState string

const (
	SourceStopped SourceState = "stopped"
	SourceRunning SourceState = "running"
	SourcePaused  SourceState = "paused"
)
