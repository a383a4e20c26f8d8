package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Scan payload
	ErrInvalidPayload = fmt.Errorf("scan payload is not a JSON object with a docId string")
	ErrEmptyDocID     = fmt.Errorf("docId must be a non-empty string")

	// Remote API
	ErrUnexpectedStatus = fmt.Errorf("unexpected http status")
	ErrInvalidResponse  = fmt.Errorf("invalid response body")
	ErrUnknownAction    = fmt.Errorf("unrecognized validation action")
	ErrDocumentRejected = fmt.Errorf("document rejected")
	ErrInvalidRecord    = fmt.Errorf("invalid vehicle record")

	// Gate
	ErrGateCommand = fmt.Errorf("gate command failed")

	// Workflow
	ErrWorkflowBusy    = fmt.Errorf("scan already in progress")
	ErrWorkflowTimeout = fmt.Errorf("workflow timed out")

	// Decoder
	ErrNotAnImage = fmt.Errorf("frame is not an image")
	ErrNoQRCode   = fmt.Errorf("no qr code found in frame")
)
