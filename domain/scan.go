package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"parking-gate/errors"
)

// ScanPayload is the decoded QR text of a single scan.
type ScanPayload struct {
	Raw   string
	DocID string
}

type scanDocument struct {
	DocID *string `json:"docId"`
}

// ParseScanPayload expects a JSON object carrying a string docId.
// The returned DocID is trimmed.
func ParseScanPayload(raw string) (ScanPayload, error) {
	var doc scanDocument
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &doc); err != nil {
		return ScanPayload{Raw: raw}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if doc.DocID == nil {
		return ScanPayload{Raw: raw}, errors.ErrInvalidPayload
	}
	docID := strings.TrimSpace(*doc.DocID)
	if docID == "" {
		return ScanPayload{Raw: raw}, errors.ErrEmptyDocID
	}
	return ScanPayload{Raw: raw, DocID: docID}, nil
}
