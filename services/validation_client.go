package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"parking-gate/domain"
	"parking-gate/errors"
)

const validatePath = "/api/validate"

type ValidationClient struct {
	log     *slog.Logger
	client  *http.Client
	baseURL string
}

func NewValidationClient(log *slog.Logger, client *http.Client, baseURL string) *ValidationClient {
	return &ValidationClient{log: log, client: client, baseURL: baseURL}
}

type validateRequest struct {
	DocID string `json:"docId"`
}

type validateResponse struct {
	Action  string       `json:"action"`
	Status  string       `json:"status"`
	Valid   *bool        `json:"valid"`
	Message string       `json:"message"`
	Data    validateData `json:"data"`
}

type validateData struct {
	Status       string `json:"status"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PlateNumber  string `json:"plateNumber"`
	VehicleModel string `json:"vehicleModel"`
}

// Validate asks the remote API whether docID may pass the gate.
// When the response carries no usable action, the returned result still holds
// the response message so it can be shown to the driver.
func (v *ValidationClient) Validate(ctx context.Context, docID string) (domain.ValidationResult, error) {
	trimmed := strings.TrimSpace(docID)
	if trimmed == "" {
		return domain.ValidationResult{}, errors.ErrEmptyDocID
	}

	raw, err := send(ctx, v.client, v.log, http.MethodPost, joinURL(v.baseURL, validatePath), validateRequest{DocID: trimmed})
	if err != nil {
		v.log.Warn("Validation request failed", "docId", trimmed, "error", err)
		return domain.ValidationResult{DocID: trimmed}, err
	}

	var resp validateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.ValidationResult{DocID: trimmed}, fmt.Errorf("%w: %v", errors.ErrInvalidResponse, err)
	}

	result := toValidationResult(trimmed, resp)
	if !result.Action.IsKnown() {
		if resp.Valid != nil && !*resp.Valid {
			v.log.Info("Document ID is invalid", "docId", trimmed)
			return result, errors.ErrDocumentRejected
		}
		v.log.Warn("Unrecognized validation action", "docId", trimmed, "action", resp.Action, "message", resp.Message)
		return result, fmt.Errorf("%w: %q", errors.ErrUnknownAction, resp.Action)
	}

	v.log.Info("Document ID is valid", "docId", trimmed, "action", result.Action, "status", result.Status)
	return result, nil
}

func toValidationResult(docID string, resp validateResponse) domain.ValidationResult {
	status := resp.Data.Status
	if status == "" {
		status = resp.Status
	}
	return domain.ValidationResult{
		DocID:        docID,
		Action:       domain.Action(strings.ToLower(strings.TrimSpace(resp.Action))),
		Status:       strings.ToLower(strings.TrimSpace(status)),
		FullName:     resp.Data.FullName,
		Email:        resp.Data.Email,
		Phone:        resp.Data.Phone,
		PlateNumber:  resp.Data.PlateNumber,
		VehicleModel: resp.Data.VehicleModel,
		Message:      resp.Message,
	}
}
