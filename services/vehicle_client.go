package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"parking-gate/domain"
	"parking-gate/errors"

	"github.com/go-playground/validator/v10"
)

const (
	entryPath = "/api/vehicle-entry"
	exitPath  = "/api/vehicle-exit"
)

// VehicleClient records entries and exits against the parking backend.
type VehicleClient struct {
	log       *slog.Logger
	client    *http.Client
	baseURL   string
	validator *validator.Validate
}

func NewVehicleClient(log *slog.Logger, client *http.Client, baseURL string) *VehicleClient {
	return &VehicleClient{
		log:       log,
		client:    client,
		baseURL:   baseURL,
		validator: validator.New(),
	}
}

func (c *VehicleClient) Enter(ctx context.Context, result domain.ValidationResult) error {
	return c.post(ctx, entryPath, result.Record())
}

func (c *VehicleClient) Exit(ctx context.Context, result domain.ValidationResult) error {
	return c.post(ctx, exitPath, result.Record())
}

func (c *VehicleClient) post(ctx context.Context, path string, record domain.VehicleRecord) error {
	if err := c.validator.Struct(record); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRecord, err)
	}
	if _, err := send(ctx, c.client, c.log, http.MethodPost, joinURL(c.baseURL, path), record); err != nil {
		c.log.Error("Vehicle record failed", "path", path, "docId", record.DocID, "error", err)
		return err
	}
	c.log.Info("Vehicle recorded", "path", path, "docId", record.DocID, "plate", record.PlateNumber)
	return nil
}
