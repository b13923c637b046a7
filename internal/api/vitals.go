package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carelink/carelink-go/pkg/model"
)

// CreateVitals uploads a new set of measurements. The backend decides
// criticality and alerting; the client never sets those fields.
func (c *Client) CreateVitals(ctx context.Context, req *model.VitalsRequest) (*model.Vitals, error) {
	var vitals model.Vitals
	if err := c.do(ctx, http.MethodPost, "/api/v1/vitals", req, &vitals); err != nil {
		return nil, fmt.Errorf("failed to create vitals: %w", err)
	}
	return &vitals, nil
}

// GetVitals retrieves a vitals record by id
func (c *Client) GetVitals(ctx context.Context, vitalsID int64) (*model.Vitals, error) {
	var vitals model.Vitals
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/vitals/%d", vitalsID), nil, &vitals); err != nil {
		return nil, fmt.Errorf("failed to get vitals %d: %w", vitalsID, err)
	}
	return &vitals, nil
}

// ListVitalsByPatient retrieves a patient's vitals history, newest first
func (c *Client) ListVitalsByPatient(ctx context.Context, patientID int64) ([]model.Vitals, error) {
	var vitals []model.Vitals
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/patients/%d/vitals", patientID), nil, &vitals); err != nil {
		return nil, fmt.Errorf("failed to list vitals for patient %d: %w", patientID, err)
	}
	return vitals, nil
}

// GetLatestVitals retrieves a patient's most recent vitals record
func (c *Client) GetLatestVitals(ctx context.Context, patientID int64) (*model.Vitals, error) {
	var vitals model.Vitals
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/patients/%d/vitals/latest", patientID), nil, &vitals); err != nil {
		return nil, fmt.Errorf("failed to get latest vitals for patient %d: %w", patientID, err)
	}
	return &vitals, nil
}
