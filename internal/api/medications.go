package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carelink/carelink-go/pkg/model"
)

// CreateMedication prescribes a new medication for a patient
func (c *Client) CreateMedication(ctx context.Context, req *model.MedicationRequest) (*model.Medication, error) {
	var med model.Medication
	if err := c.do(ctx, http.MethodPost, "/api/v1/medications", req, &med); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return &med, nil
}

// GetMedication retrieves a medication by id
func (c *Client) GetMedication(ctx context.Context, medicationID int64) (*model.Medication, error) {
	var med model.Medication
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/medications/%d", medicationID), nil, &med); err != nil {
		return nil, fmt.Errorf("failed to get medication %d: %w", medicationID, err)
	}
	return &med, nil
}

// ListMedicationsByPatient retrieves all medications prescribed to a patient
func (c *Client) ListMedicationsByPatient(ctx context.Context, patientID int64) ([]model.Medication, error) {
	var meds []model.Medication
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/patients/%d/medications", patientID), nil, &meds); err != nil {
		return nil, fmt.Errorf("failed to list medications for patient %d: %w", patientID, err)
	}
	return meds, nil
}

// UpdateMedication replaces the mutable fields of a medication
func (c *Client) UpdateMedication(ctx context.Context, med *model.Medication) (*model.Medication, error) {
	var updated model.Medication
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/medications/%d", med.ID), med, &updated); err != nil {
		return nil, fmt.Errorf("failed to update medication %d: %w", med.ID, err)
	}
	return &updated, nil
}

// DeactivateMedication sets active=false. This is terminal: there is no
// reactivation operation.
func (c *Client) DeactivateMedication(ctx context.Context, medicationID int64) (*model.Medication, error) {
	var med model.Medication
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/medications/%d/deactivate", medicationID), nil, &med); err != nil {
		return nil, fmt.Errorf("failed to deactivate medication %d: %w", medicationID, err)
	}
	return &med, nil
}

// DeleteMedication removes a medication record
func (c *Client) DeleteMedication(ctx context.Context, medicationID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/medications/%d", medicationID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete medication %d: %w", medicationID, err)
	}
	return nil
}
