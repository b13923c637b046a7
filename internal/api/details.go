package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carelink/carelink-go/pkg/model"
)

// GetPatientDetail retrieves the medical profile attached to a patient
func (c *Client) GetPatientDetail(ctx context.Context, userID int64) (*model.PatientDetail, error) {
	var detail model.PatientDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/patients/%d/detail", userID), nil, &detail); err != nil {
		return nil, fmt.Errorf("failed to get patient detail for user %d: %w", userID, err)
	}
	return &detail, nil
}

// UpsertPatientDetail creates or replaces a patient's medical profile
func (c *Client) UpsertPatientDetail(ctx context.Context, detail *model.PatientDetail) (*model.PatientDetail, error) {
	var saved model.PatientDetail
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/patients/%d/detail", detail.UserID), detail, &saved); err != nil {
		return nil, fmt.Errorf("failed to save patient detail for user %d: %w", detail.UserID, err)
	}
	return &saved, nil
}

// GetDoctorDetail retrieves the professional profile attached to a doctor
func (c *Client) GetDoctorDetail(ctx context.Context, userID int64) (*model.DoctorDetail, error) {
	var detail model.DoctorDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/doctors/%d/detail", userID), nil, &detail); err != nil {
		return nil, fmt.Errorf("failed to get doctor detail for user %d: %w", userID, err)
	}
	return &detail, nil
}

// UpsertDoctorDetail creates or replaces a doctor's professional profile
func (c *Client) UpsertDoctorDetail(ctx context.Context, detail *model.DoctorDetail) (*model.DoctorDetail, error) {
	var saved model.DoctorDetail
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/doctors/%d/detail", detail.UserID), detail, &saved); err != nil {
		return nil, fmt.Errorf("failed to save doctor detail for user %d: %w", detail.UserID, err)
	}
	return &saved, nil
}
