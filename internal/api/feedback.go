package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carelink/carelink-go/pkg/model"
)

// CreateFeedback records a doctor's post-visit summary. The backend
// rejects a second feedback for the same appointment with 409.
func (c *Client) CreateFeedback(ctx context.Context, req *model.FeedbackRequest) (*model.Feedback, error) {
	var fb model.Feedback
	if err := c.do(ctx, http.MethodPost, "/api/v1/feedback", req, &fb); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return &fb, nil
}

// GetFeedback retrieves a feedback record by id
func (c *Client) GetFeedback(ctx context.Context, feedbackID int64) (*model.Feedback, error) {
	var fb model.Feedback
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/feedback/%d", feedbackID), nil, &fb); err != nil {
		return nil, fmt.Errorf("failed to get feedback %d: %w", feedbackID, err)
	}
	return &fb, nil
}

// GetFeedbackByAppointment retrieves the single feedback attached to an
// appointment, or ErrNotFound when the visit has none yet
func (c *Client) GetFeedbackByAppointment(ctx context.Context, appointmentID int64) (*model.Feedback, error) {
	var fb model.Feedback
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/appointments/%d/feedback", appointmentID), nil, &fb); err != nil {
		return nil, fmt.Errorf("failed to get feedback for appointment %d: %w", appointmentID, err)
	}
	return &fb, nil
}

// ListFeedbackByPatient retrieves all feedback written about a patient
func (c *Client) ListFeedbackByPatient(ctx context.Context, patientID int64) ([]model.Feedback, error) {
	var fbs []model.Feedback
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/patients/%d/feedback", patientID), nil, &fbs); err != nil {
		return nil, fmt.Errorf("failed to list feedback for patient %d: %w", patientID, err)
	}
	return fbs, nil
}

// ListFeedbackByDoctor retrieves all feedback written by a doctor
func (c *Client) ListFeedbackByDoctor(ctx context.Context, doctorID int64) ([]model.Feedback, error) {
	var fbs []model.Feedback
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/doctors/%d/feedback", doctorID), nil, &fbs); err != nil {
		return nil, fmt.Errorf("failed to list feedback for doctor %d: %w", doctorID, err)
	}
	return fbs, nil
}

// UpdateFeedback replaces the mutable fields of a feedback record
func (c *Client) UpdateFeedback(ctx context.Context, fb *model.Feedback) (*model.Feedback, error) {
	var updated model.Feedback
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/feedback/%d", fb.ID), fb, &updated); err != nil {
		return nil, fmt.Errorf("failed to update feedback %d: %w", fb.ID, err)
	}
	return &updated, nil
}
