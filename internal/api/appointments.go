package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carelink/carelink-go/pkg/model"
)

// CreateAppointment books a new appointment in REQUESTED status
func (c *Client) CreateAppointment(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error) {
	var appt model.Appointment
	if err := c.do(ctx, http.MethodPost, "/api/v1/appointments", req, &appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return &appt, nil
}

// GetAppointment retrieves an appointment by id
func (c *Client) GetAppointment(ctx context.Context, appointmentID int64) (*model.Appointment, error) {
	var appt model.Appointment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/appointments/%d", appointmentID), nil, &appt); err != nil {
		return nil, fmt.Errorf("failed to get appointment %d: %w", appointmentID, err)
	}
	return &appt, nil
}

// ListAppointmentsByPatient retrieves all appointments booked by a patient
func (c *Client) ListAppointmentsByPatient(ctx context.Context, patientID int64) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/patients/%d/appointments", patientID), nil, &appts); err != nil {
		return nil, fmt.Errorf("failed to list appointments for patient %d: %w", patientID, err)
	}
	return appts, nil
}

// ListAppointmentsByDoctor retrieves all appointments assigned to a doctor
func (c *Client) ListAppointmentsByDoctor(ctx context.Context, doctorID int64) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/doctors/%d/appointments", doctorID), nil, &appts); err != nil {
		return nil, fmt.Errorf("failed to list appointments for doctor %d: %w", doctorID, err)
	}
	return appts, nil
}

// UpdateAppointmentStatus moves an appointment through its lifecycle
// (approve, decline, complete, cancel)
func (c *Client) UpdateAppointmentStatus(ctx context.Context, appointmentID int64, update *model.AppointmentStatusUpdate) (*model.Appointment, error) {
	var appt model.Appointment
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/appointments/%d/status", appointmentID), update, &appt); err != nil {
		return nil, fmt.Errorf("failed to update status of appointment %d: %w", appointmentID, err)
	}
	return &appt, nil
}

// UpdateAppointment replaces the mutable fields of an appointment
func (c *Client) UpdateAppointment(ctx context.Context, appt *model.Appointment) (*model.Appointment, error) {
	var updated model.Appointment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/appointments/%d", appt.ID), appt, &updated); err != nil {
		return nil, fmt.Errorf("failed to update appointment %d: %w", appt.ID, err)
	}
	return &updated, nil
}

// DeleteAppointment removes an appointment. Medication and report
// references to it are nulled by the backend, not cascaded.
func (c *Client) DeleteAppointment(ctx context.Context, appointmentID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/appointments/%d", appointmentID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete appointment %d: %w", appointmentID, err)
	}
	return nil
}
