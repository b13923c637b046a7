package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// ErrFeedbackExists marks an attempt to file a second feedback for an
// appointment that already has one
var ErrFeedbackExists = errors.New("appointment already has feedback")

// FeedbackRepository manages post-visit feedback records
type FeedbackRepository struct {
	client *api.Client
	logger *zap.Logger
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(client *api.Client, logger *zap.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		client: client,
		logger: logger,
	}
}

// Create records feedback for an appointment. Feedback is unique per
// appointment: a pre-flight lookup guards the common case client-side,
// and the backend contract rejects the race remainder.
func (r *FeedbackRepository) Create(ctx context.Context, req *model.FeedbackRequest) (*model.Feedback, error) {
	existing, err := r.client.GetFeedbackByAppointment(ctx, req.AppointmentID)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: appointment %d", ErrFeedbackExists, req.AppointmentID)
	}
	if err != nil && !errors.Is(err, api.ErrNotFound) {
		r.logger.Error("failed to check existing feedback", zap.Error(err), zap.Int64("appointment_id", req.AppointmentID))
		return nil, err
	}

	return r.client.CreateFeedback(ctx, req)
}

// Get retrieves a feedback record by id
func (r *FeedbackRepository) Get(ctx context.Context, feedbackID int64) (*model.Feedback, error) {
	return r.client.GetFeedback(ctx, feedbackID)
}

// GetByAppointment retrieves the single feedback attached to an appointment
func (r *FeedbackRepository) GetByAppointment(ctx context.Context, appointmentID int64) (*model.Feedback, error) {
	return r.client.GetFeedbackByAppointment(ctx, appointmentID)
}

// ListByPatient retrieves all feedback written about a patient
func (r *FeedbackRepository) ListByPatient(ctx context.Context, patientID int64) ([]model.Feedback, error) {
	return r.client.ListFeedbackByPatient(ctx, patientID)
}

// ListByDoctor retrieves all feedback written by a doctor
func (r *FeedbackRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]model.Feedback, error) {
	return r.client.ListFeedbackByDoctor(ctx, doctorID)
}

// Update replaces the mutable fields of a feedback record
func (r *FeedbackRepository) Update(ctx context.Context, fb *model.Feedback) (*model.Feedback, error) {
	return r.client.UpdateFeedback(ctx, fb)
}
