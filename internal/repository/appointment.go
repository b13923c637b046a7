package repository

import (
	"context"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// AppointmentRepository manages appointment booking and lifecycle
type AppointmentRepository struct {
	client *api.Client
	logger *zap.Logger
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(client *api.Client, logger *zap.Logger) *AppointmentRepository {
	return &AppointmentRepository{
		client: client,
		logger: logger,
	}
}

// Create books a new appointment
func (r *AppointmentRepository) Create(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error) {
	return r.client.CreateAppointment(ctx, req)
}

// Get retrieves an appointment by id
func (r *AppointmentRepository) Get(ctx context.Context, appointmentID int64) (*model.Appointment, error) {
	return r.client.GetAppointment(ctx, appointmentID)
}

// ListByPatient retrieves all appointments booked by a patient
func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]model.Appointment, error) {
	return r.client.ListAppointmentsByPatient(ctx, patientID)
}

// ListByDoctor retrieves all appointments assigned to a doctor
func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]model.Appointment, error) {
	return r.client.ListAppointmentsByDoctor(ctx, doctorID)
}

// UpdateStatus moves an appointment through its lifecycle
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, appointmentID int64, update *model.AppointmentStatusUpdate) (*model.Appointment, error) {
	return r.client.UpdateAppointmentStatus(ctx, appointmentID, update)
}

// Update replaces the mutable fields of an appointment
func (r *AppointmentRepository) Update(ctx context.Context, appt *model.Appointment) (*model.Appointment, error) {
	return r.client.UpdateAppointment(ctx, appt)
}

// Delete removes an appointment
func (r *AppointmentRepository) Delete(ctx context.Context, appointmentID int64) error {
	return r.client.DeleteAppointment(ctx, appointmentID)
}
