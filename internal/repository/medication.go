package repository

import (
	"context"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// MedicationRepository manages prescription records
type MedicationRepository struct {
	client *api.Client
	logger *zap.Logger
}

// NewMedicationRepository creates a new MedicationRepository
func NewMedicationRepository(client *api.Client, logger *zap.Logger) *MedicationRepository {
	return &MedicationRepository{
		client: client,
		logger: logger,
	}
}

// Create prescribes a new medication
func (r *MedicationRepository) Create(ctx context.Context, req *model.MedicationRequest) (*model.Medication, error) {
	return r.client.CreateMedication(ctx, req)
}

// Get retrieves a medication by id
func (r *MedicationRepository) Get(ctx context.Context, medicationID int64) (*model.Medication, error) {
	return r.client.GetMedication(ctx, medicationID)
}

// ListByPatient retrieves all medications prescribed to a patient
func (r *MedicationRepository) ListByPatient(ctx context.Context, patientID int64) ([]model.Medication, error) {
	return r.client.ListMedicationsByPatient(ctx, patientID)
}

// Update replaces the mutable fields of a medication
func (r *MedicationRepository) Update(ctx context.Context, med *model.Medication) (*model.Medication, error) {
	return r.client.UpdateMedication(ctx, med)
}

// Deactivate sets active=false, a terminal transition
func (r *MedicationRepository) Deactivate(ctx context.Context, medicationID int64) (*model.Medication, error) {
	return r.client.DeactivateMedication(ctx, medicationID)
}

// Delete removes a medication record
func (r *MedicationRepository) Delete(ctx context.Context, medicationID int64) error {
	return r.client.DeleteMedication(ctx, medicationID)
}
