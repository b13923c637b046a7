package repository

import (
	"context"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// VitalsRepository manages vitals measurement records
type VitalsRepository struct {
	client *api.Client
	logger *zap.Logger
}

// NewVitalsRepository creates a new VitalsRepository
func NewVitalsRepository(client *api.Client, logger *zap.Logger) *VitalsRepository {
	return &VitalsRepository{
		client: client,
		logger: logger,
	}
}

// Create uploads a new set of measurements
func (r *VitalsRepository) Create(ctx context.Context, req *model.VitalsRequest) (*model.Vitals, error) {
	return r.client.CreateVitals(ctx, req)
}

// Get retrieves a vitals record by id
func (r *VitalsRepository) Get(ctx context.Context, vitalsID int64) (*model.Vitals, error) {
	return r.client.GetVitals(ctx, vitalsID)
}

// ListByPatient retrieves a patient's vitals history
func (r *VitalsRepository) ListByPatient(ctx context.Context, patientID int64) ([]model.Vitals, error) {
	return r.client.ListVitalsByPatient(ctx, patientID)
}

// Latest retrieves a patient's most recent vitals record
func (r *VitalsRepository) Latest(ctx context.Context, patientID int64) (*model.Vitals, error) {
	return r.client.GetLatestVitals(ctx, patientID)
}
