package repository

import (
	"context"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// PatientRepository manages patient medical profiles
type PatientRepository struct {
	client *api.Client
	logger *zap.Logger
}

// NewPatientRepository creates a new PatientRepository
func NewPatientRepository(client *api.Client, logger *zap.Logger) *PatientRepository {
	return &PatientRepository{
		client: client,
		logger: logger,
	}
}

// GetDetail retrieves the medical profile for a patient user
func (r *PatientRepository) GetDetail(ctx context.Context, userID int64) (*model.PatientDetail, error) {
	return r.client.GetPatientDetail(ctx, userID)
}

// SaveDetail creates or replaces a patient's medical profile
func (r *PatientRepository) SaveDetail(ctx context.Context, detail *model.PatientDetail) (*model.PatientDetail, error) {
	return r.client.UpsertPatientDetail(ctx, detail)
}

// List retrieves all patient accounts
func (r *PatientRepository) List(ctx context.Context) ([]model.User, error) {
	return r.client.ListUsersByRole(ctx, model.RolePatient)
}
