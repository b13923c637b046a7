package repository

import (
	"context"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// DoctorRepository manages doctor professional profiles
type DoctorRepository struct {
	client *api.Client
	logger *zap.Logger
}

// NewDoctorRepository creates a new DoctorRepository
func NewDoctorRepository(client *api.Client, logger *zap.Logger) *DoctorRepository {
	return &DoctorRepository{
		client: client,
		logger: logger,
	}
}

// GetDetail retrieves the professional profile for a doctor user
func (r *DoctorRepository) GetDetail(ctx context.Context, userID int64) (*model.DoctorDetail, error) {
	return r.client.GetDoctorDetail(ctx, userID)
}

// SaveDetail creates or replaces a doctor's professional profile
func (r *DoctorRepository) SaveDetail(ctx context.Context, detail *model.DoctorDetail) (*model.DoctorDetail, error) {
	return r.client.UpsertDoctorDetail(ctx, detail)
}

// List retrieves all doctor accounts
func (r *DoctorRepository) List(ctx context.Context) ([]model.User, error) {
	return r.client.ListUsersByRole(ctx, model.RoleDoctor)
}
