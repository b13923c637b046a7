package repository

import (
	"context"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// AdminRepository exposes the administrative operations: account listing
// and removal
type AdminRepository struct {
	client *api.Client
	logger *zap.Logger
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(client *api.Client, logger *zap.Logger) *AdminRepository {
	return &AdminRepository{
		client: client,
		logger: logger,
	}
}

// ListPatients retrieves all patient accounts
func (r *AdminRepository) ListPatients(ctx context.Context) ([]model.User, error) {
	return r.client.ListUsersByRole(ctx, model.RolePatient)
}

// ListDoctors retrieves all doctor accounts
func (r *AdminRepository) ListDoctors(ctx context.Context) ([]model.User, error) {
	return r.client.ListUsersByRole(ctx, model.RoleDoctor)
}

// RemoveUser deletes an account. Deletion authority rests with the
// backend, which cascades the user's appointments, vitals and feedback.
func (r *AdminRepository) RemoveUser(ctx context.Context, userID int64) error {
	if err := r.client.DeleteUser(ctx, userID); err != nil {
		r.logger.Error("failed to remove user", zap.Error(err), zap.Int64("user_id", userID))
		return err
	}
	return nil
}
