// Package repository holds one thin facade per domain entity. Each
// operation translates to exactly one Remote API Client call (or, for
// messages, one local store call) and propagates failures unchanged:
// no retries, no caching, no transformation beyond shape mapping.
package repository

import (
	"context"
	"fmt"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// UserRepository manages user accounts and authentication
type UserRepository struct {
	client *api.Client
	logger *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *api.Client, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		client: client,
		logger: logger,
	}
}

// Register creates a new account
func (r *UserRepository) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	user, err := r.client.Register(ctx, req)
	if err != nil {
		r.logger.Error("failed to register user", zap.Error(err), zap.String("username", req.Username))
		return nil, err
	}
	return user, nil
}

// Login authenticates and stores the returned bearer token on the client
// so subsequent calls are authenticated
func (r *UserRepository) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	resp, err := r.client.Login(ctx, req)
	if err != nil {
		r.logger.Error("failed to login", zap.Error(err), zap.String("username", req.Username))
		return nil, err
	}

	if resp.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}
	r.client.SetToken(resp.Token)

	return &resp.User, nil
}

// Get retrieves a user by id
func (r *UserRepository) Get(ctx context.Context, userID int64) (*model.User, error) {
	return r.client.GetUser(ctx, userID)
}

// Update replaces a user's profile fields
func (r *UserRepository) Update(ctx context.Context, user *model.User) (*model.User, error) {
	return r.client.UpdateUser(ctx, user)
}

// Delete removes a user account; the backend cascades dependent records
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	return r.client.DeleteUser(ctx, userID)
}

// ListByRole retrieves all users holding the given role
func (r *UserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return r.client.ListUsersByRole(ctx, role)
}
