package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/carelink/carelink-go/pkg/model"
)

// Register creates a new user account
func (c *Client) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/api/v1/users/register", req, &user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return &user, nil
}

// Login authenticates a user and returns the account plus a bearer token
func (c *Client) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	return &resp, nil
}

// GetUser retrieves a user by id
func (c *Client) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", userID), nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return &user, nil
}

// UpdateUser replaces a user's profile fields
func (c *Client) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	var updated model.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", user.ID), user, &updated); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return &updated, nil
}

// DeleteUser removes a user account. The backend cascades the user's
// appointments, vitals and feedback.
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", userID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	return nil
}

// ListUsersByRole retrieves all users holding the given role
func (c *Client) ListUsersByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	var users []model.User
	path := "/api/v1/users?role=" + url.QueryEscape(string(role))
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, fmt.Errorf("failed to list users by role %s: %w", role, err)
	}
	return users, nil
}
