package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tdnguyen/planboard/internal/models"
)

// UserUpdate is the payload for editing a user (admin) or the current profile
type UserUpdate struct {
	Email      string `json:"email,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	Department string `json:"department,omitempty"`
	Team       string `json:"team,omitempty"`
	Role       string `json:"role,omitempty"`
}

// ListUsers returns all users
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

// Me returns the current authenticated user
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMe updates the current user's profile
func (c *Client) UpdateMe(ctx context.Context, req UserUpdate) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/users/me", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser updates another user (admin only)
func (c *Client) UpdateUser(ctx context.Context, id int64, req UserUpdate) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the current user's password
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"current_password": current, "new_password": next}
	return c.do(ctx, http.MethodPut, "/users/me/change-password", body, nil)
}

// UploadAvatar uploads a new avatar image for a user
func (c *Client) UploadAvatar(ctx context.Context, id int64, path string) (*models.User, error) {
	var out models.User
	err := c.Upload(ctx, fmt.Sprintf("/users/%d/avatar", id), map[string]string{"file": path}, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
