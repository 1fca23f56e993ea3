package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tdnguyen/planboard/internal/models"
)

// ProjectRequest is the create/update payload for a project
type ProjectRequest struct {
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Status        string       `json:"status,omitempty"`
	Color         string       `json:"color,omitempty"`
	ProjectTypeID *int64       `json:"project_type_id,omitempty"`
	DueDate       *models.Time `json:"due_date,omitempty"`
}

// ListProjects returns all projects visible to the current user
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	err := c.do(ctx, http.MethodGet, "/projects", nil, &out)
	return out, err
}

// GetProject fetches one project
func (c *Client) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject creates a project
func (c *Client) CreateProject(ctx context.Context, req ProjectRequest) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPost, "/projects", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject updates a project
func (c *Client) UpdateProject(ctx context.Context, id int64, req ProjectRequest) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject deletes a project
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

// ListProjectTypes returns the selectable project categories
func (c *Client) ListProjectTypes(ctx context.Context) ([]models.ProjectType, error) {
	var out []models.ProjectType
	err := c.do(ctx, http.MethodGet, "/projects/types/list", nil, &out)
	return out, err
}
