package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tdnguyen/planboard/internal/models"
)

// ListThreads returns the message threads for a project, oldest first
func (c *Client) ListThreads(ctx context.Context, projectID int64) ([]models.Thread, error) {
	var out []models.Thread
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/threads?project_id=%d", projectID), nil, &out)
	return out, err
}

// CreateThread posts a message; parentID non-nil makes it a reply
func (c *Client) CreateThread(ctx context.Context, projectID int64, content string, parentID *int64) (*models.Thread, error) {
	body := map[string]any{"project_id": projectID, "content": content}
	if parentID != nil {
		body["parent_id"] = *parentID
	}
	var out models.Thread
	if err := c.do(ctx, http.MethodPost, "/threads", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateThread edits a message
func (c *Client) UpdateThread(ctx context.Context, id int64, content string) (*models.Thread, error) {
	body := map[string]any{"content": content}
	var out models.Thread
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/threads/%d", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteThread removes a message
func (c *Client) DeleteThread(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/threads/%d", id), nil, nil)
}

// ListActivities returns the most recent activity entries for a project
func (c *Client) ListActivities(ctx context.Context, projectID int64, limit int) ([]models.Activity, error) {
	var out []models.Activity
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/activities?project_id=%d&limit=%d", projectID, limit), nil, &out)
	return out, err
}
