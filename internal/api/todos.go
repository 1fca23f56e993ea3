package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tdnguyen/planboard/internal/models"
)

// TodoRequest is the create/update payload for a todo
type TodoRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	PlannedDate *models.Time `json:"planned_date,omitempty"`
	IsDone      *bool        `json:"is_done,omitempty"`
}

// ListTodos returns todos planned within [start, end]
func (c *Client) ListTodos(ctx context.Context, start, end time.Time) ([]models.Todo, error) {
	endpoint := fmt.Sprintf("/todos?start_date=%s&end_date=%s",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	var out []models.Todo
	err := c.do(ctx, http.MethodGet, endpoint, nil, &out)
	return out, err
}

// CreateTodo creates a single todo
func (c *Client) CreateTodo(ctx context.Context, req TodoRequest) (*models.Todo, error) {
	var out models.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTodosBulk creates several todos in one call
func (c *Client) CreateTodosBulk(ctx context.Context, reqs []TodoRequest) ([]models.Todo, error) {
	var out []models.Todo
	if err := c.do(ctx, http.MethodPost, "/todos/bulk", reqs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTodo updates a todo
func (c *Client) UpdateTodo(ctx context.Context, id int64, req TodoRequest) (*models.Todo, error) {
	var out models.Todo
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/todos/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleTodo flips a todo's done state
func (c *Client) ToggleTodo(ctx context.Context, id int64) (*models.Todo, error) {
	var out models.Todo
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/todos/%d/toggle", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTodo deletes a todo
func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/todos/%d", id), nil, nil)
}
