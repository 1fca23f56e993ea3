package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tdnguyen/planboard/internal/models"
)

// TaskRequest is the create/update payload for a task
type TaskRequest struct {
	ProjectID   int64        `json:"project_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      string       `json:"status,omitempty"`
	Priority    string       `json:"priority,omitempty"`
	AssigneeIDs []int64      `json:"assignee_ids,omitempty"`
	DueDate     *models.Time `json:"due_date,omitempty"`
	Tags        string       `json:"tags,omitempty"`
	Position    *int         `json:"position,omitempty"`
}

// TaskMove is the kanban move payload
type TaskMove struct {
	NewStatus   string `json:"new_status"`
	NewPosition int    `json:"new_position"`
}

// ListProjectTasks returns all tasks for a project
func (c *Client) ListProjectTasks(ctx context.Context, projectID int64) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks?project_id=%d", projectID), nil, &out)
	return out, err
}

// ListMyTasks returns tasks assigned to the current user across projects
func (c *Client) ListMyTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &out)
	return out, err
}

// GetTask fetches one task with subtasks and assignees
func (c *Client) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTask creates a task
func (c *Client) CreateTask(ctx context.Context, req TaskRequest) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask updates a task
func (c *Client) UpdateTask(ctx context.Context, id int64, req TaskRequest) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask deletes a task
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// MoveTask changes a task's board column and position
func (c *Client) MoveTask(ctx context.Context, id int64, move TaskMove) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/move", id), move, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmCompleteTask marks a task done even with incomplete subtasks
func (c *Client) ConfirmCompleteTask(ctx context.Context, id int64) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/confirm-complete", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTaskComments returns the comments on a task
func (c *Client) ListTaskComments(ctx context.Context, taskID int64) ([]models.Comment, error) {
	var out []models.Comment
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/comments?task_id=%d", taskID), nil, &out)
	return out, err
}

// CreateComment adds a comment to a task
func (c *Client) CreateComment(ctx context.Context, taskID int64, content string) (*models.Comment, error) {
	body := map[string]any{"task_id": taskID, "content": content}
	var out models.Comment
	if err := c.do(ctx, http.MethodPost, "/comments", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComment edits a comment
func (c *Client) UpdateComment(ctx context.Context, id int64, content string) (*models.Comment, error) {
	body := map[string]any{"content": content}
	var out models.Comment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment removes a comment
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil)
}

// UploadCommentAttachment attaches a file to a comment
func (c *Client) UploadCommentAttachment(ctx context.Context, id int64, path string) (*models.Comment, error) {
	var out models.Comment
	err := c.Upload(ctx, fmt.Sprintf("/comments/%d/upload", id), map[string]string{"file": path}, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubTaskRequest is the create/update payload for a subtask
type SubTaskRequest struct {
	TaskID      int64  `json:"task_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IsDone      *bool  `json:"is_done,omitempty"`
	WorkLogID   *int64 `json:"work_log_id,omitempty"`
}

// CreateSubTask creates a subtask under a task
func (c *Client) CreateSubTask(ctx context.Context, req SubTaskRequest) (*models.SubTask, error) {
	var out models.SubTask
	if err := c.do(ctx, http.MethodPost, "/subtasks", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSubTask updates a subtask
func (c *Client) UpdateSubTask(ctx context.Context, id int64, req SubTaskRequest) (*models.SubTask, error) {
	var out models.SubTask
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/subtasks/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSubTask deletes a subtask
func (c *Client) DeleteSubTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/subtasks/%d", id), nil, nil)
}

// UploadSubTaskAttachment attaches a file to a subtask
func (c *Client) UploadSubTaskAttachment(ctx context.Context, id int64, path string) (*models.SubTask, error) {
	var out models.SubTask
	err := c.Upload(ctx, fmt.Sprintf("/subtasks/%d/attachment", id), map[string]string{"file": path}, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
