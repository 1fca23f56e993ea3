package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tdnguyen/planboard/internal/models"
)

// WorkLogRequest is the create/update payload for a work log
type WorkLogRequest struct {
	Title       string              `json:"title"`
	Content     string              `json:"content,omitempty"`
	ProjectID   *int64              `json:"project_id,omitempty"`
	TaskID      *int64              `json:"task_id,omitempty"`
	SubtaskID   *int64              `json:"subtask_id,omitempty"`
	Attachments []models.Attachment `json:"attachments,omitempty"`
}

// ListWorkLogs returns the current user's work logs
func (c *Client) ListWorkLogs(ctx context.Context) ([]models.WorkLog, error) {
	var out []models.WorkLog
	err := c.do(ctx, http.MethodGet, "/work-logs", nil, &out)
	return out, err
}

// CreateWorkLog creates a work log
func (c *Client) CreateWorkLog(ctx context.Context, req WorkLogRequest) (*models.WorkLog, error) {
	var out models.WorkLog
	if err := c.do(ctx, http.MethodPost, "/work-logs", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWorkLog updates a work log
func (c *Client) UpdateWorkLog(ctx context.Context, id int64, req WorkLogRequest) (*models.WorkLog, error) {
	var out models.WorkLog
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/work-logs/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWorkLog deletes a work log
func (c *Client) DeleteWorkLog(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/work-logs/%d", id), nil, nil)
}

// UploadWorkLogAttachments uploads files onto a work log
func (c *Client) UploadWorkLogAttachments(ctx context.Context, id int64, paths []string) (*models.WorkLog, error) {
	files := make(map[string]string, len(paths))
	for i, p := range paths {
		files[fmt.Sprintf("files[%d]", i)] = p
	}
	var out models.WorkLog
	if err := c.Upload(ctx, fmt.Sprintf("/work-logs/%d/attachments", id), files, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NoteRequest is the create/update payload for a note
type NoteRequest struct {
	Title     string       `json:"title"`
	NoteDate  *models.Time `json:"note_date,omitempty"`
	Content   string       `json:"content,omitempty"`
	ProjectID *int64       `json:"project_id,omitempty"`
	TaskID    *int64       `json:"task_id,omitempty"`
	WorkLogID *int64       `json:"work_log_id,omitempty"`
}

// ListNotes returns the current user's notes
func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	var out []models.Note
	err := c.do(ctx, http.MethodGet, "/notes", nil, &out)
	return out, err
}

// CreateNote creates a note
func (c *Client) CreateNote(ctx context.Context, req NoteRequest) (*models.Note, error) {
	var out models.Note
	if err := c.do(ctx, http.MethodPost, "/notes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNote updates a note
func (c *Client) UpdateNote(ctx context.Context, id int64, req NoteRequest) (*models.Note, error) {
	var out models.Note
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNote deletes a note
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d", id), nil, nil)
}
