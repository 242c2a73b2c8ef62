package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/demandvibes/taskdesk/internal/model"
)

var _ model.TaskStore = (*Client)(nil)

// ListTasks returns every task row ordered by due date.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/rest/v1/tasks?select=*&order=due_date.asc", nil, nil, &tasks); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task by id, or model.ErrNotFound.
func (c *Client) GetTask(ctx context.Context, id string) (model.Task, error) {
	var tasks []model.Task
	path := "/rest/v1/tasks?select=*&id=eq." + url.QueryEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tasks); err != nil {
		return model.Task{}, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	if len(tasks) == 0 {
		return model.Task{}, model.ErrNotFound
	}
	return tasks[0], nil
}

// CreateTask inserts a task row from the assign-task form and returns
// the stored representation.
func (c *Client) CreateTask(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	header := http.Header{"Prefer": []string{"return=representation"}}
	body := map[string]any{
		"title":       params.Title,
		"description": params.Description,
		"due_date":    params.DueDate,
		"assigned_to": params.AssignedTo,
		"priority":    params.Priority,
		"status":      model.StatusNotStarted,
	}

	var tasks []model.Task
	if err := c.do(ctx, http.MethodPost, "/rest/v1/tasks", header, body, &tasks); err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	if len(tasks) == 0 {
		return model.Task{}, fmt.Errorf("create task: %w", model.ErrUnexpected)
	}
	return tasks[0], nil
}

// ListEmployees returns the team roster with availability.
func (c *Client) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := c.do(ctx, http.MethodGet, "/rest/v1/employees?select=*&order=name.asc", nil, nil, &employees); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// ListComments returns a task's comments, oldest first.
func (c *Client) ListComments(ctx context.Context, taskID string) ([]model.Comment, error) {
	var comments []model.Comment
	path := "/rest/v1/comments?select=*&order=created_at.asc&task_id=eq." + url.QueryEscape(taskID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &comments); err != nil {
		return nil, fmt.Errorf("failed to list comments for task %s: %w", taskID, err)
	}
	return comments, nil
}

// AddComment inserts a comment row. A missing ID or timestamp is
// filled in client-side so optimistic rendering has stable values.
func (c *Client) AddComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	header := http.Header{"Prefer": []string{"return=representation"}}

	var comments []model.Comment
	if err := c.do(ctx, http.MethodPost, "/rest/v1/comments", header, comment, &comments); err != nil {
		return model.Comment{}, fmt.Errorf("failed to add comment: %w", err)
	}
	if len(comments) == 0 {
		return model.Comment{}, fmt.Errorf("add comment: %w", model.ErrUnexpected)
	}
	return comments[0], nil
}
