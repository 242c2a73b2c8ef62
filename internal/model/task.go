package model

import (
	"context"
	"time"
)

// Priority levels for tasks.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Status values a task moves through.
type Status string

const (
	StatusNotStarted    Status = "Not Started"
	StatusInProgress    Status = "In Progress"
	StatusPendingReview Status = "Pending Review"
	StatusCompleted     Status = "Completed"
)

// Bucket groups tasks on the dashboard by due date.
type Bucket string

const (
	BucketToday    Bucket = "Today"
	BucketTomorrow Bucket = "Tomorrow"
	BucketOverdue  Bucket = "Overdue"
)

// Task represents a task row as served by the gateway data API.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssignedTo  string    `json:"assigned_to"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	DueDate     string    `json:"due_date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
	Attachments []string  `json:"attachments"`
}

// BucketFor classifies the task's due date relative to now's calendar
// day. Dates later than tomorrow (or unparseable) fall into no bucket.
func (t Task) BucketFor(now time.Time) (Bucket, bool) {
	due, err := time.ParseInLocation("2006-01-02", t.DueDate, now.Location())
	if err != nil {
		return "", false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case due.Before(today):
		return BucketOverdue, true
	case due.Equal(today):
		return BucketToday, true
	case due.Equal(today.AddDate(0, 0, 1)):
		return BucketTomorrow, true
	default:
		return "", false
	}
}

// Availability of an employee right now.
type Availability string

const (
	Available  Availability = "available"
	Busy       Availability = "busy"
	Overloaded Availability = "overloaded"
)

// Employee represents a team member tasks can be assigned to.
type Employee struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Status   Availability `json:"status"`
	NextFree string       `json:"next_free"`
}

// Comment is a task discussion entry.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskParams contains the fields of the assign-task form.
// Title, DueDate and AssignedTo are required.
type CreateTaskParams struct {
	Title       string
	Description string
	DueDate     string
	AssignedTo  string
	Priority    Priority
}

// TaskStore defines the data-API operations behind the dashboard and
// task details views.
type TaskStore interface {
	ListTasks(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	CreateTask(ctx context.Context, params CreateTaskParams) (Task, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	ListComments(ctx context.Context, taskID string) ([]Comment, error)
	AddComment(ctx context.Context, comment Comment) (Comment, error)
}
