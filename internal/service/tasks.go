package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/demandvibes/taskdesk/internal/logger"
	"github.com/demandvibes/taskdesk/internal/model"
	storage "github.com/demandvibes/taskdesk/internal/storage/minio"
)

// Board is the dashboard view of tasks bucketed by due date. Tasks
// due later than tomorrow are outside every bucket and not shown.
type Board struct {
	Today    []model.Task
	Tomorrow []model.Task
	Overdue  []model.Task
}

// Details is everything the task details view renders.
type Details struct {
	Task     model.Task
	Comments []model.Comment
}

// Tasks serves the dashboard and task details views: task CRUD and
// comments through the gateway data API, attachments through object
// storage.
type Tasks struct {
	store   model.TaskStore
	storage model.Storage
	logger  *logger.Logger
	now     func() time.Time
}

// NewTasks creates a new Tasks service.
func NewTasks(store model.TaskStore, storage model.Storage, logger *logger.Logger) *Tasks {
	return &Tasks{
		store:   store,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Board loads all tasks and buckets them for the dashboard.
func (t *Tasks) Board(ctx context.Context) (Board, error) {
	tasks, err := t.store.ListTasks(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("failed to load board: %w", err)
	}

	now := t.now()
	var board Board
	for _, task := range tasks {
		bucket, ok := task.BucketFor(now)
		if !ok {
			continue
		}
		switch bucket {
		case model.BucketToday:
			board.Today = append(board.Today, task)
		case model.BucketTomorrow:
			board.Tomorrow = append(board.Tomorrow, task)
		case model.BucketOverdue:
			board.Overdue = append(board.Overdue, task)
		}
	}
	return board, nil
}

// Employees returns the team roster for the availability panel and
// the assignee dropdown.
func (t *Tasks) Employees(ctx context.Context) ([]model.Employee, error) {
	return t.store.ListEmployees(ctx)
}

// Create validates the assign-task form and inserts the task. Title,
// due date and assignee are required; priority defaults to Medium.
func (t *Tasks) Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		return model.Task{}, model.NewValidationError("title", "Task title is required.")
	}
	if strings.TrimSpace(params.AssignedTo) == "" {
		return model.Task{}, model.NewValidationError("assignedTo", "Select an employee.")
	}
	if _, err := time.Parse("2006-01-02", params.DueDate); err != nil {
		return model.Task{}, model.NewValidationError("dueDate", "Due date must be YYYY-MM-DD.")
	}
	if params.Priority == "" {
		params.Priority = model.PriorityMedium
	}

	task, err := t.store.CreateTask(ctx, params)
	if err != nil {
		t.logger.Error("Tasks service: failed to create task",
			"title", params.Title,
			"error", err.Error())
		return model.Task{}, err
	}

	t.logger.Info("Tasks service: task created", "id", task.ID, "title", task.Title)

	return task, nil
}

// Details loads a task and its comments.
func (t *Tasks) Details(ctx context.Context, id string) (Details, error) {
	task, err := t.store.GetTask(ctx, id)
	if err != nil {
		return Details{}, err
	}

	comments, err := t.store.ListComments(ctx, id)
	if err != nil {
		return Details{}, fmt.Errorf("failed to load comments: %w", err)
	}

	return Details{Task: task, Comments: comments}, nil
}

// Comment posts a comment on a task.
func (t *Tasks) Comment(ctx context.Context, taskID, author, text string) (model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, model.NewValidationError("comment", "Comment text is required.")
	}

	return t.store.AddComment(ctx, model.Comment{
		TaskID: taskID,
		Author: author,
		Text:   strings.TrimSpace(text),
	})
}

// UploadAttachment stores an attachment for a task.
func (t *Tasks) UploadAttachment(ctx context.Context, taskID, filename string, reader io.Reader) error {
	key := storage.AttachmentKey(taskID, filename)
	if err := t.storage.Upload(ctx, key, reader); err != nil {
		t.logger.Error("Tasks service: attachment upload failed",
			"task_id", taskID,
			"key", key,
			"error", err.Error())
		return fmt.Errorf("failed to upload attachment: %w", err)
	}

	t.logger.Info("Tasks service: attachment uploaded", "task_id", taskID, "key", key)

	return nil
}

// SaveAttachment downloads a task attachment into destDir and returns
// the written path.
func (t *Tasks) SaveAttachment(ctx context.Context, taskID, name, destDir string) (string, error) {
	key := storage.AttachmentKey(taskID, name)

	rc, err := t.storage.Download(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to download attachment: %w", err)
	}
	defer rc.Close()

	if err := os.MkdirAll(destDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	dest := filepath.Join(destDir, filepath.Base(name))
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, rc); err != nil {
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}

	t.logger.Info("Tasks service: attachment saved", "task_id", taskID, "path", dest)

	return dest, nil
}
