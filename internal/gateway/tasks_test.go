package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandvibes/taskdesk/internal/model"
)

func TestListTasks(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/tasks", r.URL.Path)
		fmt.Fprint(w, `{"data":[
			{"id":"1","title":"Update client proposal","priority":"High","due_date":"2025-11-27"},
			{"id":"2","title":"Review design mockups","priority":"Medium","due_date":"2025-11-27"}
		]}`)
	}))

	tasks, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Update client proposal", tasks[0].Title)
	assert.Equal(t, model.PriorityHigh, tasks[0].Priority)
}

func TestGetTask_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))

	_, err := client.GetTask(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCreateTask(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Team meeting prep", got["title"])
		assert.Equal(t, string(model.StatusNotStarted), got["status"])

		fmt.Fprint(w, `{"data":[{"id":"5","title":"Team meeting prep","priority":"Medium","due_date":"2025-11-28","assigned_to":"Emma Rodriguez","status":"Not Started"}]}`)
	}))

	task, err := client.CreateTask(context.Background(), model.CreateTaskParams{
		Title:      "Team meeting prep",
		DueDate:    "2025-11-28",
		AssignedTo: "Emma Rodriguez",
		Priority:   model.PriorityMedium,
	})
	require.NoError(t, err)
	assert.Equal(t, "5", task.ID)
	assert.Equal(t, model.StatusNotStarted, task.Status)
}

func TestListEmployees(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/employees", r.URL.Path)
		fmt.Fprint(w, `{"data":[{"id":"e-1","name":"Sarah Chen","status":"available","next_free":"Now"}]}`)
	}))

	employees, err := client.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, model.Available, employees[0].Status)
}

func TestAddComment_FillsIDAndTimestamp(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var got model.Comment
		require.NoError(t, json.Unmarshal(body, &got))
		assert.NotEmpty(t, got.ID)
		assert.False(t, got.CreatedAt.IsZero())

		fmt.Fprintf(w, `{"data":[%s]}`, body)
	}))

	comment, err := client.AddComment(context.Background(), model.Comment{
		TaskID: "1",
		Author: "You",
		Text:   "Thanks! Updated with client feedback.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "1", comment.TaskID)
}

func TestListComments_GatewayError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"internal"}}`)
	}))

	_, err := client.ListComments(context.Background(), "1")
	assert.Error(t, err)
}
