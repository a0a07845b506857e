package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/policy"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTask(author *domain.User) *domain.Task {
	return &domain.Task{
		ID:         uuid.New(),
		Title:      "T1",
		Status:     domain.TaskStatusPending,
		Priority:   domain.TaskPriorityMedium,
		DueDate:    time.Now().Add(48 * time.Hour).UTC(),
		AuthorID:   author.ID,
		AuthorName: author.FullName(),
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
}

func taskRouter(tasks *mocks.MockTaskService) http.Handler {
	return newTestRouter(NewTaskHandler(tasks, nil), nil, nil)
}

func TestTaskHandler_RequiresPrincipal(t *testing.T) {
	router := taskRouter(&mocks.MockTaskService{})
	id := uuid.NewString()

	for _, rt := range []struct{ method, path string }{
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodGet, "/api/tasks/" + id},
		{http.MethodPut, "/api/tasks/" + id},
		{http.MethodPatch, "/api/tasks/" + id + "/status"},
		{http.MethodPatch, "/api/tasks/" + id + "/assign"},
		{http.MethodDelete, "/api/tasks/" + id},
	} {
		rr := doRequest(t, router, rt.method, rt.path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", rt.method, rt.path)
	}
}

func TestTaskHandler_CreateTask(t *testing.T) {
	actor := testUser(domain.RoleUser)
	due := time.Now().Add(5 * 24 * time.Hour).UTC().Truncate(time.Second)

	t.Run("success", func(t *testing.T) {
		var got service.CreateTaskInput
		tasks := &mocks.MockTaskService{
			CreateTaskFn: func(_ context.Context, a *domain.User, in service.CreateTaskInput) (*domain.Task, error) {
				assert.Equal(t, actor, a)
				got = in
				return sampleTask(actor), nil
			},
		}

		rr := doRequest(t, taskRouter(tasks), http.MethodPost, "/api/tasks", map[string]interface{}{
			"title":    "T1",
			"status":   "pending",
			"priority": "medium",
			"due_date": due.Format(time.RFC3339),
		}, actor)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, domain.TaskStatusPending, got.Status)
		assert.Equal(t, domain.TaskPriorityMedium, got.Priority)
		assert.True(t, due.Equal(got.DueDate))
		assert.Nil(t, got.AssigneeID)

		resp := decodeBody[TaskResponse](t, rr)
		assert.Equal(t, "T1", resp.Title)
		assert.Equal(t, actor.ID, resp.AuthorID)
		assert.Equal(t, "Test User", resp.AuthorName)
	})

	t.Run("with assignee", func(t *testing.T) {
		assignee := uuid.New()
		var got service.CreateTaskInput
		tasks := &mocks.MockTaskService{
			CreateTaskFn: func(_ context.Context, _ *domain.User, in service.CreateTaskInput) (*domain.Task, error) {
				got = in
				return sampleTask(actor), nil
			},
		}

		rr := doRequest(t, taskRouter(tasks), http.MethodPost, "/api/tasks", map[string]interface{}{
			"title":       "T1",
			"priority":    "HIGH",
			"due_date":    due.Format(time.RFC3339),
			"assignee_id": assignee.String(),
		}, actor)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		require.NotNil(t, got.AssigneeID)
		assert.Equal(t, assignee, *got.AssigneeID)
		assert.Equal(t, domain.TaskStatus(""), got.Status, "service applies the default status")
	})

	t.Run("rejected input", func(t *testing.T) {
		tasks := &mocks.MockTaskService{
			CreateTaskFn: func(context.Context, *domain.User, service.CreateTaskInput) (*domain.Task, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}
		router := taskRouter(tasks)

		bodies := []map[string]interface{}{
			{"priority": "LOW", "due_date": due.Format(time.RFC3339)},
			{"title": "T", "due_date": due.Format(time.RFC3339)},
			{"title": "T", "priority": "LOW"},
			{"title": "T", "priority": "URGENT", "due_date": due.Format(time.RFC3339)},
			{"title": "T", "priority": "LOW", "status": "DONE", "due_date": due.Format(time.RFC3339)},
			{"title": "T", "priority": "LOW", "due_date": due.Format(time.RFC3339), "assignee_id": "nope"},
		}
		for _, body := range bodies {
			rr := doRequest(t, router, http.MethodPost, "/api/tasks", body, actor)
			assert.Equal(t, http.StatusBadRequest, rr.Code, "%v", body)
		}
	})

	t.Run("forbidden assignee", func(t *testing.T) {
		tasks := &mocks.MockTaskService{DefaultError: policy.ErrAccessDenied}
		rr := doRequest(t, taskRouter(tasks), http.MethodPost, "/api/tasks", map[string]interface{}{
			"title":       "T1",
			"priority":    "LOW",
			"due_date":    due.Format(time.RFC3339),
			"assignee_id": uuid.NewString(),
		}, actor)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	actor := testUser(domain.RoleUser)
	task := sampleTask(actor)

	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"found", "/api/tasks/" + task.ID.String(), nil, http.StatusOK, ""},
		{"forbidden", "/api/tasks/" + task.ID.String(), policy.ErrAccessDenied, http.StatusForbidden, "Access denied"},
		{"missing", "/api/tasks/" + task.ID.String(), store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"bad id", "/api/tasks/not-a-uuid", nil, http.StatusBadRequest, "validation failed: id has invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := &mocks.MockTaskService{Task: task, DefaultError: tt.err}
			rr := doRequest(t, taskRouter(tasks), http.MethodGet, tt.path, nil, actor)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeBody[shared.ErrorResponse](t, rr).Error)
			} else {
				assert.Equal(t, task.ID, decodeBody[TaskResponse](t, rr).ID)
			}
		})
	}
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	admin := testUser(domain.RoleAdmin)
	task := sampleTask(admin)

	var got service.UpdateTaskInput
	tasks := &mocks.MockTaskService{
		UpdateTaskFn: func(_ context.Context, _ *domain.User, id uuid.UUID, in service.UpdateTaskInput) (*domain.Task, error) {
			assert.Equal(t, task.ID, id)
			got = in
			return task, nil
		},
	}
	router := taskRouter(tasks)

	rr := doRequest(t, router, http.MethodPut, "/api/tasks/"+task.ID.String(), map[string]interface{}{
		"title":    "renamed",
		"status":   "in_progress",
		"priority": "low",
	}, admin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, domain.TaskStatusInProgress, got.Status)
	assert.Equal(t, domain.TaskPriorityLow, got.Priority)
	assert.True(t, got.DueDate.IsZero())

	rr = doRequest(t, router, http.MethodPut, "/api/tasks/"+task.ID.String(),
		map[string]interface{}{"description": "no title"}, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	denied := taskRouter(&mocks.MockTaskService{DefaultError: policy.ErrAccessDenied})
	rr = doRequest(t, denied, http.MethodPut, "/api/tasks/"+task.ID.String(),
		map[string]interface{}{"title": "x"}, testUser(domain.RoleUser))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestTaskHandler_UpdateTaskStatus(t *testing.T) {
	actor := testUser(domain.RoleUser)
	task := sampleTask(actor)

	var gotStatus string
	tasks := &mocks.MockTaskService{
		UpdateTaskStatusFn: func(_ context.Context, _ *domain.User, _ uuid.UUID, status string) (*domain.Task, error) {
			gotStatus = status
			if _, err := domain.ParseTaskStatus(status); err != nil {
				return nil, err
			}
			return task, nil
		},
	}
	router := taskRouter(tasks)
	path := "/api/tasks/" + task.ID.String() + "/status"

	rr := doRequest(t, router, http.MethodPatch, path+"?status=completed", nil, actor)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "completed", gotStatus)

	rr = doRequest(t, router, http.MethodPatch, path, map[string]string{"status": "IN_PROGRESS"}, actor)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "IN_PROGRESS", gotStatus)

	rr = doRequest(t, router, http.MethodPatch, path+"?status=finished", nil, actor)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodPatch, path, nil, actor)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "missing status")
	assert.Equal(t, "", gotStatus)

	rr = doRequest(t, router, http.MethodPatch, path, "{broken", actor)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTaskHandler_AssignTask(t *testing.T) {
	admin := testUser(domain.RoleAdmin)
	task := sampleTask(admin)
	assignee := uuid.New()

	var gotAssignee uuid.UUID
	tasks := &mocks.MockTaskService{
		AssignTaskFn: func(_ context.Context, _ *domain.User, _ uuid.UUID, id uuid.UUID) (*domain.Task, error) {
			gotAssignee = id
			return task, nil
		},
	}
	router := taskRouter(tasks)
	path := "/api/tasks/" + task.ID.String() + "/assign"

	rr := doRequest(t, router, http.MethodPatch, path, map[string]string{"assignee_id": assignee.String()}, admin)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, assignee, gotAssignee)

	rr = doRequest(t, router, http.MethodPatch, path, map[string]string{}, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	denied := taskRouter(&mocks.MockTaskService{DefaultError: policy.ErrAccessDenied})
	rr = doRequest(t, denied, http.MethodPatch, path, map[string]string{"assignee_id": assignee.String()},
		testUser(domain.RoleUser))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	admin := testUser(domain.RoleAdmin)
	id := uuid.New()

	rr := doRequest(t, taskRouter(&mocks.MockTaskService{}), http.MethodDelete, "/api/tasks/"+id.String(), nil, admin)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = doRequest(t, taskRouter(&mocks.MockTaskService{DefaultError: store.ErrTaskNotFound}),
		http.MethodDelete, "/api/tasks/"+id.String(), nil, admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTaskHandler_ListTasks(t *testing.T) {
	actor := testUser(domain.RoleUser)

	var gotPage, gotSize int
	tasks := &mocks.MockTaskService{
		ListTasksFn: func(_ context.Context, _ *domain.User, page, size int) ([]*domain.Task, error) {
			gotPage, gotSize = page, size
			return []*domain.Task{}, nil
		},
	}
	router := taskRouter(tasks)

	rr := doRequest(t, router, http.MethodGet, "/api/tasks", nil, actor)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, gotPage)
	assert.Equal(t, store.DefaultPageSize, gotSize)
	assert.JSONEq(t, "[]", rr.Body.String())

	rr = doRequest(t, router, http.MethodGet, "/api/tasks?page=5&size=10", nil, actor)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, gotPage)
	assert.Equal(t, 10, gotSize)

	rr = doRequest(t, router, http.MethodGet, "/api/tasks?page=-1&size=0", nil, actor)
	require.Equal(t, http.StatusOK, rr.Code, "out-of-range pages are the service's concern")
	assert.Equal(t, -1, gotPage)

	rr = doRequest(t, router, http.MethodGet, "/api/tasks?page=one", nil, actor)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
