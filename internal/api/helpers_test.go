package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/stretchr/testify/require"
)

func testUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		Email:     uuid.NewString()[:8] + "@x.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
}

// newTestRouter mounts the handlers the way the server does, minus the
// authentication middleware; tests inject the principal directly.
func newTestRouter(tasks *TaskHandler, comments *CommentHandler, users *UserHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		if tasks != nil {
			r.Post("/tasks", tasks.CreateTask)
			r.Get("/tasks", tasks.ListTasks)
			r.Get("/tasks/{id}", tasks.GetTask)
			r.Put("/tasks/{id}", tasks.UpdateTask)
			r.Patch("/tasks/{id}/status", tasks.UpdateTaskStatus)
			r.Patch("/tasks/{id}/assign", tasks.AssignTask)
			r.Delete("/tasks/{id}", tasks.DeleteTask)
		}
		if comments != nil {
			r.Post("/comments/{taskId}/comments", comments.AddComment)
			r.Get("/comments/{taskId}", comments.ListComments)
			r.Delete("/comments/{id}", comments.DeleteComment)
		}
		if users != nil {
			r.Get("/users/me", users.Me)
			r.Get("/users", users.ListUsers)
		}
	})
	return r
}

func doRequest(
	t *testing.T,
	h http.Handler,
	method, path string,
	body interface{},
	principal *domain.User,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if principal != nil {
		req = req.WithContext(shared.WithPrincipal(req.Context(), principal))
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}
