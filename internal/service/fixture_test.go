package service_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// countingUOW counts read-only units so tests can observe cache hits.
type countingUOW struct {
	store.UnitOfWork
	views atomic.Int32
}

func (c *countingUOW) View(ctx context.Context, fn store.UnitFn) error {
	c.views.Add(1)
	return c.UnitOfWork.View(ctx, fn)
}

type fixture struct {
	uow      *countingUOW
	users    service.UserService
	tasks    service.TaskService
	comments service.CommentService

	admin *domain.User
	alice *domain.User
	bob   *domain.User
	carol *domain.User
}

func newFixture(t *testing.T, cacheCfg config.CacheConfig) *fixture {
	t.Helper()
	ctx := context.Background()

	hasher := auth.NewBcrypt(bcrypt.MinCost)
	uow := &countingUOW{UnitOfWork: memory.New(hasher, nil)}

	users, err := service.NewUserService(uow, hasher, nil)
	require.NoError(t, err)
	tasks, err := service.NewTaskService(uow, cacheCfg, nil)
	require.NoError(t, err)
	comments, err := service.NewCommentService(uow, nil)
	require.NoError(t, err)

	f := &fixture{uow: uow, users: users, tasks: tasks, comments: comments}
	register := func(email, first string) *domain.User {
		u, err := users.Register(ctx, email, "password123", first, "Tester")
		require.NoError(t, err)
		return u
	}

	register("admin@x.com", "Root")
	f.admin, err = users.PromoteToAdmin(ctx, "admin@x.com")
	require.NoError(t, err)
	f.alice = register("a@x.com", "Alice")
	f.bob = register("b@x.com", "Bob")
	f.carol = register("c@x.com", "Carol")
	return f
}

func (f *fixture) createTask(t *testing.T, author *domain.User, title string) *domain.Task {
	t.Helper()
	task, err := f.tasks.CreateTask(context.Background(), author, service.CreateTaskInput{
		Title:    title,
		Priority: domain.TaskPriorityMedium,
		DueDate:  time.Now().Add(5 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return task
}

// assignedTask is authored by alice and assigned to carol.
func (f *fixture) assignedTask(t *testing.T) *domain.Task {
	t.Helper()
	task := f.createTask(t, f.alice, "T1")
	task, err := f.tasks.AssignTask(context.Background(), f.admin, task.ID, f.carol.ID)
	require.NoError(t, err)
	return task
}
