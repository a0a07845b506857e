package policy

import (
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// ErrAccessDenied is returned when a rule rejects an action.
var ErrAccessDenied = errors.New("access denied")

func isMember(actor *domain.User, task *domain.Task) bool {
	return task.IsAuthor(actor.ID) || task.IsAssignee(actor.ID)
}

func allow(ok bool) error {
	if ok {
		return nil
	}
	return ErrAccessDenied
}

// CanCreateTask allows any authenticated user with a known role.
func CanCreateTask(actor *domain.User) error {
	if actor == nil {
		return ErrAccessDenied
	}
	return allow(actor.Role == domain.RoleAdmin || actor.Role == domain.RoleUser)
}

// CanReadTask allows admins and the task's author or assignee.
func CanReadTask(actor *domain.User, task *domain.Task) error {
	if actor == nil || task == nil {
		return ErrAccessDenied
	}
	return allow(actor.IsAdmin() || isMember(actor, task))
}

// CanUpdateTask guards full-field updates, which only admins may make.
func CanUpdateTask(actor *domain.User, task *domain.Task) error {
	if actor == nil || task == nil {
		return ErrAccessDenied
	}
	return allow(actor.IsAdmin())
}

// CanUpdateTaskStatus allows admins and the task's assignee. Authorship
// alone is not enough.
func CanUpdateTaskStatus(actor *domain.User, task *domain.Task) error {
	if actor == nil || task == nil {
		return ErrAccessDenied
	}
	return allow(actor.IsAdmin() || task.IsAssignee(actor.ID))
}

// CanDeleteTask is admin only. It does not need the task, so callers check
// it before loading anything.
func CanDeleteTask(actor *domain.User) error {
	return allow(actor.IsAdmin())
}

// CanAssignTask is admin only. It also governs setting an assignee when a
// task is created.
func CanAssignTask(actor *domain.User) error {
	return allow(actor.IsAdmin())
}

// CanCreateComment allows admins and the task's author or assignee.
func CanCreateComment(actor *domain.User, task *domain.Task) error {
	if actor == nil || task == nil {
		return ErrAccessDenied
	}
	return allow(actor.IsAdmin() || isMember(actor, task))
}

// CanReadComments allows admins and the task's author or assignee.
func CanReadComments(actor *domain.User, task *domain.Task) error {
	if actor == nil || task == nil {
		return ErrAccessDenied
	}
	return allow(actor.IsAdmin() || isMember(actor, task))
}

// CanDeleteComment allows admins and the comment's author.
func CanDeleteComment(actor *domain.User, comment *domain.Comment) error {
	if actor == nil || comment == nil {
		return ErrAccessDenied
	}
	return allow(actor.IsAdmin() || comment.IsAuthor(actor.ID))
}

// CanListUsers is admin only.
func CanListUsers(actor *domain.User) error {
	return allow(actor.IsAdmin())
}

// ListScope describes which tasks a list query may return.
type ListScope struct {
	// All is set for admins. Otherwise only tasks authored by or assigned
	// to UserID are visible.
	All    bool
	UserID uuid.UUID
}

// Key identifies the scope in cache keys.
func (s ListScope) Key() string {
	if s.All {
		return "all"
	}
	return "user:" + s.UserID.String()
}

// TaskListScope returns the visible task set for actor.
func TaskListScope(actor *domain.User) (ListScope, error) {
	if actor == nil {
		return ListScope{}, ErrAccessDenied
	}
	if actor.IsAdmin() {
		return ListScope{All: true}, nil
	}
	if actor.Role != domain.RoleUser || actor.ID == uuid.Nil {
		return ListScope{}, ErrAccessDenied
	}
	return ListScope{UserID: actor.ID}, nil
}
