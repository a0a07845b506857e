package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// TaskPriority is the closed set of task priorities.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// MaxTaskTitleLength is the longest title accepted, in characters.
const MaxTaskTitleLength = 255

// Task validation errors
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong    = errors.New("task title too long")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrMissingDueDate      = errors.New("task due date is required")
	ErrEmptyTaskAuthor     = errors.New("task author cannot be empty")
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// ParseTaskStatus matches s case-insensitively against the known statuses.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", NewValidationError("status",
			fmt.Sprintf("%q is not one of %s, %s, %s, %s", s,
				TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled),
			ErrInvalidTaskStatus)
	}
	return status, nil
}

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// ParseTaskPriority matches s case-insensitively against the known priorities.
func ParseTaskPriority(s string) (TaskPriority, error) {
	priority := TaskPriority(strings.ToUpper(strings.TrimSpace(s)))
	if !priority.Valid() {
		return "", NewValidationError("priority",
			fmt.Sprintf("%q is not one of %s, %s, %s", s,
				TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh),
			ErrInvalidTaskPriority)
	}
	return priority, nil
}

// Task is a unit of work with exactly one author and at most one assignee.
//
// AuthorName and AssigneeName are read-model fields filled in by the store
// on load; they are not persisted.
type Task struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      time.Time    `json:"due_date"`
	AuthorID     uuid.UUID    `json:"author_id"`
	AuthorName   string       `json:"author_name,omitempty"`
	AssigneeID   *uuid.UUID   `json:"assignee_id,omitempty"`
	AssigneeName string       `json:"assignee_name,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewTask creates a task authored by authorID. An empty status defaults to
// PENDING.
func NewTask(
	authorID uuid.UUID,
	title, description string,
	status TaskStatus,
	priority TaskPriority,
	dueDate time.Time,
) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate.UTC(),
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the task's fields.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyTaskID)
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTaskTitle)
	}
	if utf8.RuneCountInString(t.Title) > MaxTaskTitleLength {
		return NewValidationError("title",
			fmt.Sprintf("must be at most %d characters", MaxTaskTitleLength), ErrTaskTitleTooLong)
	}
	if !t.Status.Valid() {
		return NewValidationError("status", "is not a known status", ErrInvalidTaskStatus)
	}
	if !t.Priority.Valid() {
		return NewValidationError("priority", "is not a known priority", ErrInvalidTaskPriority)
	}
	if t.DueDate.IsZero() {
		return NewValidationError("due_date", "is required", ErrMissingDueDate)
	}
	if t.AuthorID == uuid.Nil {
		return NewValidationError("author_id", "cannot be empty", ErrEmptyTaskAuthor)
	}
	return nil
}

// IsAuthor reports whether userID authored the task.
func (t *Task) IsAuthor(userID uuid.UUID) bool {
	return userID != uuid.Nil && t.AuthorID == userID
}

// IsAssignee reports whether userID is the task's assignee.
func (t *Task) IsAssignee(userID uuid.UUID) bool {
	return userID != uuid.Nil && t.AssigneeID != nil && *t.AssigneeID == userID
}

// Assign sets the assignee. The cached assignee name is cleared until the
// store reloads it.
func (t *Task) Assign(userID uuid.UUID) {
	id := userID
	t.AssigneeID = &id
	t.AssigneeName = ""
	t.UpdatedAt = time.Now().UTC()
}

// UpdateStatus moves the task to status.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !status.Valid() {
		return NewValidationError("status", "is not a known status", ErrInvalidTaskStatus)
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Update replaces the editable fields and validates the result. On error the
// task is left unchanged.
func (t *Task) Update(
	title, description string,
	status TaskStatus,
	priority TaskPriority,
	dueDate time.Time,
) error {
	updated := *t
	updated.Title = strings.TrimSpace(title)
	updated.Description = description
	updated.Status = status
	updated.Priority = priority
	updated.DueDate = dueDate.UTC()
	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*t = updated
	return nil
}
