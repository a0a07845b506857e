package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment validation errors
var (
	ErrEmptyCommentID      = errors.New("comment ID cannot be empty")
	ErrEmptyCommentTask    = errors.New("comment task cannot be empty")
	ErrEmptyCommentAuthor  = errors.New("comment author cannot be empty")
	ErrEmptyCommentContent = errors.New("comment content cannot be empty")
)

// Comment is a note attached to a task. AuthorEmail is a read-model field.
type Comment struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"task_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	AuthorEmail string    `json:"author_email,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewComment creates a comment by authorID on taskID.
func NewComment(taskID, authorID uuid.UUID, content string) (*Comment, error) {
	now := time.Now().UTC()
	comment := &Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks the comment's fields.
func (c *Comment) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyCommentID)
	}
	if c.TaskID == uuid.Nil {
		return NewValidationError("task_id", "cannot be empty", ErrEmptyCommentTask)
	}
	if c.AuthorID == uuid.Nil {
		return NewValidationError("author_id", "cannot be empty", ErrEmptyCommentAuthor)
	}
	if strings.TrimSpace(c.Content) == "" {
		return NewValidationError("content", "cannot be empty", ErrEmptyCommentContent)
	}
	return nil
}

// IsAuthor reports whether userID wrote the comment.
func (c *Comment) IsAuthor(userID uuid.UUID) bool {
	return userID != uuid.Nil && c.AuthorID == userID
}
