package store

import "context"

// Stores groups the stores bound to a single unit of work.
type Stores struct {
	Users    UserStore
	Tasks    TaskStore
	Comments CommentStore
}

// UnitFn runs against stores bound to one transaction.
type UnitFn func(ctx context.Context, s Stores) error

// UnitOfWork runs a sequence of store operations atomically. When fn returns
// an error nothing it wrote is kept.
type UnitOfWork interface {
	// Do runs fn in a read-write transaction.
	Do(ctx context.Context, fn UnitFn) error

	// View runs fn in a read-only transaction.
	View(ctx context.Context, fn UnitFn) error
}
