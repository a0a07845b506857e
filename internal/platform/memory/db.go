package memory

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

type taskRecord struct {
	task domain.Task
	seq  uint64
}

type commentRecord struct {
	comment domain.Comment
	seq     uint64
}

// state is everything a unit of work may change.
type state struct {
	users    map[uuid.UUID]domain.User
	emails   map[string]uuid.UUID
	tasks    map[uuid.UUID]taskRecord
	comments map[uuid.UUID]commentRecord
	seq      uint64
}

func newState() *state {
	return &state{
		users:    make(map[uuid.UUID]domain.User),
		emails:   make(map[string]uuid.UUID),
		tasks:    make(map[uuid.UUID]taskRecord),
		comments: make(map[uuid.UUID]commentRecord),
	}
}

func (s *state) clone() *state {
	c := &state{
		users:    make(map[uuid.UUID]domain.User, len(s.users)),
		emails:   make(map[string]uuid.UUID, len(s.emails)),
		tasks:    make(map[uuid.UUID]taskRecord, len(s.tasks)),
		comments: make(map[uuid.UUID]commentRecord, len(s.comments)),
		seq:      s.seq,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.emails {
		c.emails[k] = v
	}
	for k, v := range s.tasks {
		v.task.AssigneeID = copyID(v.task.AssigneeID)
		c.tasks[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	return c
}

func (s *state) next() uint64 {
	s.seq++
	return s.seq
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// DB is an in-memory database implementing store.UnitOfWork.
type DB struct {
	mu     sync.Mutex
	state  *state
	hasher store.PasswordHasher
	logger *slog.Logger
}

var _ store.UnitOfWork = (*DB)(nil)

// New creates an empty in-memory database. hasher hashes passwords on user
// creation. If logger is nil, slog.Default() is used.
func New(hasher store.PasswordHasher, logger *slog.Logger) *DB {
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DB{
		state:  newState(),
		hasher: hasher,
		logger: logger.With(slog.String("component", "memory_store")),
	}
}

// ErrReadOnly is returned by store writes made inside View.
var ErrReadOnly = errors.New("write attempted in a read-only unit of work")

func (db *DB) stores(readOnly bool) store.Stores {
	return store.Stores{
		Users:    &userStore{db: db, readOnly: readOnly},
		Tasks:    &taskStore{db: db, readOnly: readOnly},
		Comments: &commentStore{db: db, readOnly: readOnly},
	}
}

// Do implements store.UnitOfWork.Do. Changes made by fn are discarded when
// it returns an error or panics.
func (db *DB) Do(ctx context.Context, fn store.UnitFn) (err error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	snapshot := db.state.clone()
	defer func() {
		if p := recover(); p != nil {
			db.state = snapshot
			// ALLOW-PANIC: propagating caught panic from unit of work
			panic(p)
		}
		if err != nil {
			db.state = snapshot
			logger.FromContextOrDefault(ctx, db.logger).Debug("rolled back unit of work",
				slog.String("error", err.Error()))
		}
	}()

	return fn(ctx, db.stores(false))
}

// View implements store.UnitOfWork.View. fn reads the live state; any write
// it attempts fails with ErrReadOnly.
func (db *DB) View(ctx context.Context, fn store.UnitFn) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return fn(ctx, db.stores(true))
}
