package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/store"
)

// UnitOfWork implements store.UnitOfWork with one database transaction per
// call.
type UnitOfWork struct {
	db     *sql.DB
	hasher store.PasswordHasher
	logger *slog.Logger
}

var _ store.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a UnitOfWork over db.
func NewUnitOfWork(db *sql.DB, hasher store.PasswordHasher, logger *slog.Logger) *UnitOfWork {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnitOfWork{db: db, hasher: hasher, logger: logger}
}

// Stores returns stores bound to tx, or to the pool when tx is a *sql.DB.
func (u *UnitOfWork) Stores(tx store.DBTX) store.Stores {
	return store.Stores{
		Users:    NewPostgresUserStore(tx, u.hasher, u.logger),
		Tasks:    NewPostgresTaskStore(tx, u.logger),
		Comments: NewPostgresCommentStore(tx, u.logger),
	}
}

// Do implements store.UnitOfWork.Do.
func (u *UnitOfWork) Do(ctx context.Context, fn store.UnitFn) error {
	return store.RunInTransaction(ctx, u.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, u.Stores(tx))
	})
}

// View implements store.UnitOfWork.View.
func (u *UnitOfWork) View(ctx context.Context, fn store.UnitFn) error {
	opts := &sql.TxOptions{ReadOnly: true}
	return store.RunInTransactionWithOptions(ctx, u.db, opts, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, u.Stores(tx))
	})
}
