package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"email unique violation", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: usersEmailConstraint}, store.ErrEmailExists},
		{"other unique violation", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "tasks_pkey"}, store.ErrDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_author_id_fkey"}, store.ErrInvalidEntity},
		{"check violation", &pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_status_check"}, store.ErrInvalidEntity},
		{"not null violation", &pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"}, store.ErrInvalidEntity},
		{"wrapped pg error", fmt.Errorf("exec: %w", &pgconn.PgError{Code: foreignKeyViolationCode}), store.ErrInvalidEntity},
		{"unmapped error", plain, plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, MapError(tt.err), tt.wantErr)
		})
	}

	assert.NoError(t, MapError(nil))
	assert.NotErrorIs(t, MapError(&pgconn.PgError{Code: uniqueViolationCode}), store.ErrEmailExists)
}

func TestViolationHelpers(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolationCode}
	fk := &pgconn.PgError{Code: foreignKeyViolationCode}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("wrapped: %w", fk)))
	assert.False(t, IsForeignKeyViolation(errors.New("other")))
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, checkRowsAffected(sqlmock.NewResult(0, 1), store.ErrTaskNotFound))
	assert.ErrorIs(t, checkRowsAffected(sqlmock.NewResult(0, 0), store.ErrTaskNotFound), store.ErrTaskNotFound)
	assert.Error(t, checkRowsAffected(nil, store.ErrTaskNotFound))

	failing := sqlmock.NewErrorResult(errors.New("driver does not support RowsAffected"))
	assert.ErrorContains(t, checkRowsAffected(failing, store.ErrTaskNotFound), "rows affected")
}
