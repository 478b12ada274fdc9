package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/aqasim81/schema/internal/database"
)

func TestIsAlreadyExists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "duplicate schema",
			err:  &pgconn.PgError{Code: pgerrcode.DuplicateSchema},
			want: true,
		},
		{
			name: "duplicate table",
			err:  &pgconn.PgError{Code: pgerrcode.DuplicateTable},
			want: true,
		},
		{
			name: "duplicate object",
			err:  &pgconn.PgError{Code: pgerrcode.DuplicateObject},
			want: true,
		},
		{
			name: "wrapped duplicate schema",
			err:  fmt.Errorf("creating schema: %w", &pgconn.PgError{Code: pgerrcode.DuplicateSchema}),
			want: true,
		},
		{
			name: "concurrent create on namespace index",
			err: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "pg_namespace_nspname_index",
			},
			want: true,
		},
		{
			name: "concurrent create on type index",
			err: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "pg_type_typname_nsp_index",
			},
			want: true,
		},
		{
			name: "unique violation on user table",
			err: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_key",
			},
			want: false,
		},
		{
			name: "insufficient privilege",
			err:  &pgconn.PgError{Code: pgerrcode.InsufficientPrivilege},
			want: false,
		},
		{
			name: "non-server error",
			err:  errors.New("conn closed"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, database.IsAlreadyExists(tt.err))
		})
	}
}

func TestIsStatementError(t *testing.T) {
	t.Parallel()

	assert.True(t, database.IsStatementError(&pgconn.PgError{Code: pgerrcode.SyntaxError}))
	assert.True(t, database.IsStatementError(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgerrcode.SyntaxError})))
	assert.False(t, database.IsStatementError(errors.New("unexpected EOF")))
	assert.False(t, database.IsStatementError(nil))
}

func TestSQLState(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pgerrcode.InsufficientPrivilege,
		database.SQLState(fmt.Errorf("x: %w", &pgconn.PgError{Code: pgerrcode.InsufficientPrivilege})))
	assert.Empty(t, database.SQLState(errors.New("plain")))
}
