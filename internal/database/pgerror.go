package database

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// catalogUniqueIndexes are the system catalog indexes a concurrent CREATE
// trips over once the competing transaction commits. PostgreSQL reports
// those as unique_violation rather than duplicate_schema/duplicate_table.
var catalogUniqueIndexes = map[string]bool{ //nolint:gochecknoglobals // lookup table
	"pg_namespace_nspname_index": true,
	"pg_class_relname_nsp_index": true,
	"pg_type_typname_nsp_index":  true,
}

// SQLState returns the SQLSTATE code carried by err, or "" when err was not
// reported by the server.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// IsStatementError reports whether err was raised by the server while
// executing a statement, as opposed to a transport or client-side failure.
func IsStatementError(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr)
}

// IsAlreadyExists reports whether err means the object being created
// already exists.
func IsAlreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgerrcode.DuplicateSchema, pgerrcode.DuplicateTable, pgerrcode.DuplicateObject:
		return true
	case pgerrcode.UniqueViolation:
		return catalogUniqueIndexes[pgErr.ConstraintName]
	default:
		return false
	}
}
