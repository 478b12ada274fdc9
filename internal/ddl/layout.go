package ddl

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// maxIdentifierLength is NAMEDATALEN-1 in a stock PostgreSQL build.
const maxIdentifierLength = 63

// Default object names.
const (
	DefaultNamespace = "db_state"
	DefaultTable     = "changes"
)

// Columns lists the change table's columns in definition order.
var Columns = []string{"id", "hash", "name"} //nolint:gochecknoglobals // canonical column set

// Layout names the tracking namespace and the change table inside it.
type Layout struct {
	Namespace string
	Table     string
}

// DefaultLayout returns the db_state.changes layout.
func DefaultLayout() Layout {
	return Layout{Namespace: DefaultNamespace, Table: DefaultTable}
}

// Validate checks both names against PostgreSQL's identifier rules.
func (l Layout) Validate() error {
	if err := validateIdentifier("namespace", l.Namespace); err != nil {
		return err
	}

	if strings.HasPrefix(l.Namespace, "pg_") {
		return fmt.Errorf("%w: namespace %q: the prefix \"pg_\" is reserved for system schemas",
			ErrInvalidLayout, l.Namespace)
	}

	return validateIdentifier("table", l.Table)
}

// QuotedNamespace returns the namespace as a quoted identifier.
func (l Layout) QuotedNamespace() string {
	return pgx.Identifier{l.Namespace}.Sanitize()
}

// QualifiedTable returns the quoted, schema-qualified table name.
func (l Layout) QualifiedTable() string {
	return pgx.Identifier{l.Namespace, l.Table}.Sanitize()
}

func validateIdentifier(kind, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: %s name is empty", ErrInvalidLayout, kind)
	case len(name) > maxIdentifierLength:
		return fmt.Errorf("%w: %s name %q exceeds %d bytes", ErrInvalidLayout, kind, name, maxIdentifierLength)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %s name contains a NUL byte", ErrInvalidLayout, kind)
	}

	return nil
}
