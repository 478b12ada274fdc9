package tracker

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"

	"github.com/aqasim81/schema/internal/ddl"
)

// Querier is the read side of a connection. pgx.Tx, *pgx.Conn and
// *pgxpool.Pool all satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Column describes one column of a table as reported by the catalog.
type Column struct {
	Name    string
	Type    string
	NotNull bool
}

// Tracker reads the tracking layout from pg_catalog. It never writes.
type Tracker struct {
	q Querier
}

// New creates a Tracker backed by q.
func New(q Querier) *Tracker {
	return &Tracker{q: q}
}

// NamespaceExists reports whether a schema named namespace exists.
func (t *Tracker) NamespaceExists(ctx context.Context, namespace string) (bool, error) {
	var exists bool

	err := t.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pg_catalog.pg_namespace WHERE nspname = $1)`,
		namespace,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking namespace %s: %w", ErrInspection, namespace, err)
	}

	return exists, nil
}

// TableExists reports whether namespace.table exists as a table.
func (t *Tracker) TableExists(ctx context.Context, namespace, table string) (bool, error) {
	var exists bool

	err := t.q.QueryRow(ctx,
		`SELECT EXISTS(
		     SELECT 1
		     FROM pg_catalog.pg_class c
		     JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		     WHERE n.nspname = $1 AND c.relname = $2 AND c.relkind IN ('r', 'p')
		 )`,
		namespace, table,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking table %s.%s: %w", ErrInspection, namespace, table, err)
	}

	return exists, nil
}

// Columns returns the live columns of namespace.table in definition order.
func (t *Tracker) Columns(ctx context.Context, namespace, table string) ([]Column, error) {
	rows, err := t.q.Query(ctx,
		`SELECT a.attname, pg_catalog.format_type(a.atttypid, a.atttypmod), a.attnotnull
		 FROM pg_catalog.pg_attribute a
		 JOIN pg_catalog.pg_class c ON c.oid = a.attrelid
		 JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		 WHERE n.nspname = $1 AND c.relname = $2 AND a.attnum > 0 AND NOT a.attisdropped
		 ORDER BY a.attnum`,
		namespace, table,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying columns of %s.%s: %w", ErrInspection, namespace, table, err)
	}
	defer rows.Close()

	cols, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Column, error) {
		var c Column
		if scanErr := row.Scan(&c.Name, &c.Type, &c.NotNull); scanErr != nil {
			return Column{}, fmt.Errorf("scanning column row: %w", scanErr)
		}

		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning columns of %s.%s: %w", ErrInspection, namespace, table, err)
	}

	return cols, nil
}

// Inspect classifies how much of l already exists.
func (t *Tracker) Inspect(ctx context.Context, l ddl.Layout) (State, error) {
	nsExists, err := t.NamespaceExists(ctx, l.Namespace)
	if err != nil {
		return StateAbsent, err
	}

	if !nsExists {
		return StateAbsent, nil
	}

	tableExists, err := t.TableExists(ctx, l.Namespace, l.Table)
	if err != nil {
		return StateAbsent, err
	}

	if !tableExists {
		return StateNamespaceOnly, nil
	}

	cols, err := t.Columns(ctx, l.Namespace, l.Table)
	if err != nil {
		return StateAbsent, err
	}

	if !slices.Equal(ColumnNames(cols), ddl.Columns) {
		return StateMismatch, nil
	}

	return StateInitialized, nil
}

// ColumnNames returns the names of cols in order.
func ColumnNames(cols []Column) []string {
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
	}

	return names
}
