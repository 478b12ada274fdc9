package ddl

import (
	"fmt"
	"slices"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/aqasim81/schema/internal/parser"
)

// Validate parses every statement of p and checks that together they create
// exactly p.Layout: the namespace first, then the table with the canonical
// columns, neither guarded by IF NOT EXISTS.
func Validate(p *Plan) error {
	if len(p.Statements) != 2 {
		return fmt.Errorf("%w: want 2 statements, got %d", ErrInvalidPlan, len(p.Statements))
	}

	if err := validateCreateSchema(p.Statements[0], p.Layout); err != nil {
		return err
	}

	return validateCreateTable(p.Statements[1], p.Layout)
}

func validateCreateSchema(s Statement, l Layout) error {
	stmt, err := parseStatement(s, KindCreateSchema)
	if err != nil {
		return err
	}

	cs := stmt.GetCreateSchemaStmt()
	if cs == nil {
		return fmt.Errorf("%w: %s statement is not a CREATE SCHEMA", ErrInvalidPlan, s.Kind)
	}

	if cs.Schemaname != l.Namespace {
		return fmt.Errorf("%w: creates schema %q, want %q", ErrInvalidPlan, cs.Schemaname, l.Namespace)
	}

	if cs.IfNotExists {
		return fmt.Errorf("%w: CREATE SCHEMA must not use IF NOT EXISTS", ErrInvalidPlan)
	}

	return nil
}

func validateCreateTable(s Statement, l Layout) error {
	stmt, err := parseStatement(s, KindCreateTable)
	if err != nil {
		return err
	}

	ct := stmt.GetCreateStmt()
	if ct == nil || ct.Relation == nil {
		return fmt.Errorf("%w: %s statement is not a CREATE TABLE", ErrInvalidPlan, s.Kind)
	}

	if ct.Relation.Schemaname != l.Namespace || ct.Relation.Relname != l.Table {
		return fmt.Errorf("%w: creates table %q.%q, want %q.%q", ErrInvalidPlan,
			ct.Relation.Schemaname, ct.Relation.Relname, l.Namespace, l.Table)
	}

	if ct.IfNotExists {
		return fmt.Errorf("%w: CREATE TABLE must not use IF NOT EXISTS", ErrInvalidPlan)
	}

	cols := columnNames(ct.TableElts)
	if !slices.Equal(cols, Columns) {
		return fmt.Errorf("%w: table columns %v, want %v", ErrInvalidPlan, cols, Columns)
	}

	return nil
}

func parseStatement(s Statement, want Kind) (*pg_query.Node, error) {
	if s.Kind != want {
		return nil, fmt.Errorf("%w: statement kind %q, want %q", ErrInvalidPlan, s.Kind, want)
	}

	node, err := parser.ParseOne(s.SQL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPlan, s.Kind, err)
	}

	return node, nil
}

func columnNames(elts []*pg_query.Node) []string {
	var names []string

	for _, elt := range elts {
		if col := elt.GetColumnDef(); col != nil {
			names = append(names, col.Colname)
		}
	}

	return names
}
