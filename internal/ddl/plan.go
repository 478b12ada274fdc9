package ddl

import (
	"fmt"
	"strings"
)

// createSchemaSQL creates the tracking namespace. No IF NOT EXISTS: a
// duplicate must fail so the caller can tell it apart from a fresh create.
const createSchemaSQL = `CREATE SCHEMA %s`

// createTableSQL is the DDL for the change record table.
const createTableSQL = `CREATE TABLE %s (
    id    SERIAL PRIMARY KEY,
    hash  TEXT NOT NULL,
    name  TEXT NOT NULL
)`

// Kind identifies what a Statement creates.
type Kind string

// Statement kinds, in execution order.
const (
	KindCreateSchema Kind = "CREATE SCHEMA"
	KindCreateTable  Kind = "CREATE TABLE"
)

// Statement is a single DDL statement of a Plan.
type Statement struct {
	Kind   Kind
	Target string // quoted object name, for display
	SQL    string // without trailing semicolon
}

// Plan is the ordered DDL that brings a Layout into existence.
// All statements are meant to run inside one transaction.
type Plan struct {
	Layout     Layout
	Statements []Statement
}

// Build renders and validates the plan for l.
func Build(l Layout) (*Plan, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	plan := &Plan{
		Layout: l,
		Statements: []Statement{
			{
				Kind:   KindCreateSchema,
				Target: l.QuotedNamespace(),
				SQL:    fmt.Sprintf(createSchemaSQL, l.QuotedNamespace()),
			},
			{
				Kind:   KindCreateTable,
				Target: l.QualifiedTable(),
				SQL:    fmt.Sprintf(createTableSQL, l.QualifiedTable()),
			},
		},
	}

	if err := Validate(plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// Script renders the plan as a transaction script, as setup would run it.
func (p *Plan) Script() string {
	var b strings.Builder

	b.WriteString("BEGIN;\n")

	for _, s := range p.Statements {
		b.WriteString("\n")
		b.WriteString(s.SQL)
		b.WriteString(";\n")
	}

	b.WriteString("\nCOMMIT;\n")

	return b.String()
}
