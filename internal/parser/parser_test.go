package parser_test

import (
	"testing"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqasim81/schema/internal/parser"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sql       string
		wantErr   bool
		wantStmts int
		checkNode func(t *testing.T, result *parser.ParseResult)
	}{
		{
			name:      "CREATE SCHEMA returns one statement",
			sql:       `CREATE SCHEMA "db_state";`,
			wantStmts: 1,
			checkNode: func(t *testing.T, result *parser.ParseResult) {
				t.Helper()
				node, ok := result.Stmts[0].Stmt.Node.(*pg_query.Node_CreateSchemaStmt)
				require.True(t, ok, "expected CreateSchemaStmt node")
				assert.Equal(t, "db_state", node.CreateSchemaStmt.Schemaname)
			},
		},
		{
			name:      "qualified CREATE TABLE keeps schema and relation",
			sql:       `CREATE TABLE "db_state"."changes" (id SERIAL PRIMARY KEY, hash TEXT NOT NULL);`,
			wantStmts: 1,
			checkNode: func(t *testing.T, result *parser.ParseResult) {
				t.Helper()
				node, ok := result.Stmts[0].Stmt.Node.(*pg_query.Node_CreateStmt)
				require.True(t, ok, "expected CreateStmt node")
				assert.Equal(t, "db_state", node.CreateStmt.Relation.Schemaname)
				assert.Equal(t, "changes", node.CreateStmt.Relation.Relname)
			},
		},
		{
			name:      "multi-statement SQL returns correct count",
			sql:       "CREATE SCHEMA a; CREATE TABLE a.b (id INT); CREATE TABLE a.c (id INT);",
			wantStmts: 3,
		},
		{
			name:    "invalid SQL returns error",
			sql:     "CREATE SCHEMA;",
			wantErr: true,
		},
		{
			name:      "empty input returns zero statements",
			sql:       "",
			wantStmts: 0,
		},
		{
			name:      "whitespace-only input returns zero statements",
			sql:       "  \n\t  ",
			wantStmts: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := parser.Parse(tt.sql)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "parsing SQL")

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Len(t, result.Stmts, tt.wantStmts)
			assert.Equal(t, tt.sql, result.SQL)

			if tt.checkNode != nil {
				tt.checkNode(t, result)
			}
		})
	}
}

func TestParseOne(t *testing.T) {
	t.Parallel()

	node, err := parser.ParseOne("CREATE SCHEMA s")
	require.NoError(t, err)
	assert.NotNil(t, node.GetCreateSchemaStmt())

	_, err = parser.ParseOne("CREATE SCHEMA a; CREATE SCHEMA b")
	require.ErrorIs(t, err, parser.ErrNotSingleStatement)

	_, err = parser.ParseOne("   ")
	require.ErrorIs(t, err, parser.ErrNotSingleStatement)

	_, err = parser.ParseOne("CREATE SCHEMA;")
	require.Error(t, err)
	assert.NotErrorIs(t, err, parser.ErrNotSingleStatement)
}
