//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqasim81/schema/internal/ddl"
	"github.com/aqasim81/schema/internal/tracker"
)

func TestTracker_inspectStates(t *testing.T) {
	t.Parallel()

	conn := SetupPostgres(t)
	ctx := context.Background()
	tr := tracker.New(conn)
	l := ddl.DefaultLayout()

	state, err := tr.Inspect(ctx, l)
	require.NoError(t, err)
	assert.Equal(t, tracker.StateAbsent, state)

	_, err = conn.Exec(ctx, `CREATE SCHEMA db_state`)
	require.NoError(t, err)

	state, err = tr.Inspect(ctx, l)
	require.NoError(t, err)
	assert.Equal(t, tracker.StateNamespaceOnly, state)

	_, err = conn.Exec(ctx, `CREATE TABLE db_state.changes (id SERIAL PRIMARY KEY, version TEXT)`)
	require.NoError(t, err)

	state, err = tr.Inspect(ctx, l)
	require.NoError(t, err)
	assert.Equal(t, tracker.StateMismatch, state)

	_, err = conn.Exec(ctx, `DROP TABLE db_state.changes`)
	require.NoError(t, err)

	_, err = conn.Exec(ctx, `CREATE TABLE db_state.changes (id SERIAL PRIMARY KEY, hash TEXT NOT NULL, name TEXT NOT NULL)`)
	require.NoError(t, err)

	state, err = tr.Inspect(ctx, l)
	require.NoError(t, err)
	assert.Equal(t, tracker.StateInitialized, state)
}

func TestTracker_columns_reportTypesAndNullability(t *testing.T) {
	t.Parallel()

	conn := SetupPostgres(t)
	ctx := context.Background()

	_, err := conn.Exec(ctx, `CREATE SCHEMA s; CREATE TABLE s.t (a integer, b varchar(10) NOT NULL)`)
	require.NoError(t, err)

	cols, err := tracker.New(conn).Columns(ctx, "s", "t")
	require.NoError(t, err)

	want := []tracker.Column{
		{Name: "a", Type: "integer", NotNull: false},
		{Name: "b", Type: "character varying(10)", NotNull: true},
	}
	if diff := cmp.Diff(want, cols); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
}

func TestTracker_unknownTable_returnsNoColumns(t *testing.T) {
	t.Parallel()

	conn := SetupPostgres(t)

	cols, err := tracker.New(conn).Columns(context.Background(), "nope", "nothing")
	require.NoError(t, err)
	assert.Empty(t, cols)
}
