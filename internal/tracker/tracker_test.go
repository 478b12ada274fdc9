package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aqasim81/schema/internal/tracker"
)

func TestNew_returnsNonNil(t *testing.T) {
	t.Parallel()

	// nil querier is accepted at construction time; errors surface on use.
	tr := tracker.New(nil)
	assert.NotNil(t, tr)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state tracker.State
		want  string
	}{
		{tracker.StateAbsent, "absent"},
		{tracker.StateInitialized, "initialized"},
		{tracker.StateNamespaceOnly, "namespace-only"},
		{tracker.StateMismatch, "mismatch"},
		{tracker.State(99), "unknown"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestColumnNames(t *testing.T) {
	t.Parallel()

	cols := []tracker.Column{
		{Name: "id", Type: "integer", NotNull: true},
		{Name: "hash", Type: "text", NotNull: true},
	}

	assert.Equal(t, []string{"id", "hash"}, tracker.ColumnNames(cols))
	assert.Empty(t, tracker.ColumnNames(nil))
}
