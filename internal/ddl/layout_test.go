package ddl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqasim81/schema/internal/ddl"
)

func TestLayout_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		layout      ddl.Layout
		errContains string
	}{
		{name: "default layout", layout: ddl.DefaultLayout()},
		{name: "mixed case and spaces", layout: ddl.Layout{Namespace: "Tracking State", Table: "Applied"}},
		{name: "63 byte names", layout: ddl.Layout{Namespace: strings.Repeat("n", 63), Table: strings.Repeat("t", 63)}},
		{
			name:        "empty namespace",
			layout:      ddl.Layout{Table: "changes"},
			errContains: "namespace name is empty",
		},
		{
			name:        "empty table",
			layout:      ddl.Layout{Namespace: "db_state"},
			errContains: "table name is empty",
		},
		{
			name:        "namespace too long",
			layout:      ddl.Layout{Namespace: strings.Repeat("n", 64), Table: "changes"},
			errContains: "exceeds 63 bytes",
		},
		{
			name:        "table with NUL byte",
			layout:      ddl.Layout{Namespace: "db_state", Table: "chan\x00ges"},
			errContains: "NUL byte",
		},
		{
			name:        "reserved pg_ prefix",
			layout:      ddl.Layout{Namespace: "pg_state", Table: "changes"},
			errContains: "reserved",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.layout.Validate()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ddl.ErrInvalidLayout)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLayout_quoting(t *testing.T) {
	t.Parallel()

	l := ddl.Layout{Namespace: "db_state", Table: "changes"}
	assert.Equal(t, `"db_state"`, l.QuotedNamespace())
	assert.Equal(t, `"db_state"."changes"`, l.QualifiedTable())

	odd := ddl.Layout{Namespace: `a"b`, Table: "c d"}
	assert.Equal(t, `"a""b"."c d"`, odd.QualifiedTable())
}
