package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tabler/internal/config"
)

func TestPredicateFor(t *testing.T) {
	t.Parallel()

	number := config.Column{Key: "size", Type: config.ColumnNumber}
	text := config.Column{Key: "name", Type: config.ColumnString}
	flag := config.Column{Key: "done", Type: config.ColumnBool}

	tests := []struct {
		name   string
		filter config.Filter
		column config.Column
		row    Record
		want   bool
	}{
		{"eq string ignores case", config.Filter{Column: "name", Op: "eq", Value: "ALPHA"}, text, rec("1", map[string]any{"name": "alpha"}), true},
		{"ne string", config.Filter{Column: "name", Op: "ne", Value: "alpha"}, text, rec("1", map[string]any{"name": "alpha"}), false},
		{"eq number", config.Filter{Column: "size", Op: "eq", Value: "3"}, number, rec("1", map[string]any{"size": 3.0}), true},
		{"eq bool", config.Filter{Column: "done", Op: "eq", Value: "true"}, flag, rec("1", map[string]any{"done": true}), true},
		{"eq missing matches empty", config.Filter{Column: "name", Op: "eq", Value: ""}, text, rec("1", nil), true},
		{"contains", config.Filter{Column: "name", Op: "contains", Value: "LPH"}, text, rec("1", map[string]any{"name": "alpha"}), true},
		{"prefix", config.Filter{Column: "name", Op: "prefix", Value: "lp"}, text, rec("1", map[string]any{"name": "alpha"}), false},
		{"gt number", config.Filter{Column: "size", Op: "gt", Value: "2"}, number, rec("1", map[string]any{"size": 10}), true},
		{"lt number", config.Filter{Column: "size", Op: "lt", Value: "2"}, number, rec("1", map[string]any{"size": 10}), false},
		{"gt string", config.Filter{Column: "name", Op: "gt", Value: "b"}, text, rec("1", map[string]any{"name": "c"}), true},
		{"gt missing number", config.Filter{Column: "size", Op: "gt", Value: "3"}, number, rec("1", nil), false},
		{"lt missing number", config.Filter{Column: "size", Op: "lt", Value: "3"}, number, rec("1", nil), false},
		{"lt nil number", config.Filter{Column: "size", Op: "lt", Value: "3"}, number, rec("1", map[string]any{"size": nil}), false},
		{"lt missing string", config.Filter{Column: "name", Op: "lt", Value: "b"}, text, rec("1", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pred, err := PredicateFor(tt.filter, tt.column)
			require.NoError(t, err)

			got, err := pred(tt.row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredicateForRejectsBadFilters(t *testing.T) {
	t.Parallel()

	number := config.Column{Key: "size", Type: config.ColumnNumber}

	_, err := PredicateFor(config.Filter{Column: "size", Op: "gt", Value: "big"}, number)
	require.Error(t, err)

	_, err = PredicateFor(config.Filter{Column: "done", Op: "lt", Value: "true"}, config.Column{Key: "done", Type: config.ColumnBool})
	require.Error(t, err)

	_, err = PredicateFor(config.Filter{Column: "size", Op: "between"}, number)
	require.Error(t, err)
}

func TestPredicateForFailsOnUnreadableRow(t *testing.T) {
	t.Parallel()

	pred, err := PredicateFor(config.Filter{Column: "size", Op: "gt", Value: "1"}, config.Column{Key: "size", Type: config.ColumnNumber})
	require.NoError(t, err)

	_, err = pred(rec("7", map[string]any{"size": "lots"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `row "7"`)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	columns := []config.Column{{Key: "name"}, {Key: "owner"}}
	assert.Nil(t, Search("  ", columns))

	pred := Search("ada", columns)
	require.NotNil(t, pred)

	ok, err := pred(rec("1", map[string]any{"name": "compiler", "owner": "Ada"}))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pred(rec("2", map[string]any{"name": "compiler", "owner": "Grace"}))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFieldDecorator(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FieldDecorator(""))
	assert.Equal(t, "red", FieldDecorator("color")(rec("1", map[string]any{"color": "red"})))
}
