package records

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/tabler/internal/config"
	"github.com/alexisbeaulieu97/tabler/internal/domain/table"
)

// PredicateFor turns a definition filter into a table predicate. Ordering
// operators (gt, lt) compare typed values and never match a row without a
// value for the column; a row whose field cannot be read as the column type
// makes the predicate fail rather than silently hiding it.
func PredicateFor(filter config.Filter, column config.Column) (table.Predicate[Record], error) {
	key := filter.Column
	want := filter.Value

	switch filter.Op {
	case "eq", "ne":
		negate := filter.Op == "ne"
		return func(r Record) (bool, error) {
			equal, err := fieldEquals(r, column, want)
			if err != nil {
				return false, err
			}
			return equal != negate, nil
		}, nil
	case "contains":
		needle := strings.ToLower(want)
		return table.Match(func(r Record) bool {
			return strings.Contains(strings.ToLower(r.Text(key)), needle)
		}), nil
	case "prefix":
		needle := strings.ToLower(want)
		return table.Match(func(r Record) bool {
			return strings.HasPrefix(strings.ToLower(r.Text(key)), needle)
		}), nil
	case "gt", "lt":
		if column.Type == config.ColumnBool {
			return nil, fmt.Errorf("operator %s is not defined for bool column %q", filter.Op, column.Key)
		}
		bound := Record{Fields: map[string]any{key: want}}
		if column.Type == config.ColumnNumber {
			if _, ok := toFloat64(want); !ok {
				return nil, fmt.Errorf("filter value %q is not a number", want)
			}
		}
		if column.Type == config.ColumnTime {
			if _, ok := toTime(want); !ok {
				return nil, fmt.Errorf("filter value %q is not a time", want)
			}
		}
		compare := ComparatorFor(column)
		greater := filter.Op == "gt"
		return func(r Record) (bool, error) {
			if raw, ok := r.Value(key); !ok || raw == nil {
				return false, nil
			}
			if err := checkReadable(r, column); err != nil {
				return false, err
			}
			c := compare(r, bound)
			if greater {
				return c > 0, nil
			}
			return c < 0, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown filter operator %q", filter.Op)
	}
}

// Search matches records whose text in any of columns contains query,
// ignoring case. An empty query matches everything.
func Search(query string, columns []config.Column) table.Predicate[Record] {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	return table.Match(func(r Record) bool {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(r.Text(col.Key)), needle) {
				return true
			}
		}
		return false
	})
}

// FieldDecorator exposes the text of column key as a decoration token.
func FieldDecorator(key string) table.Decorator[Record] {
	if key == "" {
		return nil
	}
	return func(r Record) string {
		return r.Text(key)
	}
}

func fieldEquals(r Record, column config.Column, want string) (bool, error) {
	raw, ok := r.Value(column.Key)
	if !ok || raw == nil {
		return want == "", nil
	}

	switch column.Type {
	case config.ColumnNumber:
		got, ok := toFloat64(raw)
		if !ok {
			return false, unreadable(r, column)
		}
		target, ok := toFloat64(want)
		return ok && got == target, nil
	case config.ColumnBool:
		got, ok := toBool(raw)
		if !ok {
			return false, unreadable(r, column)
		}
		target, ok := toBool(want)
		return ok && got == target, nil
	case config.ColumnTime:
		got, ok := toTime(raw)
		if !ok {
			return false, unreadable(r, column)
		}
		target, ok := toTime(want)
		return ok && got.Equal(target), nil
	default:
		return strings.EqualFold(formatValue(raw), want), nil
	}
}

func checkReadable(r Record, column config.Column) error {
	raw, ok := r.Value(column.Key)
	if !ok || raw == nil {
		return nil
	}
	switch column.Type {
	case config.ColumnNumber:
		if _, ok := toFloat64(raw); !ok {
			return unreadable(r, column)
		}
	case config.ColumnTime:
		if _, ok := toTime(raw); !ok {
			return unreadable(r, column)
		}
	}
	return nil
}

func unreadable(r Record, column config.Column) error {
	return fmt.Errorf("row %q: value %v of %s column %q is unreadable", r.ID, r.Fields[column.Key], column.Type, column.Key)
}
