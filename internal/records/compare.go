package records

import (
	"cmp"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/tabler/internal/config"
	"github.com/alexisbeaulieu97/tabler/internal/domain/table"
)

// ComparatorFor orders records by the typed value of column. Values that
// cannot be read as the column type sort before readable ones.
func ComparatorFor(column config.Column) table.Comparator[Record] {
	key := column.Key
	switch column.Type {
	case config.ColumnNumber:
		return typedComparator(key, toFloat64, cmp.Compare[float64])
	case config.ColumnTime:
		return typedComparator(key, toTime, time.Time.Compare)
	case config.ColumnBool:
		return typedComparator(key, toBool, compareBool)
	default:
		return func(a, b Record) int {
			left, right := a.Text(key), b.Text(key)
			if c := strings.Compare(strings.ToLower(left), strings.ToLower(right)); c != 0 {
				return c
			}
			return strings.Compare(left, right)
		}
	}
}

// Comparators builds the comparator table for every sortable column.
func Comparators(columns []config.Column) map[table.ColumnKey]table.Comparator[Record] {
	out := make(map[table.ColumnKey]table.Comparator[Record], len(columns))
	for _, col := range columns {
		if !col.Sortable {
			continue
		}
		out[table.ColumnKey(col.Key)] = ComparatorFor(col)
	}
	return out
}

func typedComparator[T any](key string, parse func(any) (T, bool), compare func(a, b T) int) table.Comparator[Record] {
	return func(a, b Record) int {
		av, aok := parseField(a, key, parse)
		bv, bok := parseField(b, key, parse)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		default:
			return compare(av, bv)
		}
	}
}

func parseField[T any](r Record, key string, parse func(any) (T, bool)) (T, bool) {
	var zero T
	raw, ok := r.Value(key)
	if !ok || raw == nil {
		return zero, false
	}
	return parse(raw)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
