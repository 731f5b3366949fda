package table

import (
	"fmt"
	"strings"
)

// Layout selects how the presentation layer arranges projected rows.
type Layout int

const (
	// LayoutList is a scrolling list; the only layout that supports reordering.
	LayoutList Layout = iota
	// LayoutStack is a plain vertical stack of rows.
	LayoutStack
	// LayoutGrid flows rows into a fixed number of columns.
	LayoutGrid
)

func (l Layout) String() string {
	switch l {
	case LayoutStack:
		return "stack"
	case LayoutGrid:
		return "grid"
	default:
		return "list"
	}
}

// ParseLayout parses list, stack or grid. An empty value means list.
func ParseLayout(value string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "list":
		return LayoutList, nil
	case "stack":
		return LayoutStack, nil
	case "grid":
		return LayoutGrid, nil
	default:
		return LayoutList, fmt.Errorf("unknown layout %q", value)
	}
}

// Cell is the grid coordinate of a projected row.
type Cell struct {
	Row    int
	Column int
}

func cellFor(layout Layout, columns, position int) Cell {
	if layout != LayoutGrid || columns <= 1 {
		return Cell{Row: position}
	}
	return Cell{Row: position / columns, Column: position % columns}
}

// HeaderContext is handed to a HeaderRenderer on every projection.
type HeaderContext struct {
	Sort        SortDescriptor
	Sortable    []ColumnKey
	VisibleRows int
	TotalRows   int
}

// HeaderRenderer produces the header for a projection.
type HeaderRenderer func(HeaderContext) string

// Decorator produces a per-row decoration token (a background or an overlay)
// that the presentation layer maps onto its own styling.
type Decorator[E any] func(E) string
