package table

import (
	"iter"
	"slices"
)

// RowProjection is the per-row output of a render pass. It carries everything
// the presentation layer needs so that it performs no business logic.
type RowProjection[E any] struct {
	Element      E
	Position     int
	StorageIndex int
	IsVisible    bool
	IsHovered    bool
	IsEven       bool
	Cell         Cell
	Background   string
	Overlay      string
}

// Projection is the ordered, filtered result of one render pass.
type Projection[E any] struct {
	rows []RowProjection[E]

	// Sort is the ordering that was actually applied. It is inactive when the
	// requested column had no comparator.
	Sort SortDescriptor
	// Header is the rendered header, empty when no renderer is configured.
	Header string
	// Warnings hold non-fatal problems such as a missing comparator.
	Warnings []error
	// Total is the number of elements considered before filtering.
	Total int
}

// Len returns the number of visible rows.
func (p *Projection[E]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.rows)
}

// Hidden returns the number of rows removed by the filter.
func (p *Projection[E]) Hidden() int {
	if p == nil {
		return 0
	}
	return p.Total - len(p.rows)
}

// Row returns the visible row at position i.
func (p *Projection[E]) Row(i int) (RowProjection[E], bool) {
	if p == nil || i < 0 || i >= len(p.rows) {
		return RowProjection[E]{}, false
	}
	return p.rows[i], true
}

// Rows returns a copy of the visible rows.
func (p *Projection[E]) Rows() []RowProjection[E] {
	if p == nil {
		return nil
	}
	return slices.Clone(p.rows)
}

// All iterates the visible rows by position. The sequence can be ranged over
// any number of times.
func (p *Projection[E]) All() iter.Seq2[int, RowProjection[E]] {
	return func(yield func(int, RowProjection[E]) bool) {
		if p == nil {
			return
		}
		for i, row := range p.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// Request gathers the inputs of a single projection.
type Request[E any, K comparable] struct {
	Items       []E
	Identity    Identity[E, K]
	Filter      Filter[E]
	Sort        SortDescriptor
	Sorter      *SortController[E]
	Hovered     K
	HasHover    bool
	Layout      Layout
	GridColumns int
	Background  Decorator[E]
	Overlay     Decorator[E]
}

type indexed[E any] struct {
	index   int
	element E
}

// Project composes sort, filter and hover into the visible row sequence.
//
// An active sort produces a stable ordering of a copy of the items; storage
// order is never touched. A missing comparator falls back to storage order and
// is reported through Warnings. A failing predicate aborts the whole pass and
// no partial rows are returned.
func Project[E any, K comparable](req Request[E, K]) (*Projection[E], error) {
	view := make([]indexed[E], len(req.Items))
	for i, item := range req.Items {
		view[i] = indexed[E]{index: i, element: item}
	}

	out := &Projection[E]{Total: len(req.Items)}

	if req.Sort.Active() {
		var (
			cmp Comparator[E]
			err error
		)
		if req.Sorter != nil {
			cmp, err = req.Sorter.Comparator(req.Sort)
		} else {
			err = newMissingComparatorError(req.Sort.Key)
		}
		if err != nil {
			out.Warnings = append(out.Warnings, err)
			out.Sort = SortDescriptor{Key: req.Sort.Key}
		} else {
			slices.SortStableFunc(view, func(a, b indexed[E]) int {
				return cmp(a.element, b.element)
			})
			out.Sort = req.Sort
		}
	}

	rows := make([]RowProjection[E], 0, len(view))
	for _, entry := range view {
		visible, err := req.Filter.IsVisible(entry.element)
		if err != nil {
			return nil, asDomainError(err).WithContext(map[string]interface{}{"storage_index": entry.index})
		}
		if !visible {
			continue
		}

		position := len(rows)
		row := RowProjection[E]{
			Element:      entry.element,
			Position:     position,
			StorageIndex: entry.index,
			IsVisible:    true,
			IsEven:       position%2 == 0,
			Cell:         cellFor(req.Layout, req.GridColumns, position),
		}
		if req.HasHover && req.Identity != nil {
			row.IsHovered = req.Identity(entry.element) == req.Hovered
		}
		if req.Background != nil {
			row.Background = req.Background(entry.element)
		}
		if req.Overlay != nil {
			row.Overlay = req.Overlay(entry.element)
		}
		rows = append(rows, row)
	}

	out.rows = rows
	return out, nil
}

func asDomainError(err error) *DomainError {
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return newPredicateError(err)
}
