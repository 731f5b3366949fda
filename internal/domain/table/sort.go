package table

import (
	"fmt"
	"slices"
	"strings"
)

// ColumnKey names a sortable column.
type ColumnKey string

// Direction is the sort direction of a column. The zero value means unsorted.
type Direction int

const (
	None Direction = iota
	Ascending
	Descending
)

// String returns the canonical lower-case name of d.
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// Arrow returns a header indicator for d, or an empty string when unsorted.
func (d Direction) Arrow(unicode bool) string {
	switch {
	case d == Ascending && unicode:
		return "▲"
	case d == Ascending:
		return "^"
	case d == Descending && unicode:
		return "▼"
	case d == Descending:
		return "v"
	default:
		return ""
	}
}

// ParseDirection parses none, asc, ascending, desc and descending.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return None, nil
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return None, fmt.Errorf("unknown sort direction %q", value)
	}
}

// SortDescriptor is the active sort. A None direction preserves storage order.
type SortDescriptor struct {
	Key       ColumnKey
	Direction Direction
}

// Active reports whether the descriptor requests any ordering.
func (d SortDescriptor) Active() bool {
	return d.Direction != None
}

// String renders the descriptor as key:direction.
func (d SortDescriptor) String() string {
	if d.Key == "" {
		return d.Direction.String()
	}
	return fmt.Sprintf("%s:%s", d.Key, d.Direction)
}

// Comparator orders two elements: negative when a sorts first, zero when
// equal, positive when b sorts first.
type Comparator[E any] func(a, b E) int

// SortController owns the sort descriptor and the per-column comparators.
type SortController[E any] struct {
	current     SortDescriptor
	comparators map[ColumnKey]Comparator[E]
}

// NewSortController creates a controller starting at initial.
func NewSortController[E any](initial SortDescriptor, comparators map[ColumnKey]Comparator[E]) *SortController[E] {
	registered := make(map[ColumnKey]Comparator[E], len(comparators))
	for key, cmp := range comparators {
		if cmp != nil {
			registered[key] = cmp
		}
	}
	return &SortController[E]{current: initial, comparators: registered}
}

// Toggle advances the sort cycle for key: a new key starts ascending, then
// descending, then none, then ascending again. Only the prior descriptor is
// consulted, never element values or comparator availability.
func (s *SortController[E]) Toggle(key ColumnKey) SortDescriptor {
	if s.current.Key != key {
		s.current = SortDescriptor{Key: key, Direction: Ascending}
		return s.current
	}

	switch s.current.Direction {
	case Ascending:
		s.current.Direction = Descending
	case Descending:
		s.current.Direction = None
	default:
		s.current.Direction = Ascending
	}
	return s.current
}

// Current returns the active descriptor.
func (s *SortController[E]) Current() SortDescriptor {
	return s.current
}

// Set replaces the active descriptor.
func (s *SortController[E]) Set(desc SortDescriptor) {
	s.current = desc
}

// Reset clears the sort.
func (s *SortController[E]) Reset() {
	s.current = SortDescriptor{}
}

// Register installs cmp for key; a nil cmp removes it.
func (s *SortController[E]) Register(key ColumnKey, cmp Comparator[E]) {
	if cmp == nil {
		delete(s.comparators, key)
		return
	}
	s.comparators[key] = cmp
}

// Sortable reports whether key has a comparator.
func (s *SortController[E]) Sortable(key ColumnKey) bool {
	_, ok := s.comparators[key]
	return ok
}

// Keys returns the sortable column keys in lexical order.
func (s *SortController[E]) Keys() []ColumnKey {
	keys := make([]ColumnKey, 0, len(s.comparators))
	for key := range s.comparators {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Comparator resolves the ordering for desc. An inactive descriptor yields a
// nil comparator and no error.
func (s *SortController[E]) Comparator(desc SortDescriptor) (Comparator[E], error) {
	if !desc.Active() {
		return nil, nil
	}
	cmp, ok := s.comparators[desc.Key]
	if !ok {
		return nil, newMissingComparatorError(desc.Key)
	}
	if desc.Direction == Descending {
		return func(a, b E) int { return -cmp(a, b) }, nil
	}
	return cmp, nil
}
