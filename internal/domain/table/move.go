package table

import "slices"

// Move reorders items in place. The elements at the from offsets are lifted out
// in ascending offset order and reinserted as one block into the gap named by
// to, where to is a position in the list as it stood before the move: the
// block lands in front of the element that originally occupied offset to, or
// at the end when to equals len(items). Duplicate offsets count once.
//
// Any offset outside [0, len) or a destination outside [0, len] yields an
// ErrCodeInvalidRange error and leaves items untouched.
func Move[E any](items []E, from []int, to int) error {
	n := len(items)
	if to < 0 || to > n {
		return newRangeError("destination offset out of range", to, n)
	}
	for _, offset := range from {
		if offset < 0 || offset >= n {
			return newRangeError("source offset out of range", offset, n)
		}
	}
	if len(from) == 0 {
		return nil
	}

	offsets := slices.Clone(from)
	slices.Sort(offsets)
	offsets = slices.Compact(offsets)

	selected := make(map[int]struct{}, len(offsets))
	before := 0
	for _, offset := range offsets {
		selected[offset] = struct{}{}
		if offset < to {
			before++
		}
	}

	moved := make([]E, 0, len(offsets))
	rest := make([]E, 0, n-len(offsets))
	for i, item := range items {
		if _, ok := selected[i]; ok {
			moved = append(moved, item)
			continue
		}
		rest = append(rest, item)
	}

	insertAt := to - before
	copy(items, rest[:insertAt])
	copy(items[insertAt:], moved)
	copy(items[insertAt+len(moved):], rest[insertAt:])
	return nil
}
