package table

import "slices"

// Identity extracts the stable identity of an element.
type Identity[E any, K comparable] func(E) K

// Membership answers whether an identity is currently part of a collection.
type Membership[K comparable] interface {
	Contains(id K) bool
}

// Collection is the host-owned ordered sequence of elements bound to a table.
// Each identity appears at most once. Nothing about positions is cached, so the
// host may insert or remove elements freely between renders.
type Collection[E any, K comparable] struct {
	identity Identity[E, K]
	items    []E
}

// NewCollection binds items to a collection, rejecting duplicate identities.
func NewCollection[E any, K comparable](identity Identity[E, K], items ...E) (*Collection[E, K], error) {
	c := &Collection[E, K]{identity: identity}
	if err := c.Replace(items...); err != nil {
		return nil, err
	}
	return c, nil
}

// Len returns the number of elements.
func (c *Collection[E, K]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the element at storage index i.
func (c *Collection[E, K]) At(i int) (E, bool) {
	var zero E
	if c == nil || i < 0 || i >= len(c.items) {
		return zero, false
	}
	return c.items[i], true
}

// Items returns a copy of the elements in storage order.
func (c *Collection[E, K]) Items() []E {
	if c == nil {
		return nil
	}
	return slices.Clone(c.items)
}

// IDs returns the identities in storage order.
func (c *Collection[E, K]) IDs() []K {
	if c == nil {
		return nil
	}
	ids := make([]K, len(c.items))
	for i, item := range c.items {
		ids[i] = c.identity(item)
	}
	return ids
}

// IndexOf returns the storage index of id or -1.
func (c *Collection[E, K]) IndexOf(id K) int {
	if c == nil {
		return -1
	}
	return slices.IndexFunc(c.items, func(item E) bool {
		return c.identity(item) == id
	})
}

// Contains implements Membership.
func (c *Collection[E, K]) Contains(id K) bool {
	return c.IndexOf(id) >= 0
}

// Append adds e at the end of the collection.
func (c *Collection[E, K]) Append(e E) error {
	return c.Insert(c.Len(), e)
}

// Insert places e at storage index i.
func (c *Collection[E, K]) Insert(i int, e E) error {
	if c == nil {
		return newStateError("collection is nil", nil)
	}
	if i < 0 || i > len(c.items) {
		return newRangeError("insert offset out of range", i, len(c.items))
	}
	id := c.identity(e)
	if c.Contains(id) {
		return newDuplicateError(id)
	}
	c.items = slices.Insert(c.items, i, e)
	return nil
}

// Remove deletes the element identified by id and reports whether it existed.
func (c *Collection[E, K]) Remove(id K) bool {
	if c == nil {
		return false
	}
	idx := c.IndexOf(id)
	if idx < 0 {
		return false
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	return true
}

// Update replaces the element sharing e's identity in place.
func (c *Collection[E, K]) Update(e E) bool {
	if c == nil {
		return false
	}
	idx := c.IndexOf(c.identity(e))
	if idx < 0 {
		return false
	}
	c.items[idx] = e
	return true
}

// Replace swaps the whole content of the collection. On a duplicate identity
// the collection is left unchanged.
func (c *Collection[E, K]) Replace(items ...E) error {
	if c == nil {
		return newStateError("collection is nil", nil)
	}
	seen := make(map[K]struct{}, len(items))
	for _, item := range items {
		id := c.identity(item)
		if _, ok := seen[id]; ok {
			return newDuplicateError(id)
		}
		seen[id] = struct{}{}
	}
	c.items = slices.Clone(items)
	return nil
}

// Move reorders the collection in place; see the package-level Move.
func (c *Collection[E, K]) Move(from []int, to int) error {
	if c == nil {
		return newStateError("collection is nil", nil)
	}
	return Move(c.items, from, to)
}
