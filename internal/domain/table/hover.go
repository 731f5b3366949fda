package table

// Hover is the single-slot, process-local record of which row the pointer is
// over. It is validated against collection membership when read, never when
// written, so removing an element silently ends its hover.
type Hover[K comparable] struct {
	id  K
	set bool
}

// Set records id as hovered.
func (h *Hover[K]) Set(id K) {
	h.id = id
	h.set = true
}

// Clear empties the slot.
func (h *Hover[K]) Clear() {
	var zero K
	h.id = zero
	h.set = false
}

// Raw returns the stored id without membership validation.
func (h *Hover[K]) Raw() (K, bool) {
	return h.id, h.set
}

// Current returns the hovered id when it is still a member.
func (h *Hover[K]) Current(members Membership[K]) (K, bool) {
	var zero K
	if !h.set {
		return zero, false
	}
	if members == nil || !members.Contains(h.id) {
		return zero, false
	}
	return h.id, true
}
