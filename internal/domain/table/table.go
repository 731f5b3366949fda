package table

// Config describes a table. Every field is optional; a zero Config yields an
// unsorted, unfiltered list without header or decorations.
type Config[E any, K comparable] struct {
	Layout      Layout
	GridColumns int

	Filter      Predicate[E]
	Comparators map[ColumnKey]Comparator[E]
	InitialSort SortDescriptor

	Header        HeaderRenderer
	RowBackground Decorator[E]
	RowOverlay    Decorator[E]

	// OnMove enables reordering for list layouts and is called after every
	// successful move.
	OnMove func(from []int, to int)
	// OnHover is called when a row gains (hovered=true) or loses the hover.
	OnHover func(id K, hovered bool)
}

// Table is the headless controller behind a table, list, stack or grid view.
// It owns the sort descriptor, the filter and the hover slot; the element
// collection stays with the host and is passed in per call.
//
// Table is not safe for concurrent use. Hosts running several goroutines must
// serialise access to the Table and the Collection themselves.
type Table[E any, K comparable] struct {
	identity Identity[E, K]
	config   Config[E, K]
	filter   Filter[E]
	sort     *SortController[E]
	hover    Hover[K]
}

// New builds a Table from identity and cfg.
func New[E any, K comparable](identity Identity[E, K], cfg Config[E, K]) *Table[E, K] {
	if cfg.GridColumns < 1 {
		cfg.GridColumns = 1
	}
	return &Table[E, K]{
		identity: identity,
		config:   cfg,
		filter:   NewFilter(cfg.Filter),
		sort:     NewSortController(cfg.InitialSort, cfg.Comparators),
	}
}

// Layout returns the configured layout.
func (t *Table[E, K]) Layout() Layout {
	return t.config.Layout
}

// GridColumns returns the number of grid columns (1 for non-grid layouts).
func (t *Table[E, K]) GridColumns() int {
	if t.config.Layout != LayoutGrid {
		return 1
	}
	return t.config.GridColumns
}

// Reorderable reports whether Move is permitted.
func (t *Table[E, K]) Reorderable() bool {
	return t.config.Layout == LayoutList && t.config.OnMove != nil
}

// Move reorders c in place; see the package-level Move for the offset rules.
func (t *Table[E, K]) Move(c *Collection[E, K], from []int, to int) error {
	if !t.Reorderable() {
		return newStateError("reordering is disabled", map[string]interface{}{
			"layout": t.config.Layout.String(),
		})
	}
	if c == nil {
		return newStateError("no collection bound", nil)
	}
	if err := c.Move(from, to); err != nil {
		return err
	}
	t.config.OnMove(from, to)
	return nil
}

// ToggleSort advances the sort cycle for key and returns the new descriptor.
func (t *Table[E, K]) ToggleSort(key ColumnKey) SortDescriptor {
	return t.sort.Toggle(key)
}

// SetSort replaces the sort descriptor.
func (t *Table[E, K]) SetSort(desc SortDescriptor) {
	t.sort.Set(desc)
}

// Sort returns the requested sort descriptor.
func (t *Table[E, K]) Sort() SortDescriptor {
	return t.sort.Current()
}

// Sortable reports whether key has a registered comparator.
func (t *Table[E, K]) Sortable(key ColumnKey) bool {
	return t.sort.Sortable(key)
}

// SetFilter replaces the filter predicate; nil shows every row.
func (t *Table[E, K]) SetFilter(pred Predicate[E]) {
	t.filter = NewFilter(pred)
}

// Filtering reports whether a filter predicate is active.
func (t *Table[E, K]) Filtering() bool {
	return t.filter.Active()
}

// SetHovered records id as the hovered row.
func (t *Table[E, K]) SetHovered(id K) {
	prev, had := t.hover.Raw()
	if had && prev == id {
		return
	}
	t.hover.Set(id)
	if t.config.OnHover == nil {
		return
	}
	if had {
		t.config.OnHover(prev, false)
	}
	t.config.OnHover(id, true)
}

// ClearHover empties the hover slot.
func (t *Table[E, K]) ClearHover() {
	prev, had := t.hover.Raw()
	t.hover.Clear()
	if had && t.config.OnHover != nil {
		t.config.OnHover(prev, false)
	}
}

// CurrentHover returns the hovered id if it is still a member of c.
func (t *Table[E, K]) CurrentHover(c *Collection[E, K]) (K, bool) {
	if c == nil {
		var zero K
		return zero, false
	}
	return t.hover.Current(c)
}

// Project renders c into its visible row sequence.
func (t *Table[E, K]) Project(c *Collection[E, K]) (*Projection[E], error) {
	var items []E
	if c != nil {
		items = c.items
	}
	hovered, hasHover := t.CurrentHover(c)

	projection, err := Project(Request[E, K]{
		Items:       items,
		Identity:    t.identity,
		Filter:      t.filter,
		Sort:        t.sort.Current(),
		Sorter:      t.sort,
		Hovered:     hovered,
		HasHover:    hasHover,
		Layout:      t.config.Layout,
		GridColumns: t.GridColumns(),
		Background:  t.config.RowBackground,
		Overlay:     t.config.RowOverlay,
	})
	if err != nil {
		return nil, err
	}

	if t.config.Header != nil {
		projection.Header = t.config.Header(HeaderContext{
			Sort:        projection.Sort,
			Sortable:    t.sort.Keys(),
			VisibleRows: projection.Len(),
			TotalRows:   projection.Total,
		})
	}
	return projection, nil
}
