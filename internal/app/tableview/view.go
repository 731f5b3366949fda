package tableview

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/tabler/internal/config"
	"github.com/alexisbeaulieu97/tabler/internal/domain/table"
	"github.com/alexisbeaulieu97/tabler/internal/logger"
	"github.com/alexisbeaulieu97/tabler/internal/records"
)

// View binds a definition's rows to its table controller. A View is not safe
// for concurrent use.
type View struct {
	Definition *config.Definition
	Columns    []config.Column

	rows    *Collection
	table   *Table
	base    table.Predicate[records.Record]
	filters []table.Predicate[records.Record]
	search  string
	moves   int
	log     *logger.Logger
}

// Rows returns the backing collection.
func (v *View) Rows() *Collection {
	return v.rows
}

// Table returns the controller.
func (v *View) Table() *Table {
	return v.table
}

// Moves returns how many reorders have been applied.
func (v *View) Moves() int {
	return v.moves
}

// Project renders the current projection, logging sort fallbacks.
func (v *View) Project() (*Projection, error) {
	projection, err := v.table.Project(v.rows)
	if err != nil {
		v.log.Error(err, "projection failed")
		return nil, err
	}
	v.log.Warnings("sort fell back to storage order", projection.Warnings)
	return projection, nil
}

// ToggleColumn advances the sort cycle of the n-th (1-based) column.
func (v *View) ToggleColumn(n int) (table.SortDescriptor, bool) {
	if n < 1 || n > len(v.Columns) {
		return v.table.Sort(), false
	}
	return v.table.ToggleSort(table.ColumnKey(v.Columns[n-1].Key)), true
}

// ApplySort sets the sort from "column" or "column:direction". A bare column
// sorts ascending.
func (v *View) ApplySort(expr string) error {
	key, dirText, hasDir := strings.Cut(strings.TrimSpace(expr), ":")
	if key == "" {
		return fmt.Errorf("sort %q names no column", expr)
	}
	if _, ok := v.Definition.ColumnByKey(key); !ok {
		return fmt.Errorf("sort column %q is not defined", key)
	}
	dir := table.Ascending
	if hasDir {
		parsed, err := table.ParseDirection(dirText)
		if err != nil {
			return err
		}
		dir = parsed
	}
	v.table.SetSort(table.SortDescriptor{Key: table.ColumnKey(key), Direction: dir})
	return nil
}

var filterOperators = []struct {
	token string
	op    string
}{
	{"!=", "ne"},
	{"=", "eq"},
	{"~", "contains"},
	{"^", "prefix"},
	{">", "gt"},
	{"<", "lt"},
}

// ParseFilter reads "column<op>value" where op is one of = != ~ ^ > <.
func ParseFilter(expr string) (config.Filter, error) {
	best := -1
	var match config.Filter
	for _, candidate := range filterOperators {
		idx := strings.Index(expr, candidate.token)
		if idx <= 0 || (best >= 0 && idx >= best) {
			continue
		}
		best = idx
		match = config.Filter{
			Column: strings.TrimSpace(expr[:idx]),
			Op:     candidate.op,
			Value:  strings.TrimSpace(expr[idx+len(candidate.token):]),
		}
	}
	if best < 0 || match.Column == "" {
		return config.Filter{}, fmt.Errorf("filter %q must look like column=value", expr)
	}
	return match, nil
}

// AddFilter narrows the view by one more column filter, combined with the
// definition's own filter.
func (v *View) AddFilter(expr string) error {
	filter, err := ParseFilter(expr)
	if err != nil {
		return err
	}
	column, ok := v.Definition.ColumnByKey(filter.Column)
	if !ok {
		return fmt.Errorf("filter column %q is not defined", filter.Column)
	}
	pred, err := records.PredicateFor(filter, column)
	if err != nil {
		return err
	}
	v.filters = append(v.filters, pred)
	v.refilter()
	return nil
}

// SetSearch applies a free-text match across every column. An empty query
// removes it.
func (v *View) SetSearch(query string) {
	v.search = strings.TrimSpace(query)
	v.refilter()
}

// Search returns the active free-text query.
func (v *View) Search() string {
	return v.search
}

func (v *View) refilter() {
	preds := make([]table.Predicate[records.Record], 0, len(v.filters)+2)
	if v.base != nil {
		preds = append(preds, v.base)
	}
	preds = append(preds, v.filters...)
	if search := records.Search(v.search, v.Columns); search != nil {
		preds = append(preds, search)
	}
	if len(preds) == 0 {
		v.table.SetFilter(nil)
		return
	}
	v.table.SetFilter(table.All(preds...))
}

// Hover marks id as hovered. Unknown ids are rejected.
func (v *View) Hover(id string) error {
	if !v.Definition.Hover {
		return fmt.Errorf("hover is disabled for %q", v.Definition.Name)
	}
	if !v.rows.Contains(id) {
		return fmt.Errorf("row %q does not exist", id)
	}
	v.table.SetHovered(id)
	return nil
}

// Hovered returns the hovered row id, if it still exists.
func (v *View) Hovered() (string, bool) {
	return v.table.CurrentHover(v.rows)
}

// MoveHovered shifts the hovered row delta places in storage order. It
// reports false when nothing is hovered or the row is already at the edge.
func (v *View) MoveHovered(delta int) (bool, error) {
	id, ok := v.Hovered()
	if !ok {
		return false, nil
	}
	return v.MoveRow(id, delta)
}

// MoveRow shifts row id delta places in storage order. It reports false when
// the row is unknown or already at the edge.
func (v *View) MoveRow(id string, delta int) (bool, error) {
	from := v.rows.IndexOf(id)
	if from < 0 || delta == 0 {
		return false, nil
	}
	target := from + delta
	if target < 0 || target >= v.rows.Len() {
		return false, nil
	}
	to := target
	if delta > 0 {
		to = target + 1
	}
	if err := v.table.Move(v.rows, []int{from}, to); err != nil {
		return false, err
	}
	return true, nil
}

// Cells renders the display text of row for every column.
func (v *View) Cells(row records.Record) []string {
	out := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		out[i] = row.Text(col.Key)
	}
	return out
}
