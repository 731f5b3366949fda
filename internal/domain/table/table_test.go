package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func newLetters(t *testing.T) *Collection[item, int] {
	t.Helper()
	c, err := NewCollection(itemID, letters()...)
	require.NoError(t, err)
	return c
}

func TestTableProjectIsIdempotent(t *testing.T) {
	t.Parallel()

	c := newLetters(t)
	tbl := New(itemID, Config[item, int]{
		Comparators: map[ColumnKey]Comparator[item]{"v": byValue},
		InitialSort: SortDescriptor{Key: "v", Direction: Ascending},
		Filter:      Match(func(i item) bool { return i.ID != 2 }),
	})
	tbl.SetHovered(3)

	first, err := tbl.Project(c)
	require.NoError(t, err)
	second, err := tbl.Project(c)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, []int{4, 3, 1}, ids(first.Rows()))
}

func TestTableHoverClearsWhenElementRemoved(t *testing.T) {
	t.Parallel()

	c := newLetters(t)
	tbl := New(itemID, Config[item, int]{})

	tbl.SetHovered(2)
	id, ok := tbl.CurrentHover(c)
	require.True(t, ok)
	require.Equal(t, 2, id)

	require.True(t, c.Remove(2))
	_, ok = tbl.CurrentHover(c)
	require.False(t, ok)

	p, err := tbl.Project(c)
	require.NoError(t, err)
	for _, row := range p.Rows() {
		require.False(t, row.IsHovered)
	}
}

func TestTableHoverNotifications(t *testing.T) {
	t.Parallel()

	var events []string
	tbl := New(itemID, Config[item, int]{
		OnHover: func(id int, hovered bool) {
			events = append(events, fmt.Sprintf("%d:%t", id, hovered))
		},
	})

	tbl.SetHovered(1)
	tbl.SetHovered(1)
	tbl.SetHovered(2)
	tbl.ClearHover()
	tbl.ClearHover()

	require.Equal(t, []string{"1:true", "1:false", "2:true", "2:false"}, events)
}

func TestTableMoveRequiresReorderableList(t *testing.T) {
	t.Parallel()

	c := newLetters(t)

	stack := New(itemID, Config[item, int]{Layout: LayoutStack, OnMove: func([]int, int) {}})
	require.False(t, stack.Reorderable())
	require.ErrorIs(t, stack.Move(c, []int{0}, 2), ErrInvalidState)

	list := New(itemID, Config[item, int]{})
	require.ErrorIs(t, list.Move(c, []int{0}, 2), ErrInvalidState)
	require.Equal(t, []int{1, 2, 3, 4}, c.IDs())
}

func TestTableMoveNotifiesAndMutatesStorage(t *testing.T) {
	t.Parallel()

	c := newLetters(t)
	var moves [][]int
	tbl := New(itemID, Config[item, int]{
		OnMove: func(from []int, to int) {
			moves = append(moves, append(append([]int(nil), from...), to))
		},
	})

	require.NoError(t, tbl.Move(c, []int{3}, 0))
	require.Equal(t, []int{4, 1, 2, 3}, c.IDs())
	require.Equal(t, [][]int{{3, 0}}, moves)

	require.ErrorIs(t, tbl.Move(c, []int{0}, 9), ErrInvalidRange)
	require.Equal(t, []int{4, 1, 2, 3}, c.IDs())
	require.Len(t, moves, 1)
}

func TestTableToggleSortDrivesProjection(t *testing.T) {
	t.Parallel()

	c := newLetters(t)
	tbl := New(itemID, Config[item, int]{
		Comparators: map[ColumnKey]Comparator[item]{"name": byName},
	})

	require.Equal(t, SortDescriptor{Key: "name", Direction: Ascending}, tbl.ToggleSort("name"))
	p, err := tbl.Project(c)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4}, ids(p.Rows()))

	tbl.ToggleSort("name")
	p, err = tbl.Project(c)
	require.NoError(t, err)
	require.Equal(t, []int{4, 3, 2, 1}, ids(p.Rows()))

	tbl.ToggleSort("name")
	p, err = tbl.Project(c)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4}, ids(p.Rows()))
	require.Empty(t, p.Warnings)
}

func TestTableHeaderSeesEffectiveSort(t *testing.T) {
	t.Parallel()

	c := newLetters(t)
	var seen HeaderContext
	tbl := New(itemID, Config[item, int]{
		Comparators: map[ColumnKey]Comparator[item]{"v": byValue},
		Filter:      Match(func(i item) bool { return i.Value > 1 }),
		Header: func(ctx HeaderContext) string {
			seen = ctx
			return fmt.Sprintf("%d/%d %s", ctx.VisibleRows, ctx.TotalRows, ctx.Sort)
		},
	})

	tbl.ToggleSort("missing")
	p, err := tbl.Project(c)
	require.NoError(t, err)
	require.Equal(t, "3/4 missing:none", p.Header)
	require.Equal(t, []ColumnKey{"v"}, seen.Sortable)
	require.Len(t, p.Warnings, 1)
}

func TestTableSetFilter(t *testing.T) {
	t.Parallel()

	c := newLetters(t)
	tbl := New(itemID, Config[item, int]{})
	require.False(t, tbl.Filtering())

	tbl.SetFilter(Match(func(i item) bool { return i.Name == "C" }))
	require.True(t, tbl.Filtering())
	p, err := tbl.Project(c)
	require.NoError(t, err)
	require.Equal(t, []int{3}, ids(p.Rows()))

	tbl.SetFilter(nil)
	p, err = tbl.Project(c)
	require.NoError(t, err)
	require.Equal(t, 4, p.Len())
}

func TestTableGridColumns(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, New(itemID, Config[item, int]{GridColumns: 4}).GridColumns())
	require.Equal(t, 4, New(itemID, Config[item, int]{Layout: LayoutGrid, GridColumns: 4}).GridColumns())
	require.Equal(t, 1, New(itemID, Config[item, int]{Layout: LayoutGrid}).GridColumns())
}
