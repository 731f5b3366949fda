package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectStableSort(t *testing.T) {
	t.Parallel()

	items := []item{{ID: 1, Value: 5}, {ID: 2, Value: 5}, {ID: 3, Value: 1}}
	sorter := NewSortController(SortDescriptor{}, map[ColumnKey]Comparator[item]{"v": byValue})

	p, err := Project(Request[item, int]{
		Items:    items,
		Identity: itemID,
		Sort:     SortDescriptor{Key: "v", Direction: Ascending},
		Sorter:   sorter,
	})
	require.NoError(t, err)
	require.Equal(t, []int{3, 1, 2}, ids(p.Rows()))
	require.Equal(t, []int{2, 0, 1}, []int{p.rows[0].StorageIndex, p.rows[1].StorageIndex, p.rows[2].StorageIndex})

	desc, err := Project(Request[item, int]{
		Items:    items,
		Identity: itemID,
		Sort:     SortDescriptor{Key: "v", Direction: Descending},
		Sorter:   sorter,
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, ids(desc.Rows()), "ties keep storage order when descending too")

	// storage order is untouched
	require.Equal(t, []item{{ID: 1, Value: 5}, {ID: 2, Value: 5}, {ID: 3, Value: 1}}, items)
}

func TestProjectFilterPositionsCountVisibleRows(t *testing.T) {
	t.Parallel()

	p, err := Project(Request[item, int]{
		Items:    letters(),
		Identity: itemID,
		Filter:   NewFilter(Match(func(i item) bool { return i.ID%2 == 0 })),
	})
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())
	require.Equal(t, 2, p.Hidden())

	rows := p.Rows()
	require.Equal(t, "B", rows[0].Element.Name)
	require.Equal(t, 0, rows[0].Position)
	require.Equal(t, 1, rows[0].StorageIndex)
	require.True(t, rows[0].IsEven)
	require.Equal(t, "D", rows[1].Element.Name)
	require.Equal(t, 1, rows[1].Position)
	require.False(t, rows[1].IsEven)
	for _, row := range rows {
		require.True(t, row.IsVisible)
	}
}

func TestProjectPredicateFailureDiscardsRows(t *testing.T) {
	t.Parallel()

	boom := errors.New("cannot evaluate")
	p, err := Project(Request[item, int]{
		Items:    letters(),
		Identity: itemID,
		Filter: NewFilter(func(i item) (bool, error) {
			if i.ID == 3 {
				return false, boom
			}
			return true, nil
		}),
	})
	require.Nil(t, p)
	require.ErrorIs(t, err, ErrPredicateFailure)
	require.ErrorIs(t, err, boom)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, 2, domainErr.Context["storage_index"])
}

func TestProjectMissingComparatorFallsBackWithWarning(t *testing.T) {
	t.Parallel()

	p, err := Project(Request[item, int]{
		Items:    letters(),
		Identity: itemID,
		Sort:     SortDescriptor{Key: "unknown", Direction: Ascending},
		Sorter:   NewSortController(SortDescriptor{}, map[ColumnKey]Comparator[item]{"v": byValue}),
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4}, ids(p.Rows()))
	require.Len(t, p.Warnings, 1)
	require.ErrorIs(t, p.Warnings[0], ErrMissingComparator)
	require.False(t, p.Sort.Active())
	require.Equal(t, ColumnKey("unknown"), p.Sort.Key)
}

func TestProjectHoverAndDecorations(t *testing.T) {
	t.Parallel()

	p, err := Project(Request[item, int]{
		Items:      letters(),
		Identity:   itemID,
		Hovered:    3,
		HasHover:   true,
		Background: func(i item) string { return "bg-" + i.Name },
		Overlay:    func(i item) string { return "" },
	})
	require.NoError(t, err)

	for _, row := range p.Rows() {
		require.Equal(t, row.Element.ID == 3, row.IsHovered)
		require.Equal(t, "bg-"+row.Element.Name, row.Background)
		require.Empty(t, row.Overlay)
	}
}

func TestProjectGridCells(t *testing.T) {
	t.Parallel()

	p, err := Project(Request[item, int]{
		Items:       letters(),
		Identity:    itemID,
		Layout:      LayoutGrid,
		GridColumns: 3,
	})
	require.NoError(t, err)

	cells := make([]Cell, 0, p.Len())
	for _, row := range p.All() {
		cells = append(cells, row.Cell)
	}
	require.Equal(t, []Cell{{0, 0}, {0, 1}, {0, 2}, {1, 0}}, cells)
}

func TestProjectionAllIsRestartable(t *testing.T) {
	t.Parallel()

	p, err := Project(Request[item, int]{Items: letters(), Identity: itemID})
	require.NoError(t, err)

	collect := func() []int {
		var out []int
		for pos, row := range p.All() {
			require.Equal(t, pos, row.Position)
			out = append(out, row.Element.ID)
		}
		return out
	}
	require.Equal(t, collect(), collect())

	var first []int
	for _, row := range p.All() {
		first = append(first, row.Element.ID)
		break
	}
	require.Equal(t, []int{1}, first)
}

func TestNilProjection(t *testing.T) {
	t.Parallel()

	var p *Projection[item]
	require.Zero(t, p.Len())
	require.Nil(t, p.Rows())
	_, ok := p.Row(0)
	require.False(t, ok)
	for range p.All() {
		t.Fatal("nil projection must be empty")
	}
}
