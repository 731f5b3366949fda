package table

import "cmp"

type item struct {
	ID    int
	Value int
	Name  string
}

func itemID(i item) int { return i.ID }

func byValue(a, b item) int { return cmp.Compare(a.Value, b.Value) }

func byName(a, b item) int { return cmp.Compare(a.Name, b.Name) }

func letters() []item {
	return []item{
		{ID: 1, Value: 4, Name: "A"},
		{ID: 2, Value: 3, Name: "B"},
		{ID: 3, Value: 2, Name: "C"},
		{ID: 4, Value: 1, Name: "D"},
	}
}

func ids(rows []RowProjection[item]) []int {
	out := make([]int, len(rows))
	for i, row := range rows {
		out[i] = row.Element.ID
	}
	return out
}
