package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tabler/internal/app/tableview"
	"github.com/alexisbeaulieu97/tabler/internal/config"
	"github.com/alexisbeaulieu97/tabler/internal/domain/table"
	"github.com/alexisbeaulieu97/tabler/internal/logger"
)

const listDefinition = `version: "1.0"
name: Tasks
reorderable: true
decorations:
  overlay: flag
columns:
  - key: title
  - key: size
    type: number
  - key: flag
rows:
  - {id: a, title: Write docs, size: 3}
  - {id: b, title: Fix parser, size: 1, flag: urgent}
  - {id: c, title: Ship release, size: 5}
`

const gridDefinition = `version: "1.0"
name: Tiles
layout: grid
grid_columns: 2
columns:
  - key: title
rows:
  - {id: a, title: One}
  - {id: b, title: Two}
  - {id: c, title: Three}
  - {id: d, title: Four}
  - {id: e, title: Five}
`

func openView(t *testing.T, body string) *tableview.View {
	t.Helper()
	def, err := config.ParseDefinitionBytes("test.yaml", []byte(body))
	require.NoError(t, err)
	view, err := tableview.NewService(logger.Nop()).Open(context.Background(), def, tableview.Options{})
	require.NoError(t, err)
	return view
}

func loadedModel(t *testing.T, body string) Model {
	t.Helper()
	view := openView(t, body)
	m := NewModel(context.Background(), func(context.Context) (*tableview.View, error) { return view, nil }, Options{})
	return update(t, m, LoadedMsg{View: view})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "shift+down":
		return tea.KeyMsg{Type: tea.KeyShiftDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func hovered(t *testing.T, m Model) string {
	t.Helper()
	id, ok := m.Table().Hovered()
	require.True(t, ok)
	return id
}

func TestInitLoadsTable(t *testing.T) {
	t.Parallel()

	view := openView(t, listDefinition)
	m := NewModel(context.Background(), func(context.Context) (*tableview.View, error) { return view, nil }, Options{})
	assert.Contains(t, m.View(), "Loading table")

	msg := loadCmd(context.Background(), m.load)()
	loaded, ok := msg.(LoadedMsg)
	require.True(t, ok)
	assert.Same(t, view, loaded.View)

	m = update(t, m, loaded)
	assert.Equal(t, "a", hovered(t, m))
	assert.Contains(t, m.View(), "Write docs")
}

func TestLoadFailure(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), func(context.Context) (*tableview.View, error) {
		return nil, errors.New("no such repository")
	}, Options{})

	m = update(t, m, loadCmd(context.Background(), m.load)())
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "no such repository")
}

func TestCursorDrivesHover(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, listDefinition)
	m = update(t, m, keyPress("down"))
	assert.Equal(t, 1, m.Cursor())
	assert.Equal(t, "b", hovered(t, m))

	m = update(t, m, keyPress("down"))
	m = update(t, m, keyPress("down"))
	assert.Equal(t, 2, m.Cursor(), "cursor stops at the last row")

	m = update(t, m, keyPress("g"))
	assert.Equal(t, "a", hovered(t, m))

	row, ok := m.projection.Row(0)
	require.True(t, ok)
	assert.True(t, row.IsHovered)
}

func TestDigitTogglesSortAndCursorFollowsRow(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, listDefinition)
	m = update(t, m, keyPress("down"))
	require.Equal(t, "b", hovered(t, m))

	m = update(t, m, keyPress("2"))
	assert.Equal(t, table.SortDescriptor{Key: "size", Direction: table.Ascending}, m.Table().Table().Sort())
	assert.Equal(t, 0, m.Cursor(), "b has the smallest size")
	assert.Equal(t, "b", hovered(t, m))

	m = update(t, m, keyPress("2"))
	assert.Equal(t, table.Descending, m.Table().Table().Sort().Direction)
	assert.Equal(t, 2, m.Cursor())

	m = update(t, m, keyPress("0"))
	assert.False(t, m.Table().Table().Sort().Active())
	assert.Equal(t, 1, m.Cursor())
}

func TestFilterPrompt(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, listDefinition)
	m = update(t, m, keyPress("/"))
	require.True(t, m.filtering)

	m = update(t, m, keyPress("ship"))
	assert.Equal(t, "ship", m.Table().Search())
	assert.Equal(t, 1, m.projection.Len())
	assert.Equal(t, "c", hovered(t, m))

	m = update(t, m, keyPress("enter"))
	assert.False(t, m.filtering)
	assert.Contains(t, m.View(), "filter: ship")

	m = update(t, m, keyPress("esc"))
	assert.Empty(t, m.Table().Search())
	assert.Equal(t, 3, m.projection.Len())
	assert.Equal(t, "c", hovered(t, m))
}

func TestMoveRows(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, listDefinition)
	m = update(t, m, keyPress("shift+down"))
	assert.Equal(t, []string{"b", "a", "c"}, m.Table().Rows().IDs())
	assert.Equal(t, 1, m.Cursor())
	assert.Equal(t, "row moved", m.Status())

	m = update(t, m, keyPress("K"))
	assert.Equal(t, []string{"a", "b", "c"}, m.Table().Rows().IDs())
	assert.Equal(t, 0, m.Cursor())

	m = update(t, m, keyPress("2"))
	m = update(t, m, keyPress("J"))
	assert.Equal(t, []string{"a", "b", "c"}, m.Table().Rows().IDs(), "moves are refused while sorted")
	assert.Contains(t, m.Status(), "storage order")
}

func TestMoveRowsWithoutHover(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, strings.Replace(listDefinition, "reorderable: true\n", "reorderable: true\nhover: false\n", 1))
	_, ok := m.Table().Hovered()
	require.False(t, ok)

	m = update(t, m, keyPress("down"))
	m = update(t, m, keyPress("J"))
	assert.Equal(t, []string{"a", "c", "b"}, m.Table().Rows().IDs())
	assert.Equal(t, 2, m.Cursor())
	assert.Equal(t, "row moved", m.Status())

	m = update(t, m, keyPress("J"))
	assert.Equal(t, []string{"a", "c", "b"}, m.Table().Rows().IDs(), "last row stays put")
	assert.Equal(t, 2, m.Cursor())

	_, ok = m.Table().Hovered()
	assert.False(t, ok)
}

func TestGridNavigationAndMouse(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, gridDefinition)
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	m = update(t, m, keyPress("down"))
	assert.Equal(t, "c", hovered(t, m))
	m = update(t, m, keyPress("right"))
	assert.Equal(t, "d", hovered(t, m))

	// Row 2 of the body, second column: position 5 does not exist, so the
	// cursor stays put; the first column of that row is "e".
	m = update(t, m, tea.MouseMsg{X: 40, Y: 3, Action: tea.MouseActionMotion})
	assert.Equal(t, "d", hovered(t, m))
	m = update(t, m, tea.MouseMsg{X: 1, Y: 3, Action: tea.MouseActionMotion})
	assert.Equal(t, "e", hovered(t, m))

	err := m.Table().Table().Move(m.Table().Rows(), []int{0}, 2)
	require.True(t, table.IsCode(err, table.ErrCodeState), "grids cannot be reordered")

	view := m.View()
	assert.Contains(t, view, "Tiles")
	assert.Contains(t, view, "Five")
}

func TestHelpToggleAndQuit(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, listDefinition)
	m = update(t, m, keyPress("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "move row down")

	next, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestViewRendersSortArrowAndOverlay(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, listDefinition)
	m = update(t, m, keyPress("2"))

	out := m.View()
	assert.Contains(t, out, "2 SIZE ^")
	assert.Contains(t, out, "urgent")
	assert.Contains(t, out, "Tasks | 3 rows | sorted by size ^")
}
