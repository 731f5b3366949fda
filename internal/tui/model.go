package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tabler/internal/app/tableview"
	"github.com/alexisbeaulieu97/tabler/internal/domain/table"
)

// Loader opens the table shown by the viewer.
type Loader func(ctx context.Context) (*tableview.View, error)

// Options configures the viewer.
type Options struct {
	Unicode bool
}

const (
	maxAutoWidth = 40
	columnGap    = "  "
	minGridCell  = 12
)

// Model is the Bubbletea state of the interactive table viewer. The cursor
// follows the projection and drives the table's hover slot.
type Model struct {
	ctx  context.Context
	load Loader

	view       *tableview.View
	projection *tableview.Projection
	widths     []int

	// UI state
	cursor    int
	offset    int
	filtering bool
	status    string
	err       error
	loading   bool
	quitting  bool

	// Components
	keys    keyMap
	help    help.Model
	filter  textinput.Model
	spinner spinner.Model

	width      int
	height     int
	useUnicode bool
}

// NewModel creates a viewer that opens its table with load on Init.
func NewModel(ctx context.Context, load Loader, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "filter rows"
	input.CharLimit = 120

	return Model{
		ctx:        ctx,
		load:       load,
		loading:    true,
		keys:       newKeyMap(),
		help:       help.New(),
		filter:     input,
		spinner:    s,
		width:      80,
		height:     24,
		useUnicode: opts.Unicode,
	}
}

// Init starts the spinner and opens the table.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.load))
}

// Table returns the open table view, or nil while loading.
func (m Model) Table() *tableview.View {
	return m.view
}

// Cursor returns the projected position under the cursor.
func (m Model) Cursor() int {
	return m.cursor
}

// Err returns the load error, if any.
func (m Model) Err() error {
	return m.err
}

// Status returns the transient status line.
func (m Model) Status() string {
	return m.status
}

func (m *Model) open(view *tableview.View) {
	m.view = view
	m.loading = false
	m.measure()
	m.refresh()
}

// project re-renders the projection without touching the cursor.
func (m *Model) project() {
	if m.view == nil {
		return
	}
	projection, err := m.view.Project()
	if err != nil {
		m.projection = nil
		m.status = fmt.Sprintf("filter failed: %v", err)
		return
	}
	m.projection = projection
}

// refresh re-projects and keeps the cursor on the hovered row when it is
// still visible.
func (m *Model) refresh() {
	if m.view == nil {
		return
	}
	id, _ := m.view.Hovered()
	m.follow(id)
}

// follow re-projects and keeps the cursor on row id when it is still visible.
func (m *Model) follow(id string) {
	m.project()
	if m.projection == nil {
		return
	}
	if id != "" {
		for pos, row := range m.projection.All() {
			if row.Element.ID == id {
				m.setCursor(pos)
				return
			}
		}
	}
	m.setCursor(m.cursor)
}

func (m *Model) setCursor(pos int) {
	if m.projection == nil || m.projection.Len() == 0 {
		m.cursor = 0
		m.offset = 0
		m.hover("")
		return
	}
	m.cursor = max(0, min(pos, m.projection.Len()-1))
	row, _ := m.projection.Row(m.cursor)
	m.hover(row.Element.ID)
	m.scroll()
}

// hover points the table's hover slot at id ("" clears it) and re-projects
// when it changed.
func (m *Model) hover(id string) {
	if m.view == nil || !m.view.Definition.Hover {
		return
	}
	current, ok := m.view.Hovered()
	switch {
	case id == "" && !ok:
		return
	case id == "":
		m.view.Table().ClearHover()
	case ok && current == id:
		return
	default:
		if err := m.view.Hover(id); err != nil {
			m.status = err.Error()
			return
		}
	}
	m.project()
}

func (m *Model) measure() {
	columns := m.view.Columns
	m.widths = make([]int, len(columns))
	items := m.view.Rows().Items()
	for i, col := range columns {
		if col.Width > 0 {
			m.widths[i] = col.Width
			continue
		}
		w := lipgloss.Width(fmt.Sprintf("%d %s", i+1, col.Heading())) + 2
		for _, row := range items {
			w = max(w, lipgloss.Width(row.Text(col.Key)))
		}
		m.widths[i] = min(w, maxAutoWidth)
	}
}

func (m Model) layout() table.Layout {
	if m.view == nil {
		return table.LayoutList
	}
	return m.view.Table().Layout()
}

// rowHeight is the number of screen lines one display row takes.
func (m Model) rowHeight() int {
	if m.layout() == table.LayoutStack && m.view != nil {
		return len(m.view.Columns) + 1
	}
	return 1
}

// bodyTop is the screen line of the first display row.
func (m Model) bodyTop() int {
	if m.layout() == table.LayoutList {
		return 2
	}
	return 1
}

// bodyRows is how many display rows fit on screen.
func (m Model) bodyRows() int {
	const footerLines = 3
	return max(1, (m.height-m.bodyTop()-footerLines)/m.rowHeight())
}

func (m Model) gridCellWidth() int {
	cols := 1
	if m.view != nil {
		cols = m.view.Table().GridColumns()
	}
	return max(minGridCell, (m.width-2)/cols)
}

// scroll keeps the cursor's display row inside the window.
func (m *Model) scroll() {
	if m.projection == nil {
		return
	}
	row, ok := m.projection.Row(m.cursor)
	if !ok {
		m.offset = 0
		return
	}
	line := row.Cell.Row
	visible := m.bodyRows()
	if line < m.offset {
		m.offset = line
	}
	if line >= m.offset+visible {
		m.offset = line - visible + 1
	}
}

// positionAt maps a screen coordinate onto a projected position.
func (m Model) positionAt(x, y int) (int, bool) {
	if m.projection == nil || y < m.bodyTop() {
		return 0, false
	}
	line := m.offset + (y-m.bodyTop())/m.rowHeight()
	pos := line
	if m.layout() == table.LayoutGrid {
		cols := m.view.Table().GridColumns()
		column := x / m.gridCellWidth()
		if column >= cols {
			return 0, false
		}
		pos = line*cols + column
	}
	if pos >= m.projection.Len() {
		return 0, false
	}
	return pos, true
}
