package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tabler/internal/app/tableview"
	"github.com/alexisbeaulieu97/tabler/internal/domain/table"
)

// View renders the current model state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.loading || m.view == nil {
		return fmt.Sprintf("%s Loading table...\n", m.spinner.View())
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(m.renderTitle()))
	content.WriteString("\n")

	switch m.layout() {
	case table.LayoutGrid:
		content.WriteString(m.renderGrid())
	case table.LayoutStack:
		content.WriteString(m.renderStack())
	default:
		content.WriteString(m.renderColumnHeader())
		content.WriteString("\n")
		content.WriteString(m.renderList())
	}

	content.WriteString("\n")
	content.WriteString(m.renderFooter())
	return content.String()
}

func (m Model) renderTitle() string {
	if m.projection != nil && m.projection.Header != "" {
		return m.projection.Header
	}
	return m.view.Definition.Name
}

func (m Model) renderColumnHeader() string {
	sort := m.view.Table().Sort()
	if m.projection != nil {
		sort = m.projection.Sort
	}

	parts := make([]string, len(m.view.Columns))
	for i, col := range m.view.Columns {
		label := fmt.Sprintf("%d %s", i+1, col.Heading())
		style := columnHeaderStyle
		if sort.Active() && string(sort.Key) == col.Key {
			label += " " + sort.Direction.Arrow(m.useUnicode)
			style = sortedHeaderStyle
		}
		parts[i] = style.Render(fit(label, m.widths[i]))
	}
	return "  " + strings.Join(parts, columnGap)
}

func (m Model) renderList() string {
	rows := m.visibleRows()
	if len(rows) == 0 {
		return statusStyle.Render("  no rows match")
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := m.view.Cells(row.Element)
		parts := make([]string, len(cells))
		for c, text := range cells {
			parts[c] = fit(text, m.widths[c])
		}
		line := m.gutter(row) + strings.Join(parts, columnGap)
		lines[i] = m.decorate(row, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStack() string {
	rows := m.visibleRows()
	if len(rows) == 0 {
		return statusStyle.Render("  no rows match")
	}

	blocks := make([]string, len(rows))
	for i, row := range rows {
		cells := m.view.Cells(row.Element)
		lines := make([]string, 0, len(cells))
		for c, col := range m.view.Columns {
			prefix := "  "
			if c == 0 {
				prefix = m.gutter(row)
			}
			lines = append(lines, m.decorate(row, fmt.Sprintf("%s%s: %s", prefix, col.Heading(), cells[c])))
		}
		blocks[i] = strings.Join(lines, "\n") + "\n"
	}
	return strings.Join(blocks, "\n")
}

func (m Model) renderGrid() string {
	rows := m.visibleRows()
	if len(rows) == 0 {
		return statusStyle.Render("  no rows match")
	}

	width := m.gridCellWidth()
	var lines []string
	var current []string
	line := -1
	for _, row := range rows {
		if row.Cell.Row != line && current != nil {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
		line = row.Cell.Row
		text := m.gutter(row) + strings.Join(m.view.Cells(row.Element), " ")
		current = append(current, m.decorate(row, fit(text, width)))
	}
	if current != nil {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return strings.Join(lines, "\n")
}

// visibleRows returns the projected rows inside the scroll window.
func (m Model) visibleRows() []tableview.Row {
	if m.projection == nil {
		return nil
	}
	first, last := m.offset, m.offset+m.bodyRows()
	var out []tableview.Row
	for _, row := range m.projection.All() {
		if row.Cell.Row >= first && row.Cell.Row < last {
			out = append(out, row)
		}
	}
	return out
}

func (m Model) gutter(row tableview.Row) string {
	if row.Position != m.cursor {
		return "  "
	}
	if m.useUnicode {
		return "› "
	}
	return "> "
}

// decorate applies banding, the row background, the hover highlight and the
// overlay badge.
func (m Model) decorate(row tableview.Row, line string) string {
	style := rowStyle
	if m.view.Definition.Banding && !row.IsEven {
		style = style.Background(bandColor)
	}
	if row.Background != "" {
		style = style.Background(tokenColor(row.Background))
	}
	if row.IsHovered {
		style = hoverStyle
	}
	rendered := style.Render(line)
	if row.Overlay != "" {
		rendered += " " + overlayStyle.Render(row.Overlay)
	}
	return rendered
}

func (m Model) renderFooter() string {
	var lines []string
	switch {
	case m.filtering:
		lines = append(lines, m.filter.View())
	case m.view.Search() != "":
		lines = append(lines, statusStyle.Render(fmt.Sprintf("filter: %s (esc clears)", m.view.Search())))
	}
	if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}
