package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/tabler/internal/domain/table"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.projection != nil {
			m.scroll()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		m.open(msg.View)
		return m, nil

	case LoadFailedMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKeys(msg)
		}
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.view == nil {
		return m, nil
	}

	step := 1
	if m.layout() == table.LayoutGrid {
		step = m.view.Table().GridColumns()
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.setCursor(m.cursor - step)
	case key.Matches(msg, m.keys.Down):
		m.setCursor(m.cursor + step)
	case key.Matches(msg, m.keys.Left):
		if m.layout() == table.LayoutGrid {
			m.setCursor(m.cursor - 1)
		}
	case key.Matches(msg, m.keys.Right):
		if m.layout() == table.LayoutGrid {
			m.setCursor(m.cursor + 1)
		}
	case key.Matches(msg, m.keys.Top):
		m.setCursor(0)
	case key.Matches(msg, m.keys.Bottom):
		if m.projection != nil {
			m.setCursor(m.projection.Len() - 1)
		}
	case key.Matches(msg, m.keys.Sort):
		n := int(msg.String()[0] - '0')
		if desc, ok := m.view.ToggleColumn(n); ok {
			m.status = fmt.Sprintf("sort %s", desc)
			m.refresh()
		}
	case key.Matches(msg, m.keys.ResetSort):
		m.view.Table().SetSort(table.SortDescriptor{})
		m.status = "storage order"
		m.refresh()
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.SetValue(m.view.Search())
		m.filter.CursorEnd()
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.ClearQuery):
		if m.view.Search() != "" {
			m.view.SetSearch("")
			m.status = ""
			m.refresh()
		}
	case key.Matches(msg, m.keys.MoveUp):
		m.moveRow(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m.moveRow(1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.view.SetSearch("")
		m.refresh()
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != m.view.Search() {
		m.view.SetSearch(m.filter.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view == nil || m.filtering {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.setCursor(m.cursor - 1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.setCursor(m.cursor + 1)
	case msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress:
		if pos, ok := m.positionAt(msg.X, msg.Y); ok {
			m.setCursor(pos)
		}
	}
	return m, nil
}

func (m *Model) moveRow(delta int) {
	if m.view.Table().Sort().Active() {
		m.status = "press 0 to restore storage order before moving rows"
		return
	}
	row, ok := m.projection.Row(m.cursor)
	if !ok {
		return
	}
	id := row.Element.ID
	moved, err := m.view.MoveRow(id, delta)
	if err != nil {
		m.status = err.Error()
		return
	}
	if moved {
		m.status = "row moved"
		m.follow(id)
	}
}
