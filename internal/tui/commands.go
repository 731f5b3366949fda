package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// loadCmd opens the table in the background; git sources can take a while.
func loadCmd(ctx context.Context, load Loader) tea.Cmd {
	return func() tea.Msg {
		view, err := load(ctx)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return LoadedMsg{View: view}
	}
}
