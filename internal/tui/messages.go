package tui

import "github.com/alexisbeaulieu97/tabler/internal/app/tableview"

// LoadedMsg delivers the opened table.
type LoadedMsg struct {
	View *tableview.View
}

// LoadFailedMsg reports that the table could not be opened.
type LoadFailedMsg struct {
	Err error
}
