package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("99")  // Purple
	accentColor  = lipgloss.Color("212") // Pink
	errorColor   = lipgloss.Color("196") // Red
	mutedColor   = lipgloss.Color("245") // Gray
	bandColor    = lipgloss.Color("235") // Dark gray
	hoverColor   = lipgloss.Color("238")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(mutedColor)

	sortedHeaderStyle = columnHeaderStyle.
				Foreground(accentColor)

	rowStyle = lipgloss.NewStyle()

	hoverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Background(hoverColor)

	overlayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(accentColor).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	fitStyle = lipgloss.NewStyle().Inline(true)
)

// Background tokens that name a colour map onto dark shades so row text stays
// readable. Anything else is handed to lipgloss as-is ("#1e1e2e", "52").
var tokenColors = map[string]lipgloss.Color{
	"red":     lipgloss.Color("52"),
	"green":   lipgloss.Color("22"),
	"blue":    lipgloss.Color("17"),
	"yellow":  lipgloss.Color("58"),
	"magenta": lipgloss.Color("53"),
	"cyan":    lipgloss.Color("23"),
	"gray":    lipgloss.Color("236"),
	"grey":    lipgloss.Color("236"),
}

func tokenColor(token string) lipgloss.Color {
	if c, ok := tokenColors[strings.ToLower(strings.TrimSpace(token))]; ok {
		return c
	}
	return lipgloss.Color(token)
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return fitStyle.Width(width).MaxWidth(width).Render(s)
}
