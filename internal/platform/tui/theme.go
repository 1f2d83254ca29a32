package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the lipgloss styles shared by the menu, the stage picker and
// the scoreboard.
type Theme struct {
	Title       lipgloss.Style
	Item        lipgloss.Style
	ItemActive  lipgloss.Style
	ItemLocked  lipgloss.Style
	Description lipgloss.Style
	Controls    lipgloss.Style
	Accent      lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Item:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		ItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	}
}

// centerText centers text within the given width, measuring printed cells
// so styled strings line up.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
