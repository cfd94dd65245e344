package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Header
	Title  lipgloss.Style
	Counts lipgloss.Style

	// Panes
	Canvas lipgloss.Style
	List   lipgloss.Style

	// Footer
	Footer lipgloss.Style
	State  lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style

	// Notices
	Notice lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")),

	Counts: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Canvas: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")),

	List: lipgloss.NewStyle().
		PaddingRight(1),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	State: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("114")),

	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),

	Notice: lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")),
}
