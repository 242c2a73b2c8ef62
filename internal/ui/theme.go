package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and visual properties for the TUI.
// The palette follows the web app's brand colors: DemandVibes blue on
// a light neutral surface.
type Theme struct {
	Title     lipgloss.Style
	Card      lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Accent    lipgloss.Style
	NavActive lipgloss.Style
	NavItem   lipgloss.Style
	Selected  lipgloss.Style

	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style
}

// DefaultTheme is the built-in color scheme.
var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).MarginBottom(1),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("27")).
		Padding(1, 2),
	Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("27")).Bold(true),
	NavActive: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27")).Padding(0, 1),
	NavItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Padding(0, 1),
	Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("237")),

	PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
}
