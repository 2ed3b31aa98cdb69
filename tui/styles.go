package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#2F6FED")
	muted  = lipgloss.Color("#7B8794")
	red    = lipgloss.Color("#E12D39")
	green  = lipgloss.Color("#27AB83")

	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headingStyle = lipgloss.NewStyle().Foreground(muted).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(12)
	focusedLabel = labelStyle.Foreground(accent).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(red)
	successStyle = lipgloss.NewStyle().Foreground(green)
	noteStyle    = lipgloss.NewStyle().Foreground(muted).Italic(true)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
)
