package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	warningColor = lipgloss.Color("#FFA500")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#383838")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1).
			MarginBottom(1)

	poolStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	poolTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	usedCellStyle = lipgloss.NewStyle().Foreground(warningColor)
	freeCellStyle = lipgloss.NewStyle().Foreground(mutedColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	okStyle    = lipgloss.NewStyle().Foreground(successColor)
	errorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)

	helpKeyStyle  = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

const (
	usedCell = "█"
	freeCell = "·"
)
