package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#FFA500")
	activeBg  = lipgloss.Color("#3498db")
	borderCol = lipgloss.Color("#243141")
	errorFg   = lipgloss.Color("#e74c3c")

	appStyle          = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle          = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle        = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle          = lipgloss.NewStyle().Foreground(baseDimFg)
	accentStyle       = lipgloss.NewStyle().Foreground(accentFg)
	errorStyle        = lipgloss.NewStyle().Foreground(errorFg)
	filterStyle       = lipgloss.NewStyle().Foreground(baseFg)
	activeFilterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(activeBg).Bold(true)
	backStyle         = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	tooltipStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(accentFg)
)
