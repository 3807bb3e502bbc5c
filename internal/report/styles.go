package report

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan - headings
	colorSuccess = lipgloss.Color("#00E676") // Green - fastest
	colorAccent  = lipgloss.Color("#FFD700") // Gold - warnings
	colorMuted   = lipgloss.Color("#8C8C8C") // Gray - secondary figures
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleFastest = lipgloss.NewStyle().Foreground(colorSuccess)
	styleWarn    = lipgloss.NewStyle().Foreground(colorAccent)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
)

const (
	iconFastest    = "✓"
	iconIncomplete = "⚠"
)
