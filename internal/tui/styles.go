package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorBrand  = lipgloss.Color("#B0307A")
	colorGreen  = lipgloss.Color("#1F9D55")
	colorYellow = lipgloss.Color("#C99A06")
	colorOrange = lipgloss.Color("#E0741B")
	colorRed    = lipgloss.Color("#D2283C")
	colorBlue   = lipgloss.Color("#2F6FD1")
	colorGray   = lipgloss.Color("#777777")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBrand)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	activePanelStyle = panelStyle.
				BorderForeground(colorBrand)

	instructionStyle = lipgloss.NewStyle().
				Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)
)

// toneStyle colours an alert by its tone
func toneStyle(tone string) lipgloss.Style {
	switch tone {
	case "red":
		return lipgloss.NewStyle().Foreground(colorRed)
	case "orange":
		return lipgloss.NewStyle().Foreground(colorOrange)
	case "green":
		return lipgloss.NewStyle().Foreground(colorGreen)
	default:
		return lipgloss.NewStyle().Foreground(colorBlue)
	}
}
