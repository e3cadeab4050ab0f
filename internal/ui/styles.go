package ui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#0969DA") // GitHub blue
	secondaryColor = lipgloss.Color("#8250DF") // Purple
	accentColor    = lipgloss.Color("#2DA44E") // Green
	warningColor   = lipgloss.Color("#D29922") // Orange
	errorColor     = lipgloss.Color("#CF222E") // Red
	textColor      = lipgloss.Color("#FFFFFF") // White
	dimColor       = lipgloss.Color("#6E7681") // Gray
	linkColor      = lipgloss.Color("#58A6FF") // Light blue
	reasonColor    = lipgloss.Color("#F778BA") // Pink
	titleColor     = lipgloss.Color("#39D353") // Bright green
	dateColor      = lipgloss.Color("#A371F7") // Light purple
	sourceColor    = lipgloss.Color("#FFA657") // Light orange
)

var (
	HeaderStyle  lipgloss.Style
	TitleStyle   lipgloss.Style
	TextStyle    lipgloss.Style
	DimStyle     lipgloss.Style
	LinkStyle    lipgloss.Style
	ReasonStyle  lipgloss.Style
	DateStyle    lipgloss.Style
	SourceStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	BoxStyle     lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyTheme swaps the accent colour (borders, success text). Light
// terminals get dark body text. An empty accent keeps the default.
func ApplyTheme(dark bool, accent string) {
	if accent != "" {
		accentColor = lipgloss.Color(accent)
	}
	if dark {
		textColor = lipgloss.Color("#FFFFFF")
	} else {
		textColor = lipgloss.Color("#1F2328")
	}
	buildStyles()
}

func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accentColor)

	TitleStyle = lipgloss.NewStyle().
		Foreground(titleColor).
		Bold(true)

	TextStyle = lipgloss.NewStyle().
		Foreground(textColor)

	DimStyle = lipgloss.NewStyle().
		Foreground(dimColor)

	LinkStyle = lipgloss.NewStyle().
		Foreground(linkColor).
		Underline(true)

	ReasonStyle = lipgloss.NewStyle().
		Foreground(reasonColor).
		Bold(true)

	DateStyle = lipgloss.NewStyle().
		Foreground(dateColor).
		Italic(true)

	SourceStyle = lipgloss.NewStyle().
		Foreground(sourceColor).
		Bold(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(warningColor).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	BoxStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Padding(0, 1)
}
