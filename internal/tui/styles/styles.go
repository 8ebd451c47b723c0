package styles

import "github.com/charmbracelet/lipgloss"

// Shared Lip Gloss styles for the human-facing output of obsidian-cli.
// All colors are specified using hex codes.

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#a882ff")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff005f")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff5f")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaf00")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8"))

	// Table styles for vault info
	TableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5f5fff"))

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a882ff")).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableKeyStyle = TableCellStyle.
			Foreground(lipgloss.Color("#5fd7ff"))

	// Dimmed date column for listings
	DateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))
)
