package tui

import (
	"charm.land/lipgloss/v2"
)

// Color palette: calm coaching tones, readable on dark terminals
var (
	Primary = lipgloss.Color("#60A5FA") // Sky Blue
	Accent  = lipgloss.Color("#FBBF24") // Amber
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	BgCard  = lipgloss.Color("#1E293B") // Dark Slate
	Border  = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	hintStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	cardStyle = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(1, 2)
)

// scoreStyle picks a color band for a 0-100 score.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 80:
		return lipgloss.NewStyle().Foreground(Success).Bold(true)
	case score >= 60:
		return lipgloss.NewStyle().Foreground(Accent)
	default:
		return lipgloss.NewStyle().Foreground(Error)
	}
}
