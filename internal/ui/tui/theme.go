package tui

import "github.com/charmbracelet/lipgloss"

// Theme styles both the browser and the CLI's pretty output.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Letter   lipgloss.Style
	Correct  lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Letter:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Correct:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}
