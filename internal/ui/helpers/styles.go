package helpers

import "github.com/charmbracelet/lipgloss"

// Shared terminal palette.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true)
	AccentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	SuccessStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	MutedStyle    = lipgloss.NewStyle().Faint(true)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	HelpStyle     = lipgloss.NewStyle().Faint(true)
	PriceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
)

// Panel frames a block of content.
func Panel(inner string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(inner)
}
