package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sourceStyle  = lipgloss.NewStyle().Faint(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	loadingStyle = lipgloss.NewStyle().Faint(true)
	noticeStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	summaryStyle = lipgloss.NewStyle().Faint(true)
	flashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Faint(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	neutralStyle  = lipgloss.NewStyle()
)

// signStyle maps a cell classification to its render style.
func signStyle(s Sign) lipgloss.Style {
	switch s {
	case SignPositive:
		return positiveStyle
	case SignNegative:
		return negativeStyle
	default:
		return neutralStyle
	}
}
