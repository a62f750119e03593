package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	blurredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedRowStyle = lipgloss.NewStyle().Reverse(true)

	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func button(label string, focused bool) string {
	if focused {
		return focusedStyle.Render("[ " + label + " ]")
	}
	return blurredStyle.Render("[ " + label + " ]")
}
