package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}   // blue
	subtle  = lipgloss.AdaptiveColor{Light: "246", Dark: "241"} // gray
	success = lipgloss.AdaptiveColor{Light: "28", Dark: "78"}   // green
	danger  = lipgloss.Color("160")
	warning = lipgloss.Color("208")
	text    = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}

	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(accent).
			Padding(0, 1)

	// Command list
	normalStyle     = lipgloss.NewStyle().Foreground(text)
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	platformStyle   = lipgloss.NewStyle().Foreground(subtle)
	cmdPreviewStyle = lipgloss.NewStyle().Foreground(subtle).Italic(true)
	mutedStyle      = lipgloss.NewStyle().Foreground(subtle)

	// Output pane
	outputTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(subtle)
	borderStyle      = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(subtle)

	// Form
	labelStyle        = lipgloss.NewStyle().Bold(true).Foreground(accent)
	inputStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(subtle).Padding(0, 1)
	focusedInputStyle = inputStyle.BorderForeground(accent)

	// Status and help
	errorStyle   = lipgloss.NewStyle().Foreground(danger)
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(warning)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(success)
	helpStyle    = lipgloss.NewStyle().Foreground(subtle)
	helpKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
)
