package ui

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor   = lipgloss.Color("39")  // Blue
	SecondaryColor = lipgloss.Color("213") // Pink
	MutedColor     = lipgloss.Color("241") // Gray
	ErrorColor     = lipgloss.Color("196") // Red
	SuccessColor   = lipgloss.Color("42")  // Green
	WarningColor   = lipgloss.Color("214") // Orange

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	SidebarPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(MutedColor).
				Padding(0, 1)

	SidebarFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor).
				Padding(0, 1)

	ChatPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor)

	AuthorStyle = lipgloss.NewStyle().
			Bold(true)

	PendingTextStyle = lipgloss.NewStyle().
				Foreground(MutedColor)

	FailedTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	MutedTextStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	StatusTextStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)
)
