package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple
	SuccessColor = lipgloss.Color("#43BF6D") // Green
	WarningColor = lipgloss.Color("#FFA500") // Orange
	ErrorColor   = lipgloss.Color("#FF0000") // Red
	SubtleColor  = lipgloss.Color("#626262") // Gray
)

// Common styles
var (
	// Title style for the header line
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// StatusStyle for the live state line next to the spinner
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// EventStyle for the scrolled event log lines
	EventStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// RetryStyle highlights reconnect attempts
	RetryStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// SuccessStyle for the final success line
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// FailureStyle for the final failure line
	FailureStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// HelpStyle for the quit hint
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)
