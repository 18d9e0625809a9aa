// Package ui provides consistent styling and report rendering for the wlhandle CLI
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	ColorPrimary = lipgloss.Color("39")  // Bright blue
	ColorSuccess = lipgloss.Color("82")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorInfo    = lipgloss.Color("86")  // Cyan

	ColorText   = lipgloss.Color("252") // Light gray
	ColorSubtle = lipgloss.Color("241") // Medium gray

	ColorBound   = ColorSuccess
	ColorUnbound = ColorSubtle
)

var (
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubheaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	BoundIndicator = lipgloss.NewStyle().
			Foreground(ColorBound).
			Render("●")

	UnboundIndicator = lipgloss.NewStyle().
				Foreground(ColorUnbound).
				Render("○")

	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// Icons and indicators
var (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "i"
)

// FormatStatus prefixes status with the bound or unbound indicator.
func FormatStatus(bound bool, status string) string {
	indicator := UnboundIndicator
	if bound {
		indicator = BoundIndicator
	}
	return indicator + " " + status
}

func FormatListItem(item string, active bool) string {
	style := TextStyle
	if active {
		style = style.Foreground(ColorPrimary)
	}
	return "  • " + style.Render(item)
}

func FormatError(msg string) string {
	return ErrorStyle.Render(IconError + " " + msg)
}

func FormatHeader(title string) string {
	return HeaderStyle.Render(title) + "\n" + CreateSeparator(50, "─")
}

// CreateSeparator creates a horizontal line separator
func CreateSeparator(width int, char string) string {
	if width <= 0 {
		width = 50
	}
	if char == "" {
		char = "─"
	}
	return SubtleStyle.Render(strings.Repeat(char, width))
}
