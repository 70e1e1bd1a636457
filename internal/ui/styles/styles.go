// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions and styling to ensure
// visual consistency across the static tables and interactive prompts.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors used throughout the UI
var (
	// Primary is the main accent color (cyan/teal)
	Primary color.Color = lipgloss.Color("62")

	// Accent is the highlight color for selected/active items (pink)
	Accent color.Color = lipgloss.Color("212")

	// Success is used for passing runs (green)
	Success color.Color = lipgloss.Color("82")

	// Error is used for failed runs (red)
	Error color.Color = lipgloss.Color("196")

	// Warning is used for signaled runs (orange)
	Warning color.Color = lipgloss.Color("214")

	// Muted is used for secondary text (gray)
	Muted color.Color = lipgloss.Color("240")

	// Normal is the standard text color (light gray)
	Normal color.Color = lipgloss.Color("252")
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentStyle applies the accent color with bold
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(Normal)

	// HighlightStyle for fuzzy matched characters (pink, bold, underline)
	HighlightStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true)
)
