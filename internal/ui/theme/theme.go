// Package theme holds the terminal player's palette and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette.
var (
	Primary      = lipgloss.Color("#6366F1") // Indigo
	Secondary    = lipgloss.Color("#14B8A6") // Teal
	Accent       = lipgloss.Color("#F97316") // Orange
	Success      = lipgloss.Color("#22C55E") // Green
	Error        = lipgloss.Color("#F43F5E") // Rose
	Text         = lipgloss.Color("#F8FAFC") // White
	TextDim      = lipgloss.Color("#94A3B8") // Slate
	BgDark       = lipgloss.Color("#0F172A") // Deep Navy
	BgCard       = lipgloss.Color("#1E293B") // Dark Slate
	Border       = lipgloss.Color("#334155") // Slate
	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Difficulty levels get a fixed color each.
var (
	Easy   = lipgloss.Color("#4ADE80")
	Medium = lipgloss.Color("#FACC15")
	Hard   = lipgloss.Color("#F87171")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// DifficultyStyle returns the bold style for a difficulty label.
func DifficultyStyle(level string) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch level {
	case "easy":
		return s.Foreground(Easy)
	case "medium":
		return s.Foreground(Medium)
	case "hard":
		return s.Foreground(Hard)
	default:
		return s.Foreground(TextDim)
	}
}
