package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// Section widths inside the cabinet frame.
const (
	minSectionWidth = 20
	maxSectionWidth = 60
	// frameInset is the cabinet border plus its inner padding.
	frameInset = 6
)

// ContentWidth is the width every section inside a cabinet of frameWidth
// is drawn at, so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-frameInset, minSectionWidth), maxSectionWidth)
}

// CabinetFrame draws the double-bordered screen frame and centers content
// in it.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard puts content on a padded, rounded card cw columns wide.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Width(cw - 2).
		Align(lipgloss.Center).
		Render(content)
}

// ButtonState selects how ArcadeButton draws a label.
type ButtonState int

const (
	ButtonIdle ButtonState = iota
	ButtonSelected
	ButtonDisabled
)

var buttonBase = lipgloss.NewStyle().
	Align(lipgloss.Center).
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

// ArcadeButton draws a bordered menu button. The selected button is
// filled and carries a pointer.
func ArcadeButton(label string, state ButtonState, width int) string {
	s := buttonBase.Width(width)
	switch state {
	case ButtonSelected:
		return s.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	case ButtonDisabled:
		return s.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(label)
	default:
		return s.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
}
