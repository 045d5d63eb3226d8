// Package layout draws the terminal player's chrome: the header with the
// learner's status, the key-hint footer and the frame between them.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// Smallest terminal the player draws in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key action" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	need := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("%d x %d", MinWidth, MinHeight))
	have := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("now %d x %d", width, height))
	msg := "The quiz needs a bigger window.\n\nResize to at least " + need + "\n" + have
	return lipgloss.Place(max(width, 1), max(height, 1), lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// RenderHeader shows the app name, the active screen's title and the
// learner's status. level is the recommended difficulty and may be empty.
func RenderHeader(title string, streak int, level string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("AdaptIQ")
	name := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	status := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d day", streak))
	if level != "" {
		status = theme.DifficultyStyle(level).Render(strings.ToUpper(level)) + "  " + status
	}
	return bar.Width(width).Render(spread(width-4, brand, name, status))
}

// spread places left at the start, center in the middle and right at the
// end of a line of the given width, keeping one space between neighbours.
func spread(width int, left, center, right string) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((width-cw)/2-lw, 1)
	gapR := max(width-lw-gapL-cw-rw, 1)
	return " " + left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
}

// RenderFooter lists the active key bindings.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := desc.Render(" · ")

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render(" " + strings.Join(parts, sep))
}

// RenderFrame stacks header, content and footer, stretching the content
// so the frame fills height.
func RenderFrame(header, content, footer string, width, height int) string {
	body := height - lipgloss.Height(header) - lipgloss.Height(footer)
	content = lipgloss.NewStyle().Width(width).Height(max(body, 0)).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// Center renders text with style across width.
func Center(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
