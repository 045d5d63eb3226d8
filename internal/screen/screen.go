// Package screen defines what the router needs from a page of the terminal
// player, plus the optional hooks a page can opt into.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/ui/layout"
)

// Screen is one page on the router stack. View draws only the body; the
// app adds the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher reloads data when the screen is uncovered by a pop.
type Refresher interface {
	Refresh() tea.Cmd
}

// BackHandler screens consume Esc themselves while HandlesBack is true,
// e.g. to confirm abandoning a quiz.
type BackHandler interface {
	HandlesBack() bool
}

// StatusMsg carries the streak and level shown in the header.
type StatusMsg struct {
	Streak int
	Level  string
}
