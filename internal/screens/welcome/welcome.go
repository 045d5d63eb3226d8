// Package welcome is the splash shown before the home screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

const frameInterval = 100 * time.Millisecond

// Frame counts at which each part of the splash appears.
const (
	sparkleFrame = 5
	bannerFrame  = 15
	lastFrame    = 30
)

const tagline = "Turn anything you read into a quiz."

var mascotLines = []string{
	"╭───────────╮",
	"│  ┌─────┐  │",
	"│  │ ◉ ◉ │  │",
	"│  │  ▽  │  │",
	"│  ├─────┤  │",
	"│  │ ?✓! │  │",
	"│  └─────┘  │",
	"╰───────────╯",
}

var sparkles = []string{"★", "✦", "✧"}

type frameMsg struct{}

// WelcomeScreen plays a short splash and then replaces itself with the
// home screen. Any key skips to the end.
type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a splash that hands over to the screen built by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if w.done {
		return w, nil
	}
	switch msg.(type) {
	case frameMsg:
		w.frame++
		if w.frame >= lastFrame {
			return w, w.finish()
		}
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.finish()
	}
	return w, nil
}

func (w *WelcomeScreen) finish() tea.Cmd {
	w.done = true
	home := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
}

func (w *WelcomeScreen) View(width, height int) string {
	parts := []string{w.mascot()}
	if w.frame >= bannerFrame {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.typedTagline()),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// mascot draws the quiz-card face, framed by twinkling sparkles once the
// sparkle frame is reached.
func (w *WelcomeScreen) mascot() string {
	face := lipgloss.NewStyle().Foreground(theme.Primary)
	if w.frame < sparkleFrame {
		return face.Render(strings.Join(mascotLines, "\n"))
	}

	left := lipgloss.NewStyle().Foreground(theme.Accent)
	right := lipgloss.NewStyle().Foreground(theme.Secondary)
	lines := make([]string, len(mascotLines))
	for i, line := range mascotLines {
		pre, post := "   ", "   "
		if i%3 == 0 {
			s := sparkles[(w.frame+i)%len(sparkles)]
			pre, post = left.Render(s)+"  ", "  "+right.Render(s)
		}
		lines[i] = pre + face.Render(line) + post
	}
	return strings.Join(lines, "\n")
}

// typedTagline reveals the tagline three characters per frame.
func (w *WelcomeScreen) typedTagline() string {
	runes := []rune(tagline)
	n := min(3*(w.frame-bannerFrame+1), len(runes))
	if w.done {
		n = len(runes)
	}
	return string(runes[:n])
}
