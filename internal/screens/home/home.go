// Package home is the terminal player's main menu: it shows the learner's
// progress on the loaded content and starts quizzes, reviews, study notes
// and history.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/history"
	"github.com/abhisek/adaptiq/internal/screens/notes"
	"github.com/abhisek/adaptiq/internal/screens/play"
	"github.com/abhisek/adaptiq/internal/study"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// Service is the part of the quiz service the home screen and the screens
// it opens use.
type Service interface {
	play.Service
	history.Service
	Progress(ctx context.Context, userID string) (*quiz.Progress, error)
	Generate(ctx context.Context, userID string, req quiz.Request) (*quiz.Quiz, error)
	ReviewMistakes(ctx context.Context, userID string, limit int) (*quiz.Quiz, error)
	Study(ctx context.Context, contentID string) (*study.Material, error)
}

// Config wires the home screen.
type Config struct {
	Service      Service
	UserID       string
	ContentTitle string

	// Request is used for every quiz started from the menu.
	Request quiz.Request

	// ReviewSize caps review attempts; zero uses the service default.
	ReviewSize int
}

// Menu labels.
const (
	labelStart   = "START QUIZ"
	labelReview  = "REVIEW MISTAKES"
	labelNotes   = "STUDY NOTES"
	labelHistory = "HISTORY"
	labelQuit    = "QUIT"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// Content heights below which the mascot and then the bordered menu are
// dropped.
const (
	fullHeight  = 44
	tightHeight = 26
)

type progressMsg struct {
	Progress *quiz.Progress
	Err      error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	cfg      Config
	menu     components.Menu
	progress *quiz.Progress
	errMsg   string
}

var (
	_ screen.Screen    = (*HomeScreen)(nil)
	_ screen.Refresher = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(cfg Config) *HomeScreen {
	h := &HomeScreen{cfg: cfg}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: labelStart, Action: h.push(h.startQuiz)},
		{Label: labelReview, Action: h.push(h.startReview), Disabled: true},
		{Label: labelNotes, Action: h.push(h.studyNotes)},
		{Label: labelHistory, Action: h.push(h.history)},
		{Label: labelQuit, Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		next := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (h *HomeScreen) startQuiz() screen.Screen {
	svc, userID, req := h.cfg.Service, h.cfg.UserID, h.cfg.Request
	return play.New(svc, userID, h.cfg.ContentTitle, func(ctx context.Context) (*quiz.Quiz, error) {
		return svc.Generate(ctx, userID, req)
	})
}

func (h *HomeScreen) startReview() screen.Screen {
	svc, userID, limit := h.cfg.Service, h.cfg.UserID, h.cfg.ReviewSize
	return play.New(svc, userID, "Review", func(ctx context.Context) (*quiz.Quiz, error) {
		return svc.ReviewMistakes(ctx, userID, limit)
	})
}

func (h *HomeScreen) studyNotes() screen.Screen {
	svc, contentID := h.cfg.Service, h.cfg.Request.ContentID
	return notes.New(h.cfg.ContentTitle, func(ctx context.Context) (*study.Material, error) {
		return svc.Study(ctx, contentID)
	})
}

func (h *HomeScreen) history() screen.Screen {
	return history.New(h.cfg.Service, h.cfg.UserID)
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.Refresh()
}

// Refresh reloads the learner's progress.
func (h *HomeScreen) Refresh() tea.Cmd {
	svc, userID := h.cfg.Service, h.cfg.UserID
	return func() tea.Msg {
		p, err := svc.Progress(context.Background(), userID)
		return progressMsg{Progress: p, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(progressMsg); ok {
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.progress = msg.Progress
		h.menu.SetDisabled(labelReview, msg.Progress.Mistakes == 0)
		status := screen.StatusMsg{Streak: msg.Progress.Streak, Level: msg.Progress.Difficulty}
		return h, func() tea.Msg { return status }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < fullHeight || width < 100
	tight := height < tightHeight

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		variant := MascotIdle
		if h.progress != nil {
			variant = mascotFor(h.progress.Streak, h.progress.Mistakes)
		}
		sections = append(sections, renderMascotBox(variant, cw))
	}

	if h.cfg.ContentTitle != "" {
		sections = append(sections, renderContentCard(h.cfg.ContentTitle, cw))
	}

	sections = append(sections, renderStatsBar(h.progress, cw, compact))
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Width(cw).
			Align(lipgloss.Center).
			Render(h.errMsg))
	} else if !compact {
		sections = append(sections, renderProgressNote(h.progress, cw))
		if h.progress != nil && h.progress.FunFact != "" {
			sections = append(sections, renderFunFact(h.progress.FunFact, cw))
		}
	}

	menu := h.menu.View(buttonWidth)
	if tight {
		menu = h.menu.ViewCompact()
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(menu))

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
