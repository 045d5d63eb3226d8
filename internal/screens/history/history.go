// Package history lists past attempts and expands one to its graded
// questions.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/store"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// Service reads a learner's attempts.
type Service interface {
	History(ctx context.Context, userID string) ([]quiz.AttemptSummary, error)
	Attempt(ctx context.Context, userID, attemptID string) (*quiz.AttemptDetail, error)
}

type historyLoadedMsg struct {
	Attempts []quiz.AttemptSummary
	Err      error
}

type detailLoadedMsg struct {
	AttemptID string
	Detail    *quiz.AttemptDetail
	Err       error
}

// HistoryScreen displays past attempts.
type HistoryScreen struct {
	svc      Service
	userID   string
	attempts []quiz.AttemptSummary
	details  map[string]*quiz.AttemptDetail
	selected int
	expanded map[string]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(svc Service, userID string) *HistoryScreen {
	return &HistoryScreen{
		svc:      svc,
		userID:   userID,
		details:  make(map[string]*quiz.AttemptDetail),
		expanded: make(map[string]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	svc, userID := s.svc, s.userID
	return func() tea.Msg {
		attempts, err := svc.History(context.Background(), userID)
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case detailLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.details[msg.AttemptID] = msg.Detail
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

// toggle expands or collapses the selected attempt, loading its detail the
// first time.
func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.attempts) {
		return nil
	}
	id := s.attempts[s.selected].ID
	s.expanded[id] = !s.expanded[id]
	if !s.expanded[id] || s.details[id] != nil {
		return nil
	}
	svc, userID := s.svc, s.userID
	return func() tea.Msg {
		d, err := svc.Attempt(context.Background(), userID, id)
		return detailLoadedMsg{AttemptID: id, Detail: d, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Center(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			"\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return layout.Center(width, theme.Hint, "\n\n  No quizzes yet. Start one from the home screen!")
	}

	var lines []string
	selectedLine := 0
	for i, a := range s.attempts {
		if i == s.selected {
			selectedLine = len(lines)
		}
		lines = append(lines, s.renderRow(i, a, width))
		if s.expanded[a.ID] {
			lines = append(lines, s.renderDetail(a.ID, width)...)
		}
	}

	return strings.Join(visible(lines, selectedLine, height-1), "\n")
}

// visible returns the window of at most height lines that keeps line sel
// in view.
func visible(lines []string, sel, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := max(sel-height/3, 0)
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}

func (s *HistoryScreen) renderRow(i int, a quiz.AttemptSummary, width int) string {
	prefix := "  "
	if i == s.selected {
		prefix = "> "
	}

	dateStr := a.StartedAt.Local().Format("Jan 02, 2006 15:04")
	kind := "Quiz  "
	if a.Kind == store.AttemptReview {
		kind = "Review"
	}

	var result string
	if a.CompletedAt == nil {
		result = "not submitted"
	} else {
		mins := int(a.TimeTakenSeconds) / 60
		secs := int(a.TimeTakenSeconds) % 60
		result = fmt.Sprintf("%d/%d  %3.0f%%  %d:%02d", a.CorrectCount, a.TotalQuestions, a.ScorePercent, mins, secs)
	}

	line := fmt.Sprintf("%s%s  %s  %-6s  %s", prefix, dateStr, kind, a.Difficulty, result)

	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case i == s.selected:
		style = style.Foreground(theme.Primary).Bold(true)
	case a.CompletedAt == nil:
		style = style.Foreground(theme.TextDim)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line))
}

func (s *HistoryScreen) renderDetail(id string, width int) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	d := s.details[id]
	if d == nil {
		return []string{lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading..."))}
	}
	if len(d.Results) == 0 {
		return []string{lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dim.Render(fmt.Sprintf("    %d questions, not submitted", len(d.Questions))))}
	}

	textWidth := max(min(width-16, 56), 10)
	var out []string
	for _, r := range d.Results {
		mark := theme.Correct.Render("✓")
		if !r.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		text := r.Text
		if runes := []rune(text); len(runes) > textWidth {
			text = string(runes[:textWidth-3]) + "..."
		}
		line := fmt.Sprintf("    %s %s", mark, lipgloss.NewStyle().Foreground(theme.Text).Render(text))
		if !r.IsCorrect {
			line += dim.Render("  → " + r.CorrectAnswer)
		}
		out = append(out, lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
	}
	return out
}
