// Package summary shows the graded result of a quiz attempt.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// InsightFunc fetches feedback on the missed questions of the attempt.
type InsightFunc func(ctx context.Context) (string, error)

type insightMsg struct {
	Text string
	Err  error
}

// maxMissedShown caps the missed-question list.
const maxMissedShown = 5

// SummaryScreen displays the quiz result.
type SummaryScreen struct {
	result  *quiz.Result
	title   string
	insight InsightFunc

	insightText    string
	insightErr     string
	insightLoading bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. insight may be nil.
func New(result *quiz.Result, title string, insight InsightFunc) *SummaryScreen {
	return &SummaryScreen{result: result, title: title, insight: insight}
}

// Init publishes the new streak and level to the header.
func (s *SummaryScreen) Init() tea.Cmd {
	if s.result == nil {
		return nil
	}
	status := screen.StatusMsg{Streak: s.result.Streak, Level: s.result.NextDifficulty}
	return func() tea.Msg { return status }
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.canFetchInsight() {
		hints = append(hints, layout.KeyHint{Key: "I", Description: "Study tips"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *SummaryScreen) canFetchInsight() bool {
	return s.insight != nil && s.missed() > 0 && s.insightText == "" && !s.insightLoading
}

func (s *SummaryScreen) missed() int {
	if s.result == nil {
		return 0
	}
	return s.result.Total - s.result.Correct
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case insightMsg:
		s.insightLoading = false
		if msg.Err != nil {
			s.insightErr = msg.Err.Error()
		} else {
			s.insightText = msg.Text
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "i", "I":
			if !s.canFetchInsight() {
				return s, nil
			}
			s.insightLoading = true
			s.insightErr = ""
			fetch := s.insight
			return s, func() tea.Msg {
				text, err := fetch(context.Background())
				return insightMsg{Text: text, Err: err}
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	heading := "Quiz complete!"
	if s.title != "" {
		heading = s.title + " complete!"
	}
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), heading))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(width, scoreStyle(res.ScorePercent),
		fmt.Sprintf("%.0f%%", res.ScorePercent)))
	b.WriteString("\n\n")

	mins := int(res.TimeTakenSeconds) / 60
	secs := int(res.TimeTakenSeconds) % 60
	statsLine := fmt.Sprintf("Correct: %d/%d        Time: %d:%02d", res.Correct, res.Total, mins, secs)
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n\n")

	next := "Next quiz: " + theme.DifficultyStyle(res.NextDifficulty).Render(strings.ToUpper(res.NextDifficulty))
	b.WriteString(layout.Center(width, lipgloss.NewStyle(), next))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Accent),
		fmt.Sprintf("★ %s  ·  next milestone %d days", days(res.Streak), res.NextMilestone)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	if missed := missedResults(res.Results); len(missed) > 0 {
		b.WriteString(layout.Center(width, dim, "Review"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")

		textWidth := max(min(width-8, 60), 10)
		for i, r := range missed {
			if i == maxMissedShown {
				b.WriteString(layout.Center(width, dim,
					fmt.Sprintf("...and %d more", len(missed)-maxMissedShown)))
				b.WriteString("\n")
				break
			}
			given := r.UserAnswer
			if given == "" {
				given = "(no answer)"
			}
			entry := lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text).Render("• "+r.Text) + "\n" +
				lipgloss.NewStyle().Width(textWidth).Render(
					theme.Incorrect.Render("  "+given)+dim.Render("  →  ")+theme.Correct.Render(r.CorrectAnswer))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, entry))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(layout.Center(width, theme.Correct, "Perfect score!"))
		b.WriteString("\n")
	}

	switch {
	case s.insightLoading:
		b.WriteString("\n")
		b.WriteString(layout.Center(width, theme.Hint, "Thinking about your answers..."))
	case s.insightErr != "":
		b.WriteString("\n")
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error), s.insightErr))
	case s.insightText != "":
		b.WriteString("\n")
		tips := lipgloss.NewStyle().Width(max(min(width-8, 70), 10)).Foreground(theme.Secondary).Render(s.insightText)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, tips))
	}

	return b.String()
}

func missedResults(results []quiz.QuestionResult) []quiz.QuestionResult {
	var out []quiz.QuestionResult
	for _, r := range results {
		if !r.IsCorrect {
			out = append(out, r)
		}
	}
	return out
}

func scoreStyle(score float64) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch {
	case score >= 80:
		return s.Foreground(theme.Success)
	case score >= 50:
		return s.Foreground(theme.ArcadeYellow)
	default:
		return s.Foreground(theme.Error)
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day streak"
	}
	return fmt.Sprintf("%d day streak", n)
}
