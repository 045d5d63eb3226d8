package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/questiongen"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.quiz == nil:
		return renderStatus(width, "Generating your quiz...")
	case s.quitConfirm:
		return s.renderQuitConfirm(width)
	case s.phase == phaseSubmitting:
		return renderStatus(width, "Grading your quiz...")
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the active question, with feedback once graded.
func (s *QuizScreen) renderQuestion(width int) string {
	q := s.quiz.Questions[s.index]
	textWidth := min(width-8, 70)

	var b strings.Builder

	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s %d:%02d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.correct,
			lipgloss.NewStyle().Foreground(theme.Accent).Render("T"),
			mins, secs,
		))
	bar := components.NewProgressBar("  Question", s.index+1, len(s.quiz.Questions),
		width-lipgloss.Width(infoRight)-6).View()

	b.WriteString(bar + "  " + infoRight)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	kind := typeLabel(questiongen.Type(q.Type))
	b.WriteString(layout.Center(width, lipgloss.NewStyle(),
		theme.DifficultyStyle(q.Difficulty).Render(strings.ToUpper(q.Difficulty))+
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ·  "+kind)))
	b.WriteString("\n\n")

	questionText := lipgloss.NewStyle().
		Width(textWidth).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionText))
	b.WriteString("\n\n")

	if s.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
		if s.phase == phaseQuestion {
			b.WriteString("\n")
			b.WriteString(layout.Center(width, theme.Hint,
				fmt.Sprintf("Select (1-%d) or use arrows + Enter", len(s.mc.Options))))
		}
	} else {
		b.WriteString(layout.Center(width, lipgloss.NewStyle(), "Answer: "+s.input.View()))
	}
	b.WriteString("\n\n")

	switch s.phase {
	case phaseChecking:
		b.WriteString(layout.Center(width, theme.Hint, "Checking..."))
	case phaseFeedback:
		b.WriteString(s.renderFeedback(width, textWidth))
	}

	return b.String()
}

func typeLabel(t questiongen.Type) string {
	switch t {
	case questiongen.TypeMCQ:
		return "Multiple choice"
	case questiongen.TypeTrueFalse:
		return "True or false"
	case questiongen.TypeFillBlank:
		return "Fill in the blank"
	case questiongen.TypeShortAnswer:
		return "Short answer"
	}
	return string(t)
}

// renderFeedback renders the verdict and explanation below the question.
func (s *QuizScreen) renderFeedback(width, textWidth int) string {
	var b strings.Builder

	if s.feedbackErr != "" {
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error),
			"Could not check this answer: "+s.feedbackErr))
	} else if fb := s.feedback; fb != nil {
		if fb.IsCorrect {
			b.WriteString(layout.Center(width, theme.Correct, "Correct!"))
		} else {
			b.WriteString(layout.Center(width, theme.Incorrect, "Not quite"))
			b.WriteString("\n")
			b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.TextDim),
				"Correct answer: "+fb.CorrectAnswer))
		}
		if fb.Explanation != "" {
			b.WriteString("\n\n")
			exp := lipgloss.NewStyle().
				Width(textWidth).
				Foreground(theme.Text).
				Render(fb.Explanation)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		}
	}

	b.WriteString("\n\n")
	label := "Press Enter to continue..."
	if s.index+1 == len(s.quiz.Questions) {
		label = "Press Enter to see your results..."
	}
	b.WriteString(layout.Center(width, theme.Hint, label))
	return b.String()
}

func (s *QuizScreen) renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		"Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("%d of %d answered. Unanswered questions count as wrong.",
			len(s.answers), len(s.quiz.Questions))))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Success),
		"[S] Submit now"))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error),
		"[D] Discard attempt"))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Primary),
		"[N] No, keep going"))

	return b.String()
}

func renderStatus(width int, text string) string {
	return layout.Center(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n\n"+text)
}

func renderError(width int, errMsg string) string {
	return layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", errMsg))
}
