package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// Block-letter title.
const arcadeTitleFull = `  █████╗ ██████╗  █████╗ ██████╗ ████████╗██╗ ██████╗
 ██╔══██╗██╔══██╗██╔══██╗██╔══██╗╚══██╔══╝██║██╔═══██╗
 ███████║██║  ██║███████║██████╔╝   ██║   ██║██║   ██║
 ██╔══██║██║  ██║██╔══██║██╔═══╝    ██║   ██║██║▄▄ ██║
 ██║  ██║██████╔╝██║  ██║██║        ██║   ██║╚██████╔╝
 ╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚═╝        ╚═╝   ╚═╝ ╚══▀▀═╝`

const arcadeTitleCompact = "A · D · A · P · T · I · Q"

// fullTitleWidth is the widest line of arcadeTitleFull.
const fullTitleWidth = 54

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact || cw < fullTitleWidth {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderContentCard names the material being studied.
func renderContentCard(title string, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render("STUDYING  ")
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(label + name)
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(p *quiz.Progress, cw int, compact bool) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	mistakeStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	switch {
	case p == nil:
		stats = dimStyle.Render("loading...")
	case compact:
		stats = fmt.Sprintf("%s %s %s",
			theme.DifficultyStyle(p.Difficulty).Render("▲"+initial(p.Difficulty)),
			streakStyle.Render(fmt.Sprintf("★%d", p.Streak)),
			mistakeText(p.Mistakes, true, mistakeStyle, dimStyle),
		)
	default:
		stats = fmt.Sprintf("%s  %s  %s",
			theme.DifficultyStyle(p.Difficulty).Render("▲ "+strings.ToUpper(p.Difficulty)),
			streakStyle.Render(fmt.Sprintf("★ %d DAY STREAK", p.Streak)),
			mistakeText(p.Mistakes, false, mistakeStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func initial(level string) string {
	if level == "" {
		return "?"
	}
	return strings.ToUpper(level[:1])
}

func mistakeText(n int, compact bool, active, dim lipgloss.Style) string {
	if n == 0 {
		if compact {
			return dim.Render("✎0")
		}
		return dim.Render("✎ NO MISTAKES")
	}
	if compact {
		return active.Render(fmt.Sprintf("✎%d", n))
	}
	return active.Render(fmt.Sprintf("✎ %d TO REVIEW", n))
}

// renderProgressNote summarizes the recent trend under the stats bar.
func renderProgressNote(p *quiz.Progress, cw int) string {
	if p == nil || p.TotalQuizzes == 0 {
		return lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(cw).
			Align(lipgloss.Center).
			Render("Take your first quiz to get a difficulty recommendation")
	}
	text := fmt.Sprintf("%d quizzes · recent average %.1f%% · next streak goal %d days",
		p.TotalQuizzes, p.RecentAverage, p.NextMilestone)
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderFunFact shows the dashboard fact as a wrapped, centered line.
func renderFunFact(fact string, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("DID YOU KNOW?")
	body := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(min(cw, 72)).Align(lipgloss.Center).Render(fact)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(label + "\n" + body)
}
