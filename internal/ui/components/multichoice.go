package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// MultiChoice is a selector over two to four answer options. Options are
// picked with the arrows and Enter, or directly with 1-4 or A-D.
type MultiChoice struct {
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int

	// CorrectIndex is -1 until Reveal is called.
	CorrectIndex int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		m.choose(m.Selected)
		return m, nil
	}

	if i, ok := directIndex(key); ok && i < len(m.Options) {
		m.Selected = i
		m.choose(i)
	}
	return m, nil
}

// directIndex maps "1".."4" and "a".."d" to an option index.
func directIndex(key string) (int, bool) {
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 4 {
		return n - 1, true
	}
	if len(key) == 1 {
		c := strings.ToLower(key)[0]
		if c >= 'a' && c <= 'd' {
			return int(c - 'a'), true
		}
	}
	return 0, false
}

func (m *MultiChoice) choose(i int) {
	if len(m.Options) == 0 {
		return
	}
	m.Submitted = true
	m.ChosenIndex = i
}

// Chosen returns the submitted option, or "" before submission.
func (m MultiChoice) Chosen() string {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// Reveal marks the option equal to correct, ignoring case and surrounding
// space, as the right answer.
func (m *MultiChoice) Reveal(correct string) {
	m.CorrectIndex = -1
	want := strings.ToLower(strings.TrimSpace(correct))
	for i, opt := range m.Options {
		if strings.ToLower(strings.TrimSpace(opt)) == want {
			m.CorrectIndex = i
			return
		}
	}
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case m.Submitted && i == m.ChosenIndex:
			if m.CorrectIndex >= 0 {
				style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
			} else {
				style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			}
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// IsCorrect reports whether the chosen option is the revealed answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.CorrectIndex >= 0 && m.ChosenIndex == m.CorrectIndex
}
