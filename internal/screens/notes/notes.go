// Package notes shows the study material generated for a piece of content:
// shorthand notes, a plain explanation, a mnemonic and flashcards.
package notes

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/study"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// LoadFunc fetches the material.
type LoadFunc func(ctx context.Context) (*study.Material, error)

type loadedMsg struct {
	Material *study.Material
	Err      error
}

type tab int

const (
	tabNotes tab = iota
	tabFlashcards
)

// NotesScreen displays study material.
type NotesScreen struct {
	load     LoadFunc
	title    string
	material *study.Material
	errMsg   string

	tab     tab
	card    int
	flipped bool
}

var _ screen.Screen = (*NotesScreen)(nil)
var _ screen.KeyHintProvider = (*NotesScreen)(nil)

// New creates a notes screen for the content titled title.
func New(title string, load LoadFunc) *NotesScreen {
	return &NotesScreen{load: load, title: title}
}

func (s *NotesScreen) Init() tea.Cmd {
	load := s.load
	return func() tea.Msg {
		m, err := load(context.Background())
		return loadedMsg{Material: m, Err: err}
	}
}

func (s *NotesScreen) Title() string {
	return "Study Notes"
}

func (s *NotesScreen) KeyHints() []layout.KeyHint {
	if s.tab == tabFlashcards {
		return []layout.KeyHint{
			{Key: "Space", Description: "Flip"},
			{Key: "←→", Description: "Cards"},
			{Key: "Tab", Description: "Notes"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Flashcards"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *NotesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.material = msg.Material
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			if s.tab == tabNotes {
				s.tab = tabFlashcards
			} else {
				s.tab = tabNotes
			}
			s.flipped = false
		case "space", " ":
			if s.tab == tabFlashcards {
				s.flipped = !s.flipped
			}
		case "right", "l":
			if s.tab == tabFlashcards && s.material != nil && s.card < len(s.material.Flashcards)-1 {
				s.card++
				s.flipped = false
			}
		case "left", "h":
			if s.tab == tabFlashcards && s.card > 0 {
				s.card--
				s.flipped = false
			}
		}
	}
	return s, nil
}

func (s *NotesScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if s.material == nil {
		return layout.Center(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			"\n\n  Preparing study notes...")
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(layout.Center(width, theme.Title, s.title))
	b.WriteString("\n\n")
	if s.tab == tabFlashcards {
		b.WriteString(s.renderFlashcard(width, cw))
	} else {
		b.WriteString(s.renderNotes(cw))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *NotesScreen) renderNotes(cw int) string {
	m := s.material
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw)

	var sections []string
	if len(m.ShorthandNotes) > 0 {
		var lines []string
		for _, n := range m.ShorthandNotes {
			lines = append(lines, "• "+n)
		}
		sections = append(sections, heading.Render("Notes")+"\n"+body.Render(strings.Join(lines, "\n")))
	}
	if m.ELI10 != "" {
		sections = append(sections, heading.Render("In plain words")+"\n"+body.Render(m.ELI10))
	}
	if m.MnemonicStory != "" {
		sections = append(sections, heading.Render("Remember it")+"\n"+body.Render(m.MnemonicStory))
	}
	if len(m.KeyConcepts) > 0 {
		sections = append(sections, heading.Render("Key concepts")+"\n"+
			body.Foreground(theme.ArcadeCyan).Render(strings.Join(m.KeyConcepts, "  ·  ")))
	}
	return strings.Join(sections, "\n\n")
}

func (s *NotesScreen) renderFlashcard(width, cw int) string {
	cards := s.material.Flashcards
	if len(cards) == 0 {
		return theme.Hint.Render("No flashcards for this content.")
	}
	c := cards[s.card]
	face, style := c.Front, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	if s.flipped {
		face, style = c.Back, lipgloss.NewStyle().Foreground(theme.Text)
	}
	card := components.ArcadeCard(style.Render(face), cw)
	counter := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Card %d of %d", s.card+1, len(cards)))
	return card + "\n\n" + counter
}
