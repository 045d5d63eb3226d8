package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"Paris", "Rome", "Oslo"})
	m, _ = m.Update(special(tea.KeyDown))
	m, _ = m.Update(special(tea.KeyDown))
	m, _ = m.Update(special(tea.KeyDown))
	assert.Equal(t, 2, m.Selected, "cursor stops at the last option")

	m, _ = m.Update(special(tea.KeyUp))
	m, _ = m.Update(special(tea.KeyEnter))
	require.True(t, m.Submitted)
	assert.Equal(t, "Rome", m.Chosen())
}

func TestMultiChoice_DirectKeys(t *testing.T) {
	m := NewMultiChoice([]string{"True", "False"})
	m, _ = m.Update(key('2'))
	assert.Equal(t, "False", m.Chosen())

	m = NewMultiChoice([]string{"True", "False"})
	m, _ = m.Update(key('a'))
	assert.Equal(t, "True", m.Chosen())
}

func TestMultiChoice_IgnoresOutOfRangeKeys(t *testing.T) {
	m := NewMultiChoice([]string{"True", "False"})
	m, _ = m.Update(key('3'))
	m, _ = m.Update(key('d'))
	assert.False(t, m.Submitted)
	assert.Empty(t, m.Chosen())
}

func TestMultiChoice_FrozenAfterSubmit(t *testing.T) {
	m := NewMultiChoice([]string{"x", "y", "z"})
	m, _ = m.Update(key('1'))
	m, _ = m.Update(key('3'))
	assert.Equal(t, "x", m.Chosen())
}

func TestMultiChoice_Reveal(t *testing.T) {
	m := NewMultiChoice([]string{"Paris", "Rome"})
	assert.False(t, m.IsCorrect())

	m, _ = m.Update(key('1'))
	m.Reveal("  paris ")
	assert.Equal(t, 0, m.CorrectIndex)
	assert.True(t, m.IsCorrect())

	m.Reveal("Berlin")
	assert.Equal(t, -1, m.CorrectIndex)
	assert.False(t, m.IsCorrect())
}

func TestMultiChoice_View(t *testing.T) {
	m := NewMultiChoice([]string{"Paris", "Rome", "Oslo", "Bern"})
	view := m.View()
	assert.Contains(t, view, "A)  Paris")
	assert.Contains(t, view, "D)  Bern")
	assert.Contains(t, view, "▸ ")
}

func TestTextInput_Value(t *testing.T) {
	ti := NewTextInput("answer", 0, 30)
	assert.True(t, ti.Blank())

	ti.Model.SetValue("  mitochondria  ")
	assert.Equal(t, "mitochondria", ti.Value())
	assert.False(t, ti.Blank())

	ti.Submit(true)
	assert.Contains(t, ti.View(), "✓")

	ti, _ = ti.Update(key('x'))
	assert.Equal(t, "mitochondria", ti.Value(), "submitted input ignores keys")
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var picked string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd { picked = label; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "START", Action: pick("START")},
		{Label: "REVIEW", Action: pick("REVIEW"), Disabled: true},
		{Label: "QUIT", Action: pick("QUIT")},
	})

	m, _ = m.Update(special(tea.KeyDown))
	assert.Equal(t, 2, m.Selected)

	m, _ = m.Update(special(tea.KeyDown))
	assert.Equal(t, 0, m.Selected, "cursor wraps")

	m, _ = m.Update(special(tea.KeyUp))
	m, _ = m.Update(special(tea.KeyEnter))
	assert.Equal(t, "QUIT", picked)
}

func TestMenu_SetDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A"}, {Label: "B"}})
	m.SetDisabled("A", true)
	assert.Equal(t, 1, m.Selected)
	assert.True(t, m.Items[0].Disabled)

	m.SetDisabled("A", false)
	assert.False(t, m.Items[0].Disabled)
}

func TestProgressBar_Fraction(t *testing.T) {
	assert.Equal(t, 0.0, NewProgressBar("", 1, 0, 40).Fraction())
	assert.Equal(t, 0.5, NewProgressBar("", 2, 4, 40).Fraction())
	assert.Equal(t, 1.0, NewProgressBar("", 9, 4, 40).Fraction())
	assert.Contains(t, NewProgressBar("Q", 2, 4, 40).View(), "2/4")
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 20, ContentWidth(10))
	assert.Equal(t, 44, ContentWidth(50))
	assert.Equal(t, 60, ContentWidth(200))
}

func TestArcadeButtonStates(t *testing.T) {
	assert.Contains(t, ArcadeButton("PLAY", ButtonSelected, 20), "▸ PLAY")
	assert.NotContains(t, ArcadeButton("PLAY", ButtonIdle, 20), "▸")
	assert.NotContains(t, ArcadeButton("PLAY", ButtonDisabled, 20), "▸")
	assert.Equal(t, 3, lipgloss.Height(ArcadeButton("PLAY", ButtonIdle, 20)))
}
