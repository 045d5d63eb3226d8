package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Disabled items are rendered dim and
// skipped by the cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// move steps the cursor by delta, wrapping around and skipping disabled items.
func (m *Menu) move(delta int) {
	n := len(m.Items)
	for step := 1; step < n; step++ {
		i := ((m.Selected+delta*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// SetDisabled enables or disables the item with label. The cursor moves off
// an item that becomes disabled.
func (m *Menu) SetDisabled(label string, disabled bool) {
	for i := range m.Items {
		if m.Items[i].Label == label {
			m.Items[i].Disabled = disabled
			if disabled && i == m.Selected {
				m.move(1)
			}
		}
	}
}

// View renders each item as a button of the given width.
func (m Menu) View(buttonWidth int) string {
	buttons := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		state := ButtonIdle
		switch {
		case item.Disabled:
			state = ButtonDisabled
		case i == m.Selected:
			state = ButtonSelected
		}
		buttons = append(buttons, ArcadeButton(item.Label, state, buttonWidth))
	}
	return strings.Join(buttons, "\n")
}

// ViewCompact renders the items as plain lines for short terminals.
func (m Menu) ViewCompact() string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   "+item.Label))
		case i == m.Selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+item.Label+" "))
		default:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+item.Label))
		}
	}
	return strings.Join(lines, "\n")
}
