package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default indigo
	MascotCelebrating                      // Gold, star eyes: streak milestone reached
	MascotAlert                            // Orange, exclamation: mistake bank is filling up
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ?✓! │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ?✓! │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ?✓! │
└─────┘`

// alertMistakes is the bank size at which the mascot nags for a review.
const alertMistakes = 5

// mascotFor picks the variant for a learner's streak and mistake count.
func mascotFor(streak, mistakes int) MascotVariant {
	switch {
	case mistakes >= alertMistakes:
		return MascotAlert
	case isMilestone(streak):
		return MascotCelebrating
	}
	return MascotIdle
}

func isMilestone(streak int) bool {
	switch streak {
	case 3, 7, 14:
		return true
	}
	return streak > 0 && streak%30 == 0
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary

	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
