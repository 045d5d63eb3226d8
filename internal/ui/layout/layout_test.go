package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, 40))
	assert.True(t, IsTooSmall(120, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestRenderMinSizeMessage(t *testing.T) {
	msg := RenderMinSizeMessage(60, 20)
	assert.Contains(t, msg, "80 x 24")
	assert.Contains(t, msg, "now 60 x 20")
	assert.Equal(t, 20, lipgloss.Height(msg))
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Quiz", 4, "hard", 100)
	assert.Contains(t, h, "AdaptIQ")
	assert.Contains(t, h, "Quiz")
	assert.Contains(t, h, "★ 4 day")
	assert.Contains(t, h, "HARD")
	assert.Equal(t, 3, lipgloss.Height(h))

	h = RenderHeader("Home", 0, "", 100)
	for _, level := range []string{"EASY", "MEDIUM", "HARD"} {
		assert.NotContains(t, h, level)
	}
}

func TestSpread(t *testing.T) {
	line := spread(30, "L", "mid", "R")
	assert.Equal(t, 31, lipgloss.Width(line))
	assert.True(t, strings.HasPrefix(line, " L "))
	assert.True(t, strings.HasSuffix(line, " R"))

	cramped := spread(4, "left", "center", "right")
	assert.Equal(t, " left center right", cramped)
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}, {Key: "Esc", Description: "Back"}}, 80)
	assert.Contains(t, f, "Enter")
	assert.Contains(t, f, "Select")
	assert.Contains(t, f, "·")
	assert.Contains(t, f, "Back")
}

func TestRenderFrame(t *testing.T) {
	frame := RenderFrame("head", "body", "foot", 40, 10)
	lines := strings.Split(frame, "\n")
	assert.Equal(t, "head", strings.TrimSpace(lines[0]))
	assert.Equal(t, "foot", strings.TrimSpace(lines[len(lines)-1]))
	assert.Equal(t, 10, lipgloss.Height(frame))
}

func TestCenter(t *testing.T) {
	out := Center(20, lipgloss.NewStyle(), "hi")
	assert.Equal(t, 20, lipgloss.Width(out))
	assert.Equal(t, "hi", strings.TrimSpace(out))
}
