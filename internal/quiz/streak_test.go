package quiz

import (
	"testing"
	"time"
)

func TestNextStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		name   string
		streak int
		last   string
		want   int
	}{
		{"first quiz", 0, "", 1},
		{"same day", 4, "2026-03-10", 4},
		{"same day unset streak", 0, "2026-03-10", 1},
		{"next day", 4, "2026-03-09", 5},
		{"gap", 4, "2026-03-07", 1},
		{"garbage date", 4, "yesterday", 1},
		{"future date", 4, "2026-03-12", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStreak(tt.streak, tt.last, today); got != tt.want {
				t.Errorf("NextStreak(%d, %q) = %d, want %d", tt.streak, tt.last, got, tt.want)
			}
		})
	}
}

func TestNextMilestone(t *testing.T) {
	tests := []struct{ current, want int }{
		{0, 3}, {3, 7}, {6, 7}, {7, 14}, {29, 30}, {30, 60}, {61, 90},
	}
	for _, tt := range tests {
		if got := NextMilestone(tt.current); got != tt.want {
			t.Errorf("NextMilestone(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func TestCurrentStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	tests := []struct {
		last string
		want int
	}{
		{"", 0},
		{"2026-03-10", 5},
		{"2026-03-09", 5},
		{"2026-03-08", 0},
		{"2026-03-11", 0},
	}
	for _, tt := range tests {
		if got := CurrentStreak(5, tt.last, today); got != tt.want {
			t.Errorf("CurrentStreak(5, %q) = %d, want %d", tt.last, got, tt.want)
		}
	}
}
