package adaptive

import (
	"testing"

	"github.com/abhisek/adaptiq/internal/questiongen"
)

func TestRecommend_EmptyHistoryUsesFallback(t *testing.T) {
	tests := []struct {
		fallback questiongen.Difficulty
		want     questiongen.Difficulty
	}{
		{questiongen.Easy, questiongen.Easy},
		{questiongen.Hard, questiongen.Hard},
		{"", questiongen.Medium},
		{"impossible", questiongen.Medium},
	}
	for _, tt := range tests {
		if got := Recommend(nil, tt.fallback); got != tt.want {
			t.Errorf("Recommend(nil, %q) = %q, want %q", tt.fallback, got, tt.want)
		}
	}
}

func TestRecommend_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		recent []Attempt
		want   questiongen.Difficulty
	}{
		{"high score medium escalates", []Attempt{{90, questiongen.Medium}}, questiongen.Hard},
		{"low score medium de-escalates", []Attempt{{30, questiongen.Medium}}, questiongen.Easy},
		{"high score easy escalates", []Attempt{{80, questiongen.Easy}}, questiongen.Medium},
		{"high score hard stays", []Attempt{{100, questiongen.Hard}}, questiongen.Hard},
		{"low score hard steps down", []Attempt{{10, questiongen.Hard}}, questiongen.Medium},
		{"low score easy stays", []Attempt{{0, questiongen.Easy}}, questiongen.Easy},
		{"middle holds", []Attempt{{65, questiongen.Hard}}, questiongen.Hard},
		{"exactly 50 holds", []Attempt{{50, questiongen.Easy}}, questiongen.Easy},
		{"just under 80 holds", []Attempt{{79.9, questiongen.Medium}}, questiongen.Medium},
		{
			"mean over window, most recent level",
			[]Attempt{{100, questiongen.Easy}, {90, questiongen.Hard}, {70, questiongen.Hard}},
			questiongen.Medium,
		},
		{
			"mean below 50 across window",
			[]Attempt{{60, questiongen.Hard}, {20, questiongen.Hard}, {30, questiongen.Medium}},
			questiongen.Medium,
		},
		{"unknown level defaults to medium", []Attempt{{90, "mixed"}}, questiongen.Medium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recommend(tt.recent, questiongen.Medium); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecommend_UnsetDifficultyUsesFallback(t *testing.T) {
	got := Recommend([]Attempt{{95, ""}}, questiongen.Easy)
	if got != questiongen.Medium {
		t.Errorf("got %q, want medium", got)
	}
}

func TestRecommend_Monotonic(t *testing.T) {
	levels := []questiongen.Difficulty{questiongen.Easy, questiongen.Medium, questiongen.Hard}
	for _, d := range levels {
		for score := 0.0; score <= 100; score += 5 {
			got := Recommend([]Attempt{{score, d}}, questiongen.Medium)
			if score >= 80 && got.Level() < d.Level() {
				t.Errorf("score %.0f at %s lowered to %s", score, d, got)
			}
			if score < 50 && got.Level() > d.Level() {
				t.Errorf("score %.0f at %s raised to %s", score, d, got)
			}
			if !got.Valid() {
				t.Errorf("invalid recommendation %q", got)
			}
		}
	}
}

func TestAnalyze(t *testing.T) {
	r := Analyze([]Attempt{{90, questiongen.Medium}, {85, questiongen.Medium}, {76, questiongen.Easy}}, questiongen.Medium)
	if r.Difficulty != questiongen.Hard {
		t.Errorf("difficulty = %q, want hard", r.Difficulty)
	}
	if r.Trend != TrendEscalate {
		t.Errorf("trend = %q, want escalate", r.Trend)
	}
	if r.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", r.Attempts)
	}
	if Round1(r.Average) != 83.7 {
		t.Errorf("average = %v, want 83.7", Round1(r.Average))
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(66.666); got != 66.7 {
		t.Errorf("Round1(66.666) = %v", got)
	}
	if got := Round1(0); got != 0 {
		t.Errorf("Round1(0) = %v", got)
	}
}
