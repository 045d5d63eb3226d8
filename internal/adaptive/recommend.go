// Package adaptive recommends the next quiz difficulty from recent scores.
package adaptive

import (
	"math"

	"github.com/abhisek/adaptiq/internal/questiongen"
)

// Window is the number of most recent attempts a caller should supply.
const Window = 5

const (
	escalateAt      = 80.0
	deescalateBelow = 50.0
)

// Attempt is one past quiz result as seen by the recommender.
type Attempt struct {
	ScorePercent float64
	Difficulty   questiongen.Difficulty
}

// Trend is the direction the recommendation moved.
type Trend string

const (
	TrendEscalate   Trend = "escalate"
	TrendHold       Trend = "hold"
	TrendDeescalate Trend = "deescalate"
)

var (
	escalate = map[questiongen.Difficulty]questiongen.Difficulty{
		questiongen.Easy:   questiongen.Medium,
		questiongen.Medium: questiongen.Hard,
		questiongen.Hard:   questiongen.Hard,
	}
	deescalate = map[questiongen.Difficulty]questiongen.Difficulty{
		questiongen.Easy:   questiongen.Easy,
		questiongen.Medium: questiongen.Easy,
		questiongen.Hard:   questiongen.Medium,
	}
	hold = map[questiongen.Difficulty]questiongen.Difficulty{
		questiongen.Easy:   questiongen.Easy,
		questiongen.Medium: questiongen.Medium,
		questiongen.Hard:   questiongen.Hard,
	}
)

// Recommendation is the full result of Analyze.
type Recommendation struct {
	Difficulty questiongen.Difficulty
	Average    float64
	Trend      Trend
	Attempts   int
}

// Recommend returns the next difficulty for recent attempts, ordered most
// recent first. The mean score picks a transition table (escalate at 80 or
// above, de-escalate below 50, otherwise hold) which is applied to the most
// recent attempt's difficulty, or to fallback when that is unset. With no
// attempts the fallback itself is returned. The result is always easy,
// medium or hard.
func Recommend(recent []Attempt, fallback questiongen.Difficulty) questiongen.Difficulty {
	return Analyze(recent, fallback).Difficulty
}

// Analyze is Recommend with the mean and trend exposed.
func Analyze(recent []Attempt, fallback questiongen.Difficulty) Recommendation {
	if len(recent) == 0 {
		return Recommendation{Difficulty: normalize(fallback), Trend: TrendHold}
	}

	avg := Average(recent)

	table, trend := hold, TrendHold
	switch {
	case avg >= escalateAt:
		table, trend = escalate, TrendEscalate
	case avg < deescalateBelow:
		table, trend = deescalate, TrendDeescalate
	}

	current := recent[0].Difficulty
	if current == "" {
		current = fallback
	}

	next, ok := table[current]
	if !ok {
		next = questiongen.Medium
	}

	return Recommendation{
		Difficulty: next,
		Average:    avg,
		Trend:      trend,
		Attempts:   len(recent),
	}
}

// Average is the arithmetic mean score, or 0 for no attempts.
func Average(recent []Attempt) float64 {
	if len(recent) == 0 {
		return 0
	}
	var sum float64
	for _, a := range recent {
		sum += a.ScorePercent
	}
	return sum / float64(len(recent))
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func normalize(d questiongen.Difficulty) questiongen.Difficulty {
	if d.Valid() {
		return d
	}
	return questiongen.Medium
}
