package questiongen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeDistractors_PoolFirst(t *testing.T) {
	got := SynthesizeDistractors("cell", []string{"Cell", "heart", "blood", "brain", "veins"}, 3, NewRand(1))
	assert.Equal(t, []string{"heart", "blood", "brain"}, got)
}

func TestSynthesizeDistractors_PadsWithGeneric(t *testing.T) {
	got := SynthesizeDistractors("cell", []string{"cell", "heart"}, 3, NewRand(7))
	require.Len(t, got, 3)
	assert.Equal(t, "heart", got[0])
	for _, g := range got[1:] {
		assert.Contains(t, genericDistractors, g)
	}
}

func TestSynthesizeDistractors_NeverContainsAnswer(t *testing.T) {
	for seed := range uint64(50) {
		got := SynthesizeDistractors("Unknown", []string{"unknown", "cell"}, 5, NewRand(seed))
		for _, d := range got {
			if strings.EqualFold(d, "Unknown") {
				t.Fatalf("seed %d: distractors %v contain the answer", seed, got)
			}
		}
		assert.Len(t, got, 5)
	}
}

func TestSynthesizeDistractors_NoDuplicates(t *testing.T) {
	got := SynthesizeDistractors("cell", []string{"Unknown"}, 5, NewRand(3))
	seen := map[string]bool{}
	for _, d := range got {
		key := strings.ToLower(d)
		if seen[key] {
			t.Fatalf("duplicate distractor %q in %v", d, got)
		}
		seen[key] = true
	}
}

func TestSynthesizeDistractors_ZeroN(t *testing.T) {
	assert.Empty(t, SynthesizeDistractors("cell", []string{"heart"}, 0, NewRand(1)))
}
