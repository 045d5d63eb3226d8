package questiongen

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// genericDistractors pad the option list when the keyword pool runs short.
var genericDistractors = []string{
	"None of the above",
	"All of the above",
	"Not enough information",
	"Cannot be determined",
	"Unknown",
}

// SynthesizeDistractors returns up to n wrong options for answer. Pool
// keywords come first in pool order, followed by the generic phrases in
// random order. The answer never appears in the result, and no entry
// appears twice.
func SynthesizeDistractors(answer string, pool []string, n int, rng *rand.Rand) []string {
	if n <= 0 {
		return nil
	}

	out := make([]string, 0, n)
	used := func(s string) bool {
		if strings.EqualFold(s, answer) {
			return true
		}
		return slices.ContainsFunc(out, func(o string) bool { return strings.EqualFold(o, s) })
	}

	for _, k := range pool {
		if len(out) == n {
			return out
		}
		if !used(k) {
			out = append(out, k)
		}
	}

	generic := slices.Clone(genericDistractors)
	rng.Shuffle(len(generic), func(i, j int) { generic[i], generic[j] = generic[j], generic[i] })
	for _, g := range generic {
		if len(out) == n {
			break
		}
		if !used(g) {
			out = append(out, g)
		}
	}
	return out
}
