package questiongen

import "strings"

// Classify assigns a difficulty from the sentence word count.
func (c Config) Classify(sentence string) Difficulty {
	n := len(strings.Fields(sentence))
	switch {
	case n <= c.EasyMaxWords:
		return Easy
	case n <= c.MediumMaxWords:
		return Medium
	default:
		return Hard
	}
}

// ClassifyDifficulty classifies with the default thresholds
// (at most 10 words easy, at most 25 medium, otherwise hard).
func ClassifyDifficulty(sentence string) Difficulty {
	return DefaultConfig().Classify(sentence)
}
