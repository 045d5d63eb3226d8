package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("  One. Two!  Three?\nFour  ")
	assert.Equal(t, []string{"One.", "Two!", "Three?", "Four"}, got)
	assert.Empty(t, SplitSentences("   "))
}

func TestSplitSentences_KeepsInlinePunctuation(t *testing.T) {
	got := SplitSentences("Version 1.5 shipped. Pi is 3.14159.")
	assert.Equal(t, []string{"Version 1.5 shipped.", "Pi is 3.14159."}, got)
}

func TestChunk(t *testing.T) {
	text := "S1. S2. S3. S4. S5. S6. S7."
	assert.Equal(t, []string{"S1. S2. S3. S4. S5.", "S6. S7."}, Chunk(text, 5))
	assert.Equal(t, []string{"S1. S2. S3.", "S4. S5. S6.", "S7."}, Chunk(text, 3))
}

func TestChunk_DefaultsAndEmpty(t *testing.T) {
	assert.Empty(t, Chunk("", 5))
	assert.Equal(t, []string{"A. B."}, Chunk("A. B.", 0))
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  hello \n\t world  ", "hello world"},
		{"café au lait", "caf  au lait"},
		{"emoji \U0001F9E0 brain", "emoji   brain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "Clean(%q)", tt.in)
	}
}
