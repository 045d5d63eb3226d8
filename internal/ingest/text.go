// Package ingest turns uploaded sources into plain text and splits it into
// stored chunks.
package ingest

import (
	"regexp"
	"strings"
)

// DefaultChunkSentences is the number of sentences per stored chunk.
const DefaultChunkSentences = 5

var (
	sentenceBreak = regexp.MustCompile(`[.!?]\s+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonASCIIRun   = regexp.MustCompile(`[^\x00-\x7F]+`)
)

// SplitSentences breaks text after terminal punctuation followed by
// whitespace. The punctuation stays with its sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var out []string
	last := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(text, -1) {
		out = append(out, text[last:loc[0]+1])
		last = loc[1]
	}
	return append(out, text[last:])
}

// Chunk groups sentences into chunks of up to maxSentences each, joined by
// single spaces. Empty chunks are dropped.
func Chunk(text string, maxSentences int) []string {
	if maxSentences <= 0 {
		maxSentences = DefaultChunkSentences
	}

	sentences := SplitSentences(text)
	var chunks []string
	for i := 0; i < len(sentences); i += maxSentences {
		end := min(i+maxSentences, len(sentences))
		if c := strings.TrimSpace(strings.Join(sentences[i:end], " ")); c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

// Clean collapses whitespace, replaces non-ASCII runs with a space and
// trims the result.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = nonASCIIRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
