package questiongen

import (
	"strings"
	"unicode/utf8"

	"github.com/abhisek/adaptiq/internal/nlp"
)

// ExtractKeywords returns up to topN noun tokens longer than two characters,
// deduplicated case-insensitively in order of first appearance. An empty
// result means the sentence has no usable answer term.
func ExtractKeywords(a nlp.Analyzer, sentence string, topN int) []string {
	if topN <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, tok := range a.Tag(sentence) {
		if !nlp.IsNoun(tok.Tag) || utf8.RuneCountInString(tok.Text) <= 2 {
			continue
		}
		key := strings.ToLower(tok.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tok.Text)
		if len(out) == topN {
			break
		}
	}
	return out
}

// MergeKeywords concatenates keyword lists, dropping case-insensitive
// duplicates and keeping the first-seen casing.
func MergeKeywords(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, k := range list {
			key := strings.ToLower(k)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, k)
		}
	}
	return out
}
