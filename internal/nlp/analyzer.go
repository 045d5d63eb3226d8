package nlp

// Token is a single word of a sentence with its Penn Treebank tag.
type Token struct {
	Text string
	Tag  string
}

// Analyzer segments text into sentences and tags the words of a sentence.
// Implementations must be ready to use when handed to a consumer; any model
// loading happens at construction.
type Analyzer interface {
	// Sentences splits text into trimmed, non-empty sentences.
	Sentences(text string) []string

	// Tag tokenizes a sentence and assigns a part-of-speech tag to each token.
	Tag(sentence string) []Token
}

// IsNoun reports whether tag marks a common or proper noun, singular or plural.
func IsNoun(tag string) bool {
	switch tag {
	case "NN", "NNS", "NNP", "NNPS":
		return true
	}
	return false
}
