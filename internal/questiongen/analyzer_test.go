package questiongen

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/abhisek/adaptiq/internal/nlp"
)

// lexiconAnalyzer is a deterministic tagger for tests: sentences end at
// terminal punctuation, and a token is a noun only if it is in the lexicon.
type lexiconAnalyzer struct {
	nouns map[string]bool
	// override returns fixed tokens for an exact sentence.
	override map[string][]nlp.Token
}

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

func newLexicon(nouns ...string) *lexiconAnalyzer {
	m := make(map[string]bool, len(nouns))
	for _, n := range nouns {
		m[strings.ToLower(n)] = true
	}
	return &lexiconAnalyzer{nouns: m, override: map[string][]nlp.Token{}}
}

func (l *lexiconAnalyzer) Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var out []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		out = append(out, strings.TrimSpace(text[last:loc[0]+1]))
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

func (l *lexiconAnalyzer) Tag(sentence string) []nlp.Token {
	if toks, ok := l.override[sentence]; ok {
		return toks
	}
	words := strings.FieldsFunc(sentence, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]nlp.Token, 0, len(words))
	for _, w := range words {
		tag := "VB"
		if l.nouns[strings.ToLower(w)] {
			tag = "NN"
		}
		out = append(out, nlp.Token{Text: w, Tag: tag})
	}
	return out
}

const mlText = "Machine learning is a branch of artificial intelligence. " +
	"Supervised learning uses labeled data to train algorithms."

func mlLexicon() *lexiconAnalyzer {
	return newLexicon("machine", "learning", "branch", "intelligence", "data", "algorithms")
}

const longText = "The mitochondria is the powerhouse of the cell. " +
	"Photosynthesis converts sunlight into chemical energy inside chloroplasts. " +
	"The heart pumps blood through arteries and veins across the body. " +
	"Neurons transmit electrical signals between the brain and muscles. " +
	"Enzymes speed up chemical reactions without being consumed in the process. " +
	"Plants absorb water through roots and release oxygen through leaves into the surrounding atmosphere every single day. " +
	"During the long winter months many migratory birds travel thousands of kilometres from northern forests to warmer southern wetlands where food remains plentiful and predators are fewer in number. " +
	"Short one here. " +
	"It is it."

func bioLexicon() *lexiconAnalyzer {
	return newLexicon(
		"mitochondria", "powerhouse", "cell", "photosynthesis", "sunlight", "energy",
		"chloroplasts", "heart", "blood", "arteries", "veins", "body", "neurons",
		"signals", "brain", "muscles", "enzymes", "reactions", "process", "plants",
		"water", "roots", "oxygen", "leaves", "atmosphere", "day", "winter", "months",
		"birds", "thousands", "kilometres", "forests", "wetlands", "food", "predators", "number",
	)
}

// countingAnalyzer records how often each sentence is tagged.
type countingAnalyzer struct {
	*lexiconAnalyzer
	mu   sync.Mutex
	tags map[string]int
}

func newCounting(l *lexiconAnalyzer) *countingAnalyzer {
	return &countingAnalyzer{lexiconAnalyzer: l, tags: map[string]int{}}
}

func (c *countingAnalyzer) Tag(sentence string) []nlp.Token {
	c.mu.Lock()
	c.tags[sentence]++
	c.mu.Unlock()
	return c.lexiconAnalyzer.Tag(sentence)
}

// gatedAnalyzer blocks tagging of any sentence containing "gate" until
// open is closed, signalling on entered the first time it blocks.
type gatedAnalyzer struct {
	*lexiconAnalyzer
	entered chan struct{}
	open    chan struct{}
	once    sync.Once
}

func (g *gatedAnalyzer) Tag(sentence string) []nlp.Token {
	if strings.Contains(sentence, "gate") {
		g.once.Do(func() { close(g.entered) })
		<-g.open
	}
	return g.lexiconAnalyzer.Tag(sentence)
}
