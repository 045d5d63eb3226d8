package nlp

import (
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
)

// taggingModel decodes prose's embedded perceptron weights once. The model
// is only read after loading, so every analyzer shares it.
var taggingModel = sync.OnceValue(func() *prose.Model {
	doc, err := prose.NewDocument("",
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil
	}
	return doc.Model
})

// ProseAnalyzer implements Analyzer with the prose tokenizer, sentence
// segmenter and averaged-perceptron tagger. It is safe for concurrent use.
type ProseAnalyzer struct {
	model *prose.Model
}

// NewProseAnalyzer returns an Analyzer backed by prose. The tagging model
// is loaded on the first call in the process.
func NewProseAnalyzer() *ProseAnalyzer {
	return &ProseAnalyzer{model: taggingModel()}
}

func (p *ProseAnalyzer) Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil
	}

	var out []string
	for _, s := range doc.Sentences() {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (p *ProseAnalyzer) Tag(sentence string) []Token {
	if strings.TrimSpace(sentence) == "" {
		return nil
	}

	doc, err := prose.NewDocument(sentence,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil
	}

	toks := doc.Tokens()
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		out = append(out, Token{Text: t.Text, Tag: t.Tag})
	}
	return out
}
