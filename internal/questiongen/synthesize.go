package questiongen

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/adaptiq/internal/nlp"
)

// Synthesizer turns single sentences into questions. Each method reports
// false when the sentence cannot support that question type; this is a
// normal outcome and the caller moves on.
//
// A Synthesizer tags each distinct sentence once and reuses its keywords
// for every question type. It is not safe for concurrent use.
type Synthesizer struct {
	analyzer nlp.Analyzer
	cfg      Config
	rng      *rand.Rand
	tagged   map[string][]string
}

// NewSynthesizer builds a Synthesizer drawing randomness from rng.
func NewSynthesizer(a nlp.Analyzer, cfg Config, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{analyzer: a, cfg: cfg, rng: rng, tagged: map[string][]string{}}
}

// Synthesize dispatches to the synthesizer for t. Unknown types produce
// nothing.
func (s *Synthesizer) Synthesize(t Type, sentence string, pool []string) (Question, bool) {
	switch t {
	case TypeMCQ:
		return s.MCQ(sentence, pool)
	case TypeFillBlank:
		return s.FillBlank(sentence)
	case TypeTrueFalse:
		return s.TrueFalse(sentence, pool)
	case TypeShortAnswer:
		return s.ShortAnswer(sentence)
	}
	return Question{}, false
}

// MCQ blanks the first keyword and offers it among distractors drawn from
// pool.
func (s *Synthesizer) MCQ(sentence string, pool []string) (Question, bool) {
	answer, blanked, ok := s.blank(sentence)
	if !ok {
		return Question{}, false
	}

	options := append(SynthesizeDistractors(answer, pool, s.cfg.Distractors, s.rng), answer)
	s.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return Question{
		Type:          TypeMCQ,
		Text:          "Fill in the blank: " + blanked,
		CorrectAnswer: answer,
		Options:       options,
		Difficulty:    s.cfg.Classify(sentence),
		Explanation:   fmt.Sprintf("The correct answer is '%s' as stated in the source material.", answer),
	}, true
}

// FillBlank blanks the first keyword and expects it as a typed answer.
func (s *Synthesizer) FillBlank(sentence string) (Question, bool) {
	answer, blanked, ok := s.blank(sentence)
	if !ok {
		return Question{}, false
	}

	return Question{
		Type:          TypeFillBlank,
		Text:          "Complete the sentence: " + blanked,
		CorrectAnswer: answer,
		Options:       []string{},
		Difficulty:    s.cfg.Classify(sentence),
		Explanation:   fmt.Sprintf("The missing word is '%s'.", answer),
	}, true
}

// TrueFalse restates the sentence, and on a coin flip swaps its first
// keyword for another corpus keyword to make the statement false. The swap
// needs at least two keywords in pool.
func (s *Synthesizer) TrueFalse(sentence string, pool []string) (Question, bool) {
	kws := s.keywords(sentence)
	if len(kws) == 0 {
		return Question{}, false
	}
	original := kws[0]

	q := Question{
		Type:          TypeTrueFalse,
		Text:          "True or False: " + sentence,
		CorrectAnswer: "True",
		Options:       []string{"True", "False"},
		Difficulty:    s.cfg.Classify(sentence),
		Explanation:   "The statement is true as per the source material.",
	}

	falsify := s.rng.IntN(2) == 0
	if !falsify || len(pool) <= 1 {
		return q, true
	}

	var alternatives []string
	for _, k := range pool {
		if !strings.EqualFold(k, original) {
			alternatives = append(alternatives, k)
		}
	}
	if len(alternatives) == 0 {
		return q, true
	}

	replacement := alternatives[s.rng.IntN(len(alternatives))]
	altered := strings.Replace(sentence, original, replacement, 1)
	if altered == sentence {
		return q, true
	}

	q.Text = "True or False: " + altered
	q.CorrectAnswer = "False"
	q.Explanation = fmt.Sprintf("The statement is false. The original text says '%s' not '%s'.", original, replacement)
	return q, true
}

// ShortAnswer quotes the sentence and asks for its key concept.
func (s *Synthesizer) ShortAnswer(sentence string) (Question, bool) {
	kws := s.keywords(sentence)
	if len(kws) == 0 {
		return Question{}, false
	}
	answer := kws[0]

	return Question{
		Type:          TypeShortAnswer,
		Text:          "Based on the following statement, what is the key concept?\n\"" + sentence + "\"",
		CorrectAnswer: answer,
		Options:       []string{},
		Difficulty:    s.cfg.Classify(sentence),
		Explanation:   fmt.Sprintf("The key concept mentioned is '%s'.", answer),
	}, true
}

// keywords returns the sentence's keywords, tagging it on first use.
// Callers must not modify the returned slice.
func (s *Synthesizer) keywords(sentence string) []string {
	if kws, ok := s.tagged[sentence]; ok {
		return kws
	}
	kws := ExtractKeywords(s.analyzer, sentence, s.cfg.KeywordsPerSentence)
	s.tagged[sentence] = kws
	return kws
}

// blank replaces the first occurrence of the first keyword with Blank.
// It fails when there is no keyword or the keyword does not occur verbatim.
func (s *Synthesizer) blank(sentence string) (answer, blanked string, ok bool) {
	kws := s.keywords(sentence)
	if len(kws) == 0 {
		return "", "", false
	}
	answer = kws[0]
	blanked = strings.Replace(sentence, answer, Blank, 1)
	if blanked == sentence {
		return "", "", false
	}
	return answer, blanked, true
}
