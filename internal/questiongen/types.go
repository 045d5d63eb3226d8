package questiongen

import "strings"

// Type is the kind of question a synthesizer produces.
type Type string

const (
	TypeMCQ         Type = "mcq"
	TypeFillBlank   Type = "fill_blank"
	TypeTrueFalse   Type = "true_false"
	TypeShortAnswer Type = "short_answer"
)

// AllTypes lists every question type in the default generation order.
var AllTypes = []Type{TypeMCQ, TypeFillBlank, TypeTrueFalse, TypeShortAnswer}

// ParseType maps a wire name to a Type. The second result is false for
// names outside the closed set.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeMCQ, TypeFillBlank, TypeTrueFalse, TypeShortAnswer:
		return t, true
	}
	return "", false
}

// Difficulty is the level assigned to a question from its source sentence.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Valid reports whether d is one of easy, medium or hard.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Level orders difficulties: easy=0, medium=1, hard=2, anything else -1.
func (d Difficulty) Level() int {
	switch d {
	case Easy:
		return 0
	case Medium:
		return 1
	case Hard:
		return 2
	}
	return -1
}

// Question is a single generated question, ready to persist and serve.
type Question struct {
	Type          Type       `json:"question_type"`
	Text          string     `json:"question_text"`
	CorrectAnswer string     `json:"correct_answer"`
	Options       []string   `json:"options"`
	Difficulty    Difficulty `json:"difficulty"`
	Explanation   string     `json:"explanation"`
}

// Blank is the placeholder that replaces the answer in blanked prompts.
const Blank = "______"

// Config holds the tunable heuristics of the generator.
type Config struct {
	// EasyMaxWords is the largest word count classified as easy.
	EasyMaxWords int `koanf:"easy_max_words" validate:"gte=1"`

	// MediumMaxWords is the largest word count classified as medium.
	MediumMaxWords int `koanf:"medium_max_words" validate:"gtfield=EasyMaxWords"`

	// MinSentenceWords skips shorter sentences entirely.
	MinSentenceWords int `koanf:"min_sentence_words" validate:"gte=1"`

	// KeywordsPerSentence caps keyword extraction per sentence.
	KeywordsPerSentence int `koanf:"keywords_per_sentence" validate:"gte=1"`

	// Distractors is the number of wrong options on an mcq.
	Distractors int `koanf:"distractors" validate:"gte=1"`

	// DefaultMaxQuestions is the cap used by DefaultOptions.
	DefaultMaxQuestions int `koanf:"default_max_questions" validate:"gte=1"`
}

// DefaultConfig returns the standard heuristics.
func DefaultConfig() Config {
	return Config{
		EasyMaxWords:        10,
		MediumMaxWords:      25,
		MinSentenceWords:    5,
		KeywordsPerSentence: 5,
		Distractors:         3,
		DefaultMaxQuestions: 20,
	}
}
