package llmgen

import "time"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question. The first failure drops the question.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int `koanf:"max_tokens" validate:"gte=256"`

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64 `koanf:"temperature" validate:"gte=0,lte=1"`

	// MaxContentChars truncates the source text sent in the prompt.
	MaxContentChars int `koanf:"max_content_chars" validate:"gt=0"`

	// MaxPriorQuestions is the maximum number of prior questions
	// to include in the prompt for deduplication.
	MaxPriorQuestions int `koanf:"max_prior_questions" validate:"gte=0"`

	// Timeout bounds one generation request.
	Timeout time.Duration `koanf:"timeout"`
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
			&AnswerInOptionsValidator{},
		},
		MaxTokens:         2048,
		Temperature:       0.3,
		MaxContentChars:   4000,
		MaxPriorQuestions: 8,
		Timeout:           30 * time.Second,
	}
}
