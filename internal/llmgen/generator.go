// Package llmgen produces quiz questions with an LLM provider. It is the
// alternative to the rule-based generator in questiongen and returns the
// same Question shape.
package llmgen

import (
	"context"

	"github.com/abhisek/adaptiq/internal/questiongen"
)

// Generator produces quiz questions from source text.
type Generator interface {
	// Generate asks for input.Count questions and returns those that pass
	// every configured validator.
	Generate(ctx context.Context, input Input) ([]questiongen.Question, error)
}

// Input describes one generation request.
type Input struct {
	Text       string
	Count      int
	Difficulty questiongen.Difficulty // empty means mixed
	Types      []questiongen.Type     // empty means all types

	// PriorQuestions lists question texts the learner has already seen.
	PriorQuestions []string
}
