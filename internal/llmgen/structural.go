package llmgen

import (
	"strings"

	"github.com/abhisek/adaptiq/internal/questiongen"
)

// StructuralValidator checks that required fields are present, within
// length limits, and that the type was requested.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *questiongen.Question, input Input) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	if strings.TrimSpace(q.Text) == "" {
		return fail("question_text is empty")
	}
	if len(q.Text) > 500 {
		return fail("question_text exceeds 500 characters")
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fail("correct_answer is empty")
	}
	if len(q.Explanation) > 1000 {
		return fail("explanation exceeds 1000 characters")
	}
	if _, ok := questiongen.ParseType(string(q.Type)); !ok {
		return fail("unknown question_type " + string(q.Type))
	}
	if len(input.Types) > 0 && !containsType(input.Types, q.Type) {
		return fail("question_type " + string(q.Type) + " was not requested")
	}
	return nil
}

func containsType(types []questiongen.Type, t questiongen.Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// OptionsValidator enforces the option shape of each question type:
// four distinct options for mcq, True/False for true_false and none for
// free-text types.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *questiongen.Question, _ Input) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	switch q.Type {
	case questiongen.TypeMCQ:
		if len(q.Options) != 4 {
			return fail("mcq must have exactly 4 options")
		}
		seen := make(map[string]bool, 4)
		for _, o := range q.Options {
			key := strings.ToLower(strings.TrimSpace(o))
			if key == "" {
				return fail("mcq option is empty")
			}
			if seen[key] {
				return fail("mcq options must be distinct")
			}
			seen[key] = true
		}
	case questiongen.TypeTrueFalse:
		if len(q.Options) != 2 || q.Options[0] != "True" || q.Options[1] != "False" {
			return fail(`true_false options must be ["True","False"]`)
		}
	case questiongen.TypeFillBlank, questiongen.TypeShortAnswer:
		if len(q.Options) != 0 {
			return fail(string(q.Type) + " must not have options")
		}
	}
	return nil
}

// AnswerInOptionsValidator checks that choice questions list their answer
// exactly once.
type AnswerInOptionsValidator struct{}

func (v *AnswerInOptionsValidator) Name() string { return "answer-in-options" }

func (v *AnswerInOptionsValidator) Validate(q *questiongen.Question, _ Input) *ValidationError {
	if q.Type != questiongen.TypeMCQ && q.Type != questiongen.TypeTrueFalse {
		return nil
	}
	n := 0
	for _, o := range q.Options {
		if o == q.CorrectAnswer {
			n++
		}
	}
	if n != 1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "correct_answer must appear exactly once in options",
			Retryable: true,
		}
	}
	return nil
}
