package llmgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/adaptiq/internal/questiongen"
)

const systemPrompt = `You are an expert academic examiner writing quiz questions from study material.

Rules:
- Every question must be answerable from the provided content alone.
- mcq: exactly 4 distinct options, one of them correct. Distractors should be plausible, not random.
- true_false: options are exactly ["True", "False"] and correct_answer is "True" or "False".
- fill_blank: the question text contains ______ where the missing term goes. No options.
- short_answer: ask for a key concept in a few words. No options.
- correct_answer is the full option text, never a letter.
- Keep each explanation to one or two sentences.
- Do not repeat any question from the "already asked" list.`

// difficultyGuide describes the cognitive level expected at each difficulty.
func difficultyGuide(d questiongen.Difficulty) string {
	switch d {
	case questiongen.Easy:
		return "simple recall and basic understanding"
	case questiongen.Hard:
		return "synthesis, evaluation, and critical thinking"
	default:
		return "application and analysis level"
	}
}

// buildUserMessage constructs the user message from Input and Config limits.
func buildUserMessage(input Input, cfg Config) string {
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = questiongen.Medium
	}
	types := input.Types
	if len(types) == 0 {
		types = questiongen.AllTypes
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Task: Generate exactly %d questions.\n", input.Count)
	fmt.Fprintf(&b, "Question types: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Difficulty: %s, focus on %s.\n", difficulty, difficultyGuide(difficulty))

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	b.WriteString("\n\nContent:\n")
	b.WriteString(truncateRunes(input.Text, cfg.MaxContentChars))

	return b.String()
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
