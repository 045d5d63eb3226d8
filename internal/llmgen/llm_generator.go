package llmgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/questiongen"
)

// ErrNoValidQuestions is returned when the model answered but nothing passed
// validation and no validator reported a reason.
var ErrNoValidQuestions = errors.New("no valid questions in LLM response")

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	classify func(string) questiongen.Difficulty
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{
		provider: provider,
		config:   cfg,
		classify: questiongen.DefaultConfig().Classify,
	}
}

// questionOutput is one raw question before validation.
type questionOutput struct {
	QuestionType  string   `json:"question_type"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type questionSetOutput struct {
	Questions []questionOutput `json:"questions"`
}

// Generate asks the model for a batch of questions. Questions that fail a
// validator are dropped; if none survive the first failure is returned.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) ([]questiongen.Question, error) {
	if input.Count <= 0 {
		return nil, nil
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, questiongen.ErrNoQuestions
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
		Timeout:     g.config.Timeout,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionSetOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	var (
		out      []questiongen.Question
		firstErr *ValidationError
	)
	for _, r := range raw.Questions {
		q := g.toQuestion(r, input)
		if verr := g.validate(&q, input); verr != nil {
			slog.Debug("dropping generated question", "validator", verr.Validator, "reason", verr.Message)
			if firstErr == nil {
				firstErr = verr
			}
			continue
		}
		out = append(out, q)
		if len(out) == input.Count {
			break
		}
	}

	if len(out) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, ErrNoValidQuestions
	}
	return out, nil
}

func (g *LLMGenerator) validate(q *questiongen.Question, input Input) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}

// toQuestion normalizes a raw question: trims fields, resolves letter
// answers against the options and assigns a difficulty.
func (g *LLMGenerator) toQuestion(r questionOutput, input Input) questiongen.Question {
	q := questiongen.Question{
		Type:          questiongen.Type(strings.ToLower(strings.TrimSpace(r.QuestionType))),
		Text:          strings.TrimSpace(r.QuestionText),
		CorrectAnswer: strings.TrimSpace(r.CorrectAnswer),
		Options:       make([]string, 0, len(r.Options)),
		Explanation:   strings.TrimSpace(r.Explanation),
	}
	for _, o := range r.Options {
		q.Options = append(q.Options, strings.TrimSpace(o))
	}

	if q.Type == questiongen.TypeMCQ || q.Type == questiongen.TypeTrueFalse {
		q.CorrectAnswer = resolveLetter(q.CorrectAnswer, q.Options)
	}
	if q.Type == questiongen.TypeTrueFalse {
		switch strings.ToLower(q.CorrectAnswer) {
		case "true":
			q.CorrectAnswer = "True"
		case "false":
			q.CorrectAnswer = "False"
		}
	}

	q.Difficulty = input.Difficulty
	if q.Difficulty == "" {
		q.Difficulty = g.classify(q.Text)
	}
	return q
}

// resolveLetter maps an "A".."D" style answer onto the matching option.
func resolveLetter(answer string, options []string) string {
	if len(answer) != 1 {
		return answer
	}
	idx := int(strings.ToUpper(answer)[0] - 'A')
	if idx < 0 || idx >= len(options) {
		return answer
	}
	for _, o := range options {
		if o == answer {
			return answer
		}
	}
	return options[idx]
}
