package llmgen

import "github.com/abhisek/adaptiq/internal/llm"

// QuestionSetSchema defines the JSON schema for a batch of generated questions.
var QuestionSetSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A batch of quiz questions grounded in the provided study content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_type": map[string]any{
							"type":        "string",
							"enum":        []any{"mcq", "fill_blank", "true_false", "short_answer"},
							"description": "The kind of question",
						},
						"question_text": map[string]any{
							"type":        "string",
							"description": "The question prompt shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": `4 options for mcq, ["True","False"] for true_false, empty otherwise`,
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The full text of the correct option, or the expected answer",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences explaining why the answer is correct",
						},
					},
					"required":             []any{"question_type", "question_text", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
