package study

import "github.com/abhisek/adaptiq/internal/llm"

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// MaterialSchema defines the JSON schema for study material generation.
var MaterialSchema = &llm.Schema{
	Name:        "study-material",
	Description: "Study aids for a piece of learning content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"shorthand_notes": stringList,
			"eli10": map[string]any{
				"type":        "string",
				"description": `A simple "Explain Like I'm 10" paragraph`,
			},
			"mnemonic_story": map[string]any{
				"type":        "string",
				"description": "A creative memory story using the key concepts",
			},
			"flashcards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string"},
						"back":  map[string]any{"type": "string"},
					},
					"required":             []any{"front", "back"},
					"additionalProperties": false,
				},
			},
			"key_concepts": stringList,
		},
		"required":             []any{"shorthand_notes", "eli10", "mnemonic_story", "flashcards", "key_concepts"},
		"additionalProperties": false,
	},
}

// InsightSchema wraps post-quiz feedback.
var InsightSchema = &llm.Schema{
	Name:        "quiz-insight",
	Description: "Short constructive feedback on quiz mistakes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type":        "string",
				"description": "2-3 lines naming the weak sub-topic and one actionable study tip",
			},
		},
		"required":             []any{"feedback"},
		"additionalProperties": false,
	},
}

// TopicSchema wraps a detected topic label.
var TopicSchema = &llm.Schema{
	Name:        "content-topic",
	Description: "The main subject of a text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "The topic name in 2-4 words",
			},
		},
		"required":             []any{"topic"},
		"additionalProperties": false,
	},
}

// FunFactSchema wraps a single dashboard fact.
var FunFactSchema = &llm.Schema{
	Name:        "fun-fact",
	Description: "One surprising science or technology fact",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"fact": map[string]any{
				"type":        "string",
				"description": "A single sentence",
			},
		},
		"required":             []any{"fact"},
		"additionalProperties": false,
	},
}
