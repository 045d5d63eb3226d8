package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// LookupCost returns pricing for a model ID, or nil if the model is unknown.
// Dated snapshots ("gpt-4o-mini-2024-07-18") match their family entry, and
// OpenRouter IDs are matched without the vendor prefix.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(modelID)
	if _, rest, ok := strings.Cut(id, "/"); ok {
		id = rest
	}
	id = strings.TrimSuffix(id, ":free")

	best := ""
	for family := range modelCosts {
		if strings.HasPrefix(id, family) && len(family) > len(best) {
			best = family
		}
	}
	if best == "" {
		return nil
	}
	c := modelCosts[best]
	return &c
}

// modelCosts lists the model families the providers default to or are
// commonly configured with. Prices from models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	// Groq
	"llama-3.1-8b-instant":    {0.05, 0.08},
	"llama-3.3-70b-versatile": {0.59, 0.79},
	"gemma2-9b-it":            {0.2, 0.2},

	// Anthropic
	"claude-3-5-haiku": {0.8, 4},
	"claude-haiku-4-5": {1, 5},
	"claude-sonnet-4":  {3, 15},
	"claude-opus-4-5":  {5, 25},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5-mini":   {0.25, 2},

	// Gemini
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}
