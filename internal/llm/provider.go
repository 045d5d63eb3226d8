// Package llm talks to hosted language models. Every backend returns JSON
// validated against the caller's schema, and decorators add retries and
// request logging.
package llm

import (
	"context"
	"encoding/json"
	"time"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate runs one completion. With req.Schema set, Content is JSON
	// matching the schema; otherwise it is the reply text as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the standard-tier model the provider sends requests to.
	ModelID() string
}

// Tier picks between a provider's main model and its cheaper fast model.
type Tier int

const (
	// TierStandard is used for question and study material generation.
	TierStandard Tier = iota
	// TierFast serves short prompts such as insights and topic labels.
	TierFast
)

func (t Tier) String() string {
	if t == TierFast {
		return "fast"
	}
	return "standard"
}

// Request is a single completion request.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, selects the provider's JSON mode and is checked
	// against the reply.
	Schema *Schema

	MaxTokens   int
	Temperature float64

	Tier Tier

	// Timeout bounds this request alone. Zero means only the caller's
	// context applies.
	Timeout time.Duration
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	// Name doubles as the cache key for the compiled schema and the
	// json_schema name sent to OpenAI, e.g. "quiz-questions".
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the provider's reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	// Model is the model that actually served the request.
	Model string
	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func usage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}
