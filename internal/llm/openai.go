package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// jsonMode selects how a schema reaches an OpenAI-compatible API.
type jsonMode int

const (
	// jsonSchemaMode sends the schema as a strict json_schema response
	// format.
	jsonSchemaMode jsonMode = iota
	// jsonObjectMode asks for any JSON object and describes the schema in
	// the system prompt. Local validation does the enforcing.
	jsonObjectMode
)

// OpenAIProvider speaks the chat completions API. Groq and OpenRouter use
// it with their own endpoints.
type OpenAIProvider struct {
	name   string
	client *openai.Client
	models models
	mode   jsonMode
}

// NewOpenAIProvider builds a provider for api.openai.com or, with BaseURL,
// any compatible server.
func NewOpenAIProvider(pc ProviderConfig) (*OpenAIProvider, error) {
	return newChatProvider("openai", pc, nil, jsonSchemaMode)
}

func newChatProvider(name string, pc ProviderConfig, aliases map[string]string, mode jsonMode) (*OpenAIProvider, error) {
	if pc.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}
	cc := openai.DefaultConfig(pc.APIKey)
	if pc.BaseURL != "" {
		cc.BaseURL = strings.TrimRight(pc.BaseURL, "/")
	}
	return &OpenAIProvider{
		name:   name,
		client: openai.NewClientWithConfig(cc),
		models: resolveModels(pc, aliases),
		mode:   mode,
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := requestContext(ctx, req)
	defer cancel()

	chat := openai.ChatCompletionRequest{
		Model:               p.models.forTier(req.Tier),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	system := req.System
	if req.Schema != nil {
		switch p.mode {
		case jsonObjectMode:
			system = withSchemaPrompt(system, req.Schema)
			chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		default:
			def, err := json.Marshal(req.Schema.Definition)
			if err != nil {
				return nil, fmt.Errorf("marshal schema %q: %w", req.Schema.Name, err)
			}
			chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:        req.Schema.Name,
					Description: req.Schema.Description,
					Schema:      json.RawMessage(def),
					Strict:      true,
				},
			}
		}
	}
	chat.Messages = chatMessages(system, req.Messages)

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, chatError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s reply has no choices", p.name)}
	}

	choice := resp.Choices[0]
	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	content, err := decodeReply(req, choice.Message.Content, stop)
	if err != nil {
		return nil, err
	}
	model := resp.Model
	if model == "" {
		model = chat.Model
	}
	return &Response{
		Content:    content,
		Usage:      usage(resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
		Model:      model,
		StopReason: stop,
	}, nil
}

func (p *OpenAIProvider) ModelID() string { return p.models.standard }

// withSchemaPrompt appends the JSON Schema to the system prompt.
func withSchemaPrompt(system string, schema *Schema) string {
	def, err := json.MarshalIndent(schema.Definition, "", "  ")
	if err != nil {
		return system
	}
	var b strings.Builder
	if system != "" {
		b.WriteString(system)
		b.WriteString("\n\n")
	}
	b.WriteString("Reply with one JSON object and nothing else.\n")
	if schema.Description != "" {
		b.WriteString(schema.Description)
		b.WriteString("\n")
	}
	b.WriteString("The object must validate against this JSON Schema:\n")
	b.Write(def)
	return b.String()
}

func chatMessages(system string, msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs)+1)
	if system != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	for _, m := range msgs {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func chatError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, nil, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, nil, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ErrProviderUnavailable{Err: err}
}
