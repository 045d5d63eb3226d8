package llm

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatReply(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"model":   "served-model",
		"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": finish}},
		"usage":   map[string]any{"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20},
	}
}

func chatFailure(msg string) map[string]any {
	return map[string]any{"error": map[string]any{"message": msg, "type": "invalid_request_error"}}
}

func systemPrompt(t *testing.T, body map[string]any) string {
	t.Helper()
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, msgs)
	first := msgs[0].(map[string]any)
	require.Equal(t, "system", first["role"])
	return first["content"].(string)
}

func TestOpenAIStrictSchema(t *testing.T) {
	c := &capture{}
	srv := c.serve(t, http.StatusOK, nil, chatReply(validQuestion, "stop"))
	p, err := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	req := userRequest("Write a question.")
	req.System = "You write quiz questions."
	req.Schema = testSchema()
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.JSONEq(t, validQuestion, string(resp.Content))
	assert.Equal(t, "served-model", resp.Model)
	assert.Equal(t, 20, resp.Usage.TotalTokens)
	assert.Equal(t, "/v1/chat/completions", c.paths[0])

	body := c.last(t)
	assert.Equal(t, "gpt-4o-mini", body["model"])
	format := body["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	js := format["json_schema"].(map[string]any)
	assert.Equal(t, "test-question", js["name"])
	assert.Equal(t, true, js["strict"])
	assert.Equal(t, "You write quiz questions.", systemPrompt(t, body))
}

func TestGroqPutsSchemaInPrompt(t *testing.T) {
	c := &capture{}
	srv := c.serve(t, http.StatusOK, nil, chatReply("```json\n"+validQuestion+"\n```", "stop"))
	p, err := NewGroqProvider(ProviderConfig{APIKey: "k", Model: "llama-70b", FastModel: "llama-8b", BaseURL: srv.URL + "/openai/v1"})
	require.NoError(t, err)

	req := userRequest("Write a question.")
	req.System = "You write quiz questions."
	req.Schema = testSchema()
	req.Tier = TierFast
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, validQuestion, string(resp.Content))

	body := c.last(t)
	assert.Equal(t, "llama-3.1-8b-instant", body["model"])
	assert.Equal(t, "json_object", body["response_format"].(map[string]any)["type"])

	system := systemPrompt(t, body)
	assert.True(t, strings.HasPrefix(system, "You write quiz questions."))
	assert.Contains(t, system, "JSON Schema")
	assert.Contains(t, system, "question_text")
	assert.Equal(t, "llama-3.3-70b-versatile", p.ModelID())
}

func TestOpenRouterPassesModelThrough(t *testing.T) {
	c := &capture{}
	srv := c.serve(t, http.StatusOK, nil, chatReply(validQuestion, "stop"))
	p, err := NewOpenRouterProvider(ProviderConfig{APIKey: "k", Model: "meta-llama/llama-3.3-70b-instruct", BaseURL: srv.URL})
	require.NoError(t, err)

	req := userRequest("Write a question.")
	req.Schema = testSchema()
	req.Tier = TierFast
	_, err = p.Generate(context.Background(), req)
	require.NoError(t, err)

	body := c.last(t)
	assert.Equal(t, "meta-llama/llama-3.3-70b-instruct", body["model"])
	assert.Equal(t, "json_schema", body["response_format"].(map[string]any)["type"])
}

func TestOpenAIWithoutSchemaQuotesText(t *testing.T) {
	c := &capture{}
	srv := c.serve(t, http.StatusOK, nil, chatReply("Octopuses have three hearts.", "stop"))
	p, err := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), userRequest("Tell me a fact."))
	require.NoError(t, err)
	assert.Equal(t, `"Octopuses have three hearts."`, string(resp.Content))
	assert.Nil(t, c.last(t)["response_format"])
}

func TestOpenAIReplyFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  any
		check  func(t *testing.T, err error)
	}{
		{
			name:   "schema mismatch",
			status: http.StatusOK,
			reply:  chatReply(`{"question_text":"no answer"}`, "stop"),
			check: func(t *testing.T, err error) {
				var invalid *ErrInvalidResponse
				require.ErrorAs(t, err, &invalid)
			},
		},
		{
			name:   "truncated",
			status: http.StatusOK,
			reply:  chatReply(`{"question_text":"cut`, "length"),
			check: func(t *testing.T, err error) {
				var truncated *ErrMaxTokensExceeded
				require.ErrorAs(t, err, &truncated)
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			reply:  map[string]any{"id": "x", "choices": []any{}},
			check: func(t *testing.T, err error) {
				var invalid *ErrInvalidResponse
				require.ErrorAs(t, err, &invalid)
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			reply:  chatFailure("slow down"),
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				require.ErrorAs(t, err, &rl)
			},
		},
		{
			name:   "unknown model",
			status: http.StatusNotFound,
			reply:  chatFailure("model not found"),
			check: func(t *testing.T, err error) {
				var rejected *ErrRejected
				require.ErrorAs(t, err, &rejected)
				assert.Equal(t, http.StatusNotFound, rejected.StatusCode)
			},
		},
		{
			name:   "outage",
			status: http.StatusServiceUnavailable,
			reply:  chatFailure("overloaded"),
			check: func(t *testing.T, err error) {
				var unavailable *ErrProviderUnavailable
				require.ErrorAs(t, err, &unavailable)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &capture{}
			srv := c.serve(t, tt.status, nil, tt.reply)
			p, err := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL})
			require.NoError(t, err)

			req := userRequest("Write a question.")
			req.Schema = testSchema()
			_, err = p.Generate(context.Background(), req)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestChatProviderNeedsKey(t *testing.T) {
	_, err := NewGroqProvider(ProviderConfig{Model: "llama-70b"})
	assert.ErrorContains(t, err, "groq API key is required")
}
