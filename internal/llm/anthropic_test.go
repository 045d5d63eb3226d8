package llm

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicReply(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-sonnet-4-5-20250929",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 25},
	}
}

func anthropicFailure(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func newAnthropicForTest(t *testing.T, c *capture, status int, header http.Header, reply any) *AnthropicProvider {
	t.Helper()
	srv := c.serve(t, status, header, reply)
	p, err := NewAnthropicProvider(ProviderConfig{
		APIKey:    "test-key",
		Model:     "claude-sonnet",
		FastModel: "claude-haiku",
		BaseURL:   srv.URL,
	})
	require.NoError(t, err)
	return p
}

func TestAnthropicGenerateWithSchema(t *testing.T) {
	c := &capture{}
	p := newAnthropicForTest(t, c, http.StatusOK, nil, anthropicReply(validQuestion, "end_turn"))

	req := userRequest("Write a question about ATP.")
	req.System = "You write quiz questions."
	req.Schema = testSchema()
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.JSONEq(t, validQuestion, string(resp.Content))
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)

	body := c.last(t)
	assert.Equal(t, "claude-sonnet-4-5-20250929", body["model"])
	assert.EqualValues(t, 256, body["max_tokens"])
	assert.NotNil(t, body["output_config"])
	assert.NotNil(t, body["system"])
}

func TestAnthropicFastTierUsesFastModel(t *testing.T) {
	c := &capture{}
	p := newAnthropicForTest(t, c, http.StatusOK, nil, anthropicReply(`{"topic":"Biology"}`, "end_turn"))

	req := userRequest("Name the topic.")
	req.Tier = TierFast
	req.MaxTokens = 0
	_, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	body := c.last(t)
	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.EqualValues(t, anthropicMaxTokens, body["max_tokens"])
	assert.Equal(t, "claude-sonnet-4-5-20250929", p.ModelID())
}

func TestAnthropicTruncatedReply(t *testing.T) {
	c := &capture{}
	p := newAnthropicForTest(t, c, http.StatusOK, nil, anthropicReply(`{"question_text":"What do`, "max_tokens"))

	req := userRequest("Write a question.")
	req.Schema = testSchema()
	_, err := p.Generate(context.Background(), req)

	var truncated *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &truncated)
}

func TestAnthropicErrors(t *testing.T) {
	t.Run("rate limit carries retry-after", func(t *testing.T) {
		c := &capture{}
		p := newAnthropicForTest(t, c, http.StatusTooManyRequests,
			http.Header{"Retry-After": {"7"}}, anthropicFailure("rate_limit_error"))

		_, err := p.Generate(context.Background(), userRequest("hi"))
		var rl *ErrRateLimit
		require.ErrorAs(t, err, &rl)
		assert.Equal(t, 7*time.Second, rl.RetryAfter)
		assert.Equal(t, 1, c.count())
	})

	t.Run("server error is unavailable", func(t *testing.T) {
		c := &capture{}
		p := newAnthropicForTest(t, c, http.StatusInternalServerError, nil, anthropicFailure("api_error"))

		_, err := p.Generate(context.Background(), userRequest("hi"))
		var unavailable *ErrProviderUnavailable
		require.ErrorAs(t, err, &unavailable)
	})

	t.Run("bad key is rejected", func(t *testing.T) {
		c := &capture{}
		p := newAnthropicForTest(t, c, http.StatusUnauthorized, nil, anthropicFailure("authentication_error"))

		_, err := p.Generate(context.Background(), userRequest("hi"))
		var rejected *ErrRejected
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, http.StatusUnauthorized, rejected.StatusCode)
	})
}

func TestNewAnthropicProviderNeedsKey(t *testing.T) {
	_, err := NewAnthropicProvider(ProviderConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}
