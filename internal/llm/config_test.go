package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigFillsEveryBackend(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "groq", cfg.Provider)
	for name := range backends {
		pc := cfg.settings(name)
		require.NotNil(t, pc, name)
		assert.NotEmpty(t, pc.Model, name)
	}
	assert.Equal(t, "llama-8b", cfg.Groq.FastModel)
	assert.Equal(t, defaultGroqBaseURL, cfg.Groq.BaseURL)
	assert.Empty(t, cfg.OpenRouter.FastModel)
	assert.Len(t, discoveryOrder, len(backends))
}

func TestConfigValidate(t *testing.T) {
	withKey := func(provider string) Config {
		cfg := DefaultConfig()
		cfg.Provider = provider
		if pc := cfg.settings(provider); pc != nil {
			pc.APIKey = "key"
		}
		return cfg
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"groq with key", withKey("groq"), ""},
		{"anthropic with key", withKey("anthropic"), ""},
		{"gemini with key", withKey("gemini"), ""},
		{"mock", Config{Provider: ProviderMock}, ""},
		{"missing key", Config{Provider: "openai", OpenAI: ProviderConfig{Model: "gpt-4o"}}, "ADAPTIQ_OPENAI_API_KEY or OPENAI_API_KEY"},
		{"missing model", Config{Provider: "openai", OpenAI: ProviderConfig{APIKey: "k"}}, "needs a model"},
		{"unknown", Config{Provider: "llamafile"}, `unknown LLM provider "llamafile"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	assert.ErrorIs(t, Config{Provider: ProviderNone}.Validate(), ErrDisabled)
	assert.ErrorIs(t, Config{}.Validate(), ErrDisabled)
}

func TestDiscoverPrefersGroq(t *testing.T) {
	env := map[string]string{"OPENAI_API_KEY": "sk-1", "GROQ_API_KEY": "gsk-1"}
	cfg, ok := discover(func(k string) string { return env[k] })
	require.True(t, ok)
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "gsk-1", cfg.Groq.APIKey)
	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestDiscoverFallsThroughOrder(t *testing.T) {
	env := map[string]string{"ANTHROPIC_API_KEY": "ak", "OPENROUTER_API_KEY": "ok"}
	cfg, ok := discover(func(k string) string { return env[k] })
	require.True(t, ok)
	assert.Equal(t, "anthropic", cfg.Provider)

	_, ok = discover(func(string) string { return "" })
	assert.False(t, ok)
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(ctx, Config{Provider: ProviderNone}, nil)
	assert.ErrorIs(t, err, ErrDisabled)

	p, err := NewProvider(ctx, Config{Provider: ProviderMock}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MockProvider{}, p)

	cfg := DefaultConfig()
	cfg.Groq.APIKey = "gsk"
	p, err = NewProvider(ctx, cfg, &recordingRepo{})
	require.NoError(t, err)
	retry, ok := p.(*RetryProvider)
	require.True(t, ok)
	assert.Equal(t, cfg.Timeout, retry.timeout)
	assert.IsType(t, &LoggingProvider{}, retry.inner)
	assert.Equal(t, "llama-3.3-70b-versatile", p.ModelID())

	p, err = NewProvider(ctx, cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, p.(*RetryProvider).inner)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "standard", TierStandard.String())
	assert.Equal(t, "fast", TierFast.String())
}
