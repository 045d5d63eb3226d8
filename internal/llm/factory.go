package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/adaptiq/internal/store"
)

// backend describes one hosted provider.
type backend struct {
	// keyVar is the vendor's conventional API key variable.
	keyVar   string
	defaults ProviderConfig
	open     func(ctx context.Context, pc ProviderConfig) (Provider, error)
}

var backends = map[string]backend{
	"groq": {
		keyVar:   "GROQ_API_KEY",
		defaults: ProviderConfig{Model: "llama-70b", FastModel: "llama-8b", BaseURL: defaultGroqBaseURL},
		open: func(_ context.Context, pc ProviderConfig) (Provider, error) {
			return NewGroqProvider(pc)
		},
	},
	"gemini": {
		keyVar:   "GEMINI_API_KEY",
		defaults: ProviderConfig{Model: "gemini-flash", FastModel: "gemini-flash-lite"},
		open: func(ctx context.Context, pc ProviderConfig) (Provider, error) {
			return NewGeminiProvider(ctx, pc)
		},
	},
	"openai": {
		keyVar:   "OPENAI_API_KEY",
		defaults: ProviderConfig{Model: "gpt-4o-mini", FastModel: "gpt-4o-mini"},
		open: func(_ context.Context, pc ProviderConfig) (Provider, error) {
			return NewOpenAIProvider(pc)
		},
	},
	"anthropic": {
		keyVar:   "ANTHROPIC_API_KEY",
		defaults: ProviderConfig{Model: "claude-sonnet", FastModel: "claude-haiku"},
		open: func(_ context.Context, pc ProviderConfig) (Provider, error) {
			return NewAnthropicProvider(pc)
		},
	},
	"openrouter": {
		keyVar:   "OPENROUTER_API_KEY",
		defaults: ProviderConfig{Model: "meta-llama/llama-3.3-70b-instruct", BaseURL: defaultOpenRouterBaseURL},
		open: func(_ context.Context, pc ProviderConfig) (Provider, error) {
			return NewOpenRouterProvider(pc)
		},
	},
}

// discoveryOrder ranks backends for DiscoverConfig, cheapest first.
var discoveryOrder = []string{"groq", "gemini", "openai", "anthropic", "openrouter"}

// NewProvider builds the configured provider. Requests flow through retry,
// then logging when eventRepo is non-nil, then the backend, so every
// attempt is recorded. The mock provider is returned undecorated.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Provider == ProviderMock {
		return NewMockProvider(), nil
	}

	pc, _ := cfg.Selected()
	p, err := backends[cfg.Provider].open(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo)
	}
	return newRetry(p, cfg.Retry, cfg.Timeout), nil
}
