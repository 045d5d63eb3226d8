package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects a provider and carries settings for all of them, so
// switching providers is a one-key change.
type Config struct {
	// Provider is one of the registered backends, "mock" or "none".
	Provider string `koanf:"provider"`

	Groq       ProviderConfig `koanf:"groq"`
	Anthropic  ProviderConfig `koanf:"anthropic"`
	OpenAI     ProviderConfig `koanf:"openai"`
	Gemini     ProviderConfig `koanf:"gemini"`
	OpenRouter ProviderConfig `koanf:"openrouter"`

	Retry RetryConfig `koanf:"retry"`

	// Timeout bounds a whole Generate call including retries.
	Timeout time.Duration `koanf:"timeout"`
}

// ProviderConfig holds one backend's credentials and models.
type ProviderConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
	// FastModel serves TierFast requests. Empty falls back to Model.
	FastModel string `koanf:"fast_model"`
	// BaseURL overrides the API endpoint.
	BaseURL string `koanf:"base_url"`
}

// RetryConfig controls backoff between attempts.
type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts"`
	InitialWait time.Duration `koanf:"initial_wait"`
	MaxWait     time.Duration `koanf:"max_wait"`
	Multiplier  float64       `koanf:"multiplier"`
}

const (
	ProviderMock = "mock"
	ProviderNone = "none"
)

// DefaultConfig selects Groq with the registered model defaults.
func DefaultConfig() Config {
	cfg := Config{
		Provider: "groq",
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
	for name, b := range backends {
		*cfg.settings(name) = b.defaults
	}
	return cfg
}

// settings returns the block for a registered backend, or nil.
func (c *Config) settings(name string) *ProviderConfig {
	switch name {
	case "groq":
		return &c.Groq
	case "anthropic":
		return &c.Anthropic
	case "openai":
		return &c.OpenAI
	case "gemini":
		return &c.Gemini
	case "openrouter":
		return &c.OpenRouter
	}
	return nil
}

// Selected returns the settings of the configured provider.
func (c Config) Selected() (ProviderConfig, bool) {
	pc := c.settings(c.Provider)
	if pc == nil {
		return ProviderConfig{}, false
	}
	return *pc, true
}

// Validate reports ErrDisabled for "none", and an error when the selected
// backend is unknown or has no API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderNone, "":
		return ErrDisabled
	}
	pc, ok := c.Selected()
	if !ok {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("the %s provider needs an API key (ADAPTIQ_%s_API_KEY or %s)",
			c.Provider, strings.ToUpper(c.Provider), backends[c.Provider].keyVar)
	}
	if pc.Model == "" {
		return fmt.Errorf("the %s provider needs a model", c.Provider)
	}
	return nil
}

// DiscoverConfig looks for the vendors' own key variables, e.g.
// GROQ_API_KEY, and selects the first backend in discoveryOrder that has
// one.
func DiscoverConfig() (Config, bool) {
	return discover(os.Getenv)
}

func discover(getenv func(string) string) (Config, bool) {
	for _, name := range discoveryOrder {
		key := getenv(backends[name].keyVar)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = name
		cfg.settings(name).APIKey = key
		return cfg, true
	}
	return Config{}, false
}
