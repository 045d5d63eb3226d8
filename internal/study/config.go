package study

import "time"

// Config holds study aid generation settings.
type Config struct {
	MaxTokens          int     `koanf:"max_tokens" validate:"gte=64"`
	Temperature        float64 `koanf:"temperature" validate:"gte=0,lte=1"`
	MaxContentChars    int     `koanf:"max_content_chars" validate:"gt=0"`
	MaxTopicChars      int     `koanf:"max_topic_chars" validate:"gt=0"`
	MaxInsightMistakes int     `koanf:"max_insight_mistakes" validate:"gt=0"`

	// Per-call deadlines. Insight, topic and fun fact calls run on the
	// provider's fast model.
	MaterialTimeout time.Duration `koanf:"material_timeout"`
	InsightTimeout  time.Duration `koanf:"insight_timeout"`
	TopicTimeout    time.Duration `koanf:"topic_timeout"`
	FunFactTimeout  time.Duration `koanf:"fun_fact_timeout"`
}

// DefaultConfig returns sensible defaults for study aid generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:          1024,
		Temperature:        0.5,
		MaxContentChars:    3500,
		MaxTopicChars:      1000,
		MaxInsightMistakes: 5,
		MaterialTimeout:    35 * time.Second,
		InsightTimeout:     15 * time.Second,
		TopicTimeout:       10 * time.Second,
		FunFactTimeout:     10 * time.Second,
	}
}
