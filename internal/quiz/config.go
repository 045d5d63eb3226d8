package quiz

// Config holds quiz sizing and history limits.
type Config struct {
	DefaultQuestions int `koanf:"default_questions" validate:"gte=1"`
	MaxQuestions     int `koanf:"max_questions" validate:"gtefield=DefaultQuestions"`
	HistoryLimit     int `koanf:"history_limit" validate:"gte=1"`
	RecentWindow     int `koanf:"recent_window" validate:"gte=1"`

	// ChunkSentences is the number of sentences stored per content chunk.
	ChunkSentences int `koanf:"chunk_sentences" validate:"gte=1"`
}

// DefaultConfig returns the standard quiz limits.
func DefaultConfig() Config {
	return Config{
		DefaultQuestions: 10,
		MaxQuestions:     50,
		HistoryLimit:     50,
		RecentWindow:     5,
		ChunkSentences:   5,
	}
}
