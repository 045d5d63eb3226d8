// Package study produces LLM study aids for uploaded content: notes,
// flashcards, post-quiz feedback and topic labels. Every call has a fixed
// fallback so callers work without a configured provider.
package study

// Flashcard is a term and its definition.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Material is the set of study aids generated for a piece of content.
type Material struct {
	ShorthandNotes []string    `json:"shorthand_notes"`
	ELI10          string      `json:"eli10"`
	MnemonicStory  string      `json:"mnemonic_story"`
	Flashcards     []Flashcard `json:"flashcards"`
	KeyConcepts    []string    `json:"key_concepts"`
}

// FallbackMaterial is returned when no provider is available or the call fails.
func FallbackMaterial() *Material {
	return &Material{
		ShorthandNotes: []string{"AI study material unavailable."},
		ELI10:          "Content analysis requires an AI key.",
		MnemonicStory:  "",
		Flashcards:     []Flashcard{},
		KeyConcepts:    []string{},
	}
}

// DefaultTopic is used when a topic cannot be detected.
const DefaultTopic = "General Study"
