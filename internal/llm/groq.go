package llm

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

var groqAliases = map[string]string{
	"llama-70b": "llama-3.3-70b-versatile",
	"llama-8b":  "llama-3.1-8b-instant",
}

// NewGroqProvider targets Groq's OpenAI-compatible endpoint. Not every Groq
// model supports json_schema, so requests use JSON object mode with the
// schema in the prompt.
func NewGroqProvider(pc ProviderConfig) (*OpenAIProvider, error) {
	if pc.BaseURL == "" {
		pc.BaseURL = defaultGroqBaseURL
	}
	return newChatProvider("groq", pc, groqAliases, jsonObjectMode)
}
