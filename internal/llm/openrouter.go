package llm

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider targets OpenRouter. Model IDs are vendor-qualified,
// e.g. "meta-llama/llama-3.3-70b-instruct", and pass through unchanged.
func NewOpenRouterProvider(pc ProviderConfig) (*OpenAIProvider, error) {
	if pc.BaseURL == "" {
		pc.BaseURL = defaultOpenRouterBaseURL
	}
	return newChatProvider("openrouter", pc, nil, jsonSchemaMode)
}
