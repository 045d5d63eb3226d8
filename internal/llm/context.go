package llm

import "context"

// Purposes label requests in the llm_requests log.
const (
	PurposeQuestionGen = "question-gen"
	PurposeStudy       = "study"
	PurposeInsight     = "insight"
	PurposeTopic       = "topic"
	PurposeFunFact     = "fun-fact"
)

type purposeKey struct{}

// WithPurpose tags ctx with the reason for a request.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
