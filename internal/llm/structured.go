package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// decodeReply turns a provider's reply text into Response content. Models
// in prompt-only JSON mode often wrap the object in a markdown fence, so
// that is stripped first. A truncated reply that fails validation reports
// ErrMaxTokensExceeded instead of ErrInvalidResponse.
func decodeReply(req Request, text, stop string) (json.RawMessage, error) {
	if req.Schema == nil {
		quoted, err := json.Marshal(text)
		if err != nil {
			return nil, &ErrInvalidResponse{Err: err}
		}
		return quoted, nil
	}

	content := json.RawMessage(stripFences(text))
	if err := validateResponse(req.Schema, content); err != nil {
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		return nil, err
	}
	return content, nil
}

// stripFences removes a surrounding ``` or ```json fence and any prose
// before the first brace.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if i := strings.IndexAny(s, "{["); i > 0 {
		s = s[i:]
	}
	return s
}

// requestContext applies req.Timeout on top of ctx.
func requestContext(ctx context.Context, req Request) (context.Context, context.CancelFunc) {
	if req.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, req.Timeout)
}

// models holds a provider's model per tier.
type models struct {
	standard string
	fast     string
}

func (m models) forTier(t Tier) string {
	if t == TierFast && m.fast != "" {
		return m.fast
	}
	return m.standard
}

// resolveModels maps friendly aliases to provider model IDs. Unknown names
// pass through unchanged.
func resolveModels(pc ProviderConfig, aliases map[string]string) models {
	resolve := func(name string) string {
		if id, ok := aliases[name]; ok {
			return id
		}
		return name
	}
	return models{standard: resolve(pc.Model), fast: resolve(pc.FastModel)}
}
