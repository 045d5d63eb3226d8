package study

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/adaptiq/internal/llm"
)

// Service generates study aids. A nil provider makes every call return
// its fallback.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	pending string
	ready   bool
}

// NewService creates a study aid service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether an LLM provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// Material generates study aids for content, or FallbackMaterial on failure.
func (s *Service) Material(ctx context.Context, content string) *Material {
	if !s.Enabled() || strings.TrimSpace(content) == "" {
		return FallbackMaterial()
	}

	var out Material
	err := s.generate(ctx, llm.PurposeStudy, llm.Request{
		System:   materialSystemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: buildMaterialMessage(truncate(content, s.cfg.MaxContentChars))}},
		Schema:   MaterialSchema,
		Timeout:  s.cfg.MaterialTimeout,
	}, &out)
	if err != nil {
		slog.Warn("study material generation failed", "error", err)
		return FallbackMaterial()
	}
	if out.Flashcards == nil {
		out.Flashcards = []Flashcard{}
	}
	if out.KeyConcepts == nil {
		out.KeyConcepts = []string{}
	}
	return &out
}

// Insight returns feedback on the questions a learner got wrong.
func (s *Service) Insight(ctx context.Context, topic string, mistakes []string) string {
	if len(mistakes) == 0 {
		return fmt.Sprintf("Great job on %s! Keep exploring related concepts.", topic)
	}
	if !s.Enabled() {
		return reviewFallback(topic)
	}
	if max := s.cfg.MaxInsightMistakes; max > 0 && len(mistakes) > max {
		mistakes = mistakes[:max]
	}

	var out struct {
		Feedback string `json:"feedback"`
	}
	err := s.generate(ctx, llm.PurposeInsight, llm.Request{
		System:   insightSystemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: buildInsightMessage(topic, mistakes)}},
		Schema:   InsightSchema,
		Tier:     llm.TierFast,
		Timeout:  s.cfg.InsightTimeout,
	}, &out)
	if err != nil || strings.TrimSpace(out.Feedback) == "" {
		if err != nil {
			slog.Warn("insight generation failed", "error", err)
		}
		return reviewFallback(topic)
	}
	return strings.TrimSpace(out.Feedback)
}

func reviewFallback(topic string) string {
	return fmt.Sprintf("Review the key concepts of %s and try again!", topic)
}

// RequestInsight starts async insight generation. Only one insight is
// in-flight at a time; new requests replace pending ones.
func (s *Service) RequestInsight(ctx context.Context, topic string, mistakes []string) {
	s.mu.Lock()
	s.ready = false
	s.pending = ""
	s.mu.Unlock()

	go func() {
		text := s.Insight(ctx, topic, mistakes)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending = text
		s.ready = true
	}()
}

// ConsumeInsight returns the pending insight if one is ready.
// After consumption, the pending slot is cleared.
func (s *Service) ConsumeInsight() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return "", false
	}
	text := s.pending
	s.pending = ""
	s.ready = false
	return text, true
}

// DetectTopic labels content with a short topic, or DefaultTopic.
func (s *Service) DetectTopic(ctx context.Context, content string) string {
	if !s.Enabled() || strings.TrimSpace(content) == "" {
		return DefaultTopic
	}

	var out struct {
		Topic string `json:"topic"`
	}
	err := s.generate(ctx, llm.PurposeTopic, llm.Request{
		System:   topicSystemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: buildTopicMessage(truncate(content, s.cfg.MaxTopicChars))}},
		Schema:   TopicSchema,
		Tier:     llm.TierFast,
		Timeout:  s.cfg.TopicTimeout,
	}, &out)
	if err != nil {
		slog.Warn("topic detection failed", "error", err)
		return DefaultTopic
	}
	topic := strings.TrimSpace(strings.ReplaceAll(out.Topic, `"`, ""))
	if topic == "" {
		return DefaultTopic
	}
	return topic
}

// FallbackFunFact is shown when no fact can be generated.
const FallbackFunFact = "Learning is a superpower, keep going!"

// FunFact returns a one-sentence science or technology fact for the
// dashboard.
func (s *Service) FunFact(ctx context.Context) string {
	if !s.Enabled() {
		return FallbackFunFact
	}
	var out struct {
		Fact string `json:"fact"`
	}
	err := s.generate(ctx, llm.PurposeFunFact, llm.Request{
		System:   funFactSystemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: funFactMessage}},
		Schema:   FunFactSchema,
		Tier:     llm.TierFast,
		Timeout:  s.cfg.FunFactTimeout,
	}, &out)
	fact := strings.TrimSpace(out.Fact)
	if err != nil || fact == "" {
		if err != nil {
			slog.Debug("fun fact generation failed", "error", err)
		}
		return FallbackFunFact
	}
	return fact
}

func (s *Service) generate(ctx context.Context, purpose string, req llm.Request, out any) error {
	ctx = llm.WithPurpose(ctx, purpose)
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("%s generation: %w", purpose, err)
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("parse %s response: %w", purpose, err)
	}
	return nil
}
