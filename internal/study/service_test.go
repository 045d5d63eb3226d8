package study

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMaterialJSON() json.RawMessage {
	return json.RawMessage(`{
		"shorthand_notes": ["Mitochondria = energy", "Ribosomes -> proteins"],
		"eli10": "Cells have tiny parts that each do a job.",
		"mnemonic_story": "Mighty Mito powers the city.",
		"flashcards": [{"front": "Mitochondria", "back": "Powerhouse of the cell"}],
		"key_concepts": ["mitochondria", "ribosomes"]
	}`)
}

func TestMaterial_Generated(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validMaterialJSON()})
	svc := NewService(mock, DefaultConfig())

	m := svc.Material(context.Background(), "The mitochondria is the powerhouse of the cell.")
	require.NotNil(t, m)
	assert.Len(t, m.ShorthandNotes, 2)
	assert.Equal(t, "Mighty Mito powers the city.", m.MnemonicStory)
	require.Len(t, m.Flashcards, 1)
	assert.Equal(t, "Mitochondria", m.Flashcards[0].Front)

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, MaterialSchema, mock.Calls[0].Schema)
}

func TestMaterial_TruncatesContent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validMaterialJSON()})
	cfg := DefaultConfig()
	svc := NewService(mock, cfg)

	svc.Material(context.Background(), strings.Repeat("a", 5000))
	msg := mock.Calls[0].Messages[0].Content
	assert.Contains(t, msg, strings.Repeat("a", cfg.MaxContentChars))
	assert.NotContains(t, msg, strings.Repeat("a", cfg.MaxContentChars+1))
}

func TestMaterial_Fallbacks(t *testing.T) {
	want := FallbackMaterial()

	var noProvider *Service
	assert.Equal(t, want, noProvider.Material(context.Background(), "text"))

	svc := NewService(nil, DefaultConfig())
	assert.Equal(t, want, svc.Material(context.Background(), "text"))

	failing := NewService(llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")}), DefaultConfig())
	assert.Equal(t, want, failing.Material(context.Background(), "text"))

	garbage := NewService(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)}), DefaultConfig())
	assert.Equal(t, want, garbage.Material(context.Background(), "text"))
}

func TestFallbackMaterial(t *testing.T) {
	m := FallbackMaterial()
	assert.Equal(t, []string{"AI study material unavailable."}, m.ShorthandNotes)
	assert.Equal(t, "Content analysis requires an AI key.", m.ELI10)
	assert.Empty(t, m.MnemonicStory)
	assert.NotNil(t, m.Flashcards)
	assert.NotNil(t, m.KeyConcepts)
}

func TestInsight(t *testing.T) {
	ctx := context.Background()

	t.Run("no mistakes", func(t *testing.T) {
		mock := llm.NewMockProvider()
		svc := NewService(mock, DefaultConfig())
		assert.Equal(t, "Great job on Biology! Keep exploring related concepts.", svc.Insight(ctx, "Biology", nil))
		assert.Zero(t, mock.CallCount())
	})

	t.Run("generated", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"feedback":"  Focus on organelles.  "}`)})
		svc := NewService(mock, DefaultConfig())
		got := svc.Insight(ctx, "Biology", []string{"Q1", "Q2", "Q3", "Q4", "Q5", "Q6"})
		assert.Equal(t, "Focus on organelles.", got)

		msg := mock.Calls[0].Messages[0].Content
		assert.Contains(t, msg, "quiz on 'Biology'")
		assert.Contains(t, msg, "- Q5")
		assert.NotContains(t, msg, "- Q6")
	})

	t.Run("provider failure", func(t *testing.T) {
		svc := NewService(llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")}), DefaultConfig())
		assert.Equal(t, "Review the key concepts of Biology and try again!", svc.Insight(ctx, "Biology", []string{"Q1"}))
	})

	t.Run("no provider", func(t *testing.T) {
		var svc *Service
		assert.Equal(t, "Review the key concepts of Biology and try again!", svc.Insight(ctx, "Biology", []string{"Q1"}))
	})

	t.Run("empty feedback", func(t *testing.T) {
		svc := NewService(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"feedback":""}`)}), DefaultConfig())
		assert.Equal(t, "Review the key concepts of Biology and try again!", svc.Insight(ctx, "Biology", []string{"Q1"}))
	})
}

func TestRequestInsight_Async(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"feedback":"Revise photosynthesis."}`)})
	svc := NewService(mock, DefaultConfig())

	_, ok := svc.ConsumeInsight()
	assert.False(t, ok)

	svc.RequestInsight(t.Context(), "Plants", []string{"What do leaves need?"})

	var text string
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if text, ok = svc.ConsumeInsight(); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, ok, "insight never became ready")
	assert.Equal(t, "Revise photosynthesis.", text)

	_, ok = svc.ConsumeInsight()
	assert.False(t, ok, "insight should be consumed once")
}

func TestDetectTopic(t *testing.T) {
	ctx := context.Background()

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"topic":"\"Cell Biology\""}`)})
	assert.Equal(t, "Cell Biology", NewService(mock, DefaultConfig()).DetectTopic(ctx, "Cells..."))

	assert.Equal(t, DefaultTopic, NewService(nil, DefaultConfig()).DetectTopic(ctx, "Cells..."))

	failing := llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")})
	assert.Equal(t, DefaultTopic, NewService(failing, DefaultConfig()).DetectTopic(ctx, "Cells..."))

	blank := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"topic":"  "}`)})
	assert.Equal(t, DefaultTopic, NewService(blank, DefaultConfig()).DetectTopic(ctx, "Cells..."))
}

func TestPurposeLabels(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validMaterialJSON()},
	)
	logged := &purposeRecorder{inner: mock}
	svc := NewService(logged, DefaultConfig())
	svc.Material(context.Background(), "text")
	assert.Equal(t, []string{"study"}, logged.purposes)
}

type purposeRecorder struct {
	inner    llm.Provider
	purposes []string
}

func (p *purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.purposes = append(p.purposes, llm.PurposeFrom(ctx))
	return p.inner.Generate(ctx, req)
}

func (p *purposeRecorder) ModelID() string { return p.inner.ModelID() }

func TestFastTierAndTimeouts(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"feedback":"Revisit osmosis."}`)},
		llm.MockResponse{Content: json.RawMessage(`{"topic":"Biology"}`)},
		llm.MockResponse{Content: validMaterialJSON()},
	)
	cfg := DefaultConfig()
	svc := NewService(mock, cfg)
	ctx := context.Background()

	svc.Insight(ctx, "Biology", []string{"What is osmosis?"})
	svc.DetectTopic(ctx, "Cells take in water by osmosis.")
	svc.Material(ctx, "Cells take in water by osmosis.")

	require.Len(t, mock.Calls, 3)
	assert.Equal(t, llm.TierFast, mock.Calls[0].Tier)
	assert.Equal(t, cfg.InsightTimeout, mock.Calls[0].Timeout)
	assert.Equal(t, llm.TierFast, mock.Calls[1].Tier)
	assert.Equal(t, cfg.TopicTimeout, mock.Calls[1].Timeout)
	assert.Equal(t, llm.TierStandard, mock.Calls[2].Tier)
	assert.Equal(t, cfg.MaterialTimeout, mock.Calls[2].Timeout)
}

func TestFunFact(t *testing.T) {
	ctx := context.Background()

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"fact":" Honey never spoils. "}`)})
	logged := &purposeRecorder{inner: mock}
	assert.Equal(t, "Honey never spoils.", NewService(logged, DefaultConfig()).FunFact(ctx))
	assert.Equal(t, []string{llm.PurposeFunFact}, logged.purposes)
	assert.Equal(t, llm.TierFast, mock.Calls[0].Tier)

	assert.Equal(t, FallbackFunFact, NewService(nil, DefaultConfig()).FunFact(ctx))

	var nilSvc *Service
	assert.Equal(t, FallbackFunFact, nilSvc.FunFact(ctx))

	failing := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	assert.Equal(t, FallbackFunFact, NewService(failing, DefaultConfig()).FunFact(ctx))

	blank := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"fact":""}`)})
	assert.Equal(t, FallbackFunFact, NewService(blank, DefaultConfig()).FunFact(ctx))
}
