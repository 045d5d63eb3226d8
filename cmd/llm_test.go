package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/store"
)

func event(id int, purpose, model string, ok bool) store.LLMRequestEvent {
	return store.LLMRequestEvent{
		ID:        id,
		Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider: "groq", Model: model, Purpose: purpose,
			InputTokens: 120, OutputTokens: 40, LatencyMs: 850, Success: ok,
		},
	}
}

func TestWriteEventList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeEventList(&buf, []store.LLMRequestEvent{
		event(1, "question-gen", "llama-3.3-70b-versatile", true),
		event(2, "insight", "llama-3.1-8b-instant", false),
	}))

	out := buf.String()
	assert.Contains(t, out, "PURPOSE")
	assert.Contains(t, out, "question-gen")
	assert.Contains(t, out, "llama-3.1-8b-instant")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")

	buf.Reset()
	require.NoError(t, writeEventList(&buf, nil))
	assert.Equal(t, "No LLM events found.\n", buf.String())
}

func TestFailedFilter(t *testing.T) {
	events := []store.LLMRequestEvent{
		event(1, "study", "m", true),
		event(2, "study", "m", false),
		event(3, "topic", "m", false),
	}
	got := failed(events)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.True(t, events[0].Success, "input left untouched")
}

func TestWriteEventDetail(t *testing.T) {
	e := event(7, "study", "gpt-4o-mini", false)
	e.ErrorMessage = "LLM rate limited"
	e.RequestBody = "[user]\nexplain photosynthesis"

	var buf bytes.Buffer
	require.NoError(t, writeEventDetail(&buf, &e))

	out := buf.String()
	assert.Contains(t, out, "Purpose:")
	assert.Contains(t, out, "120 in / 40 out")
	assert.Contains(t, out, "LLM rate limited")
	assert.Contains(t, out, "── REQUEST ")
	assert.Contains(t, out, "explain photosynthesis")
	assert.Contains(t, out, "(not captured)")
}

func TestWriteUsage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeUsage(&buf,
		[]store.PurposeUsage{
			{Purpose: "question-gen", Calls: 3, InputTokens: 10000, OutputTokens: 5000, AvgLatencyMs: 900},
			{Purpose: "insight", Calls: 2, InputTokens: 400, OutputTokens: 100, AvgLatencyMs: 300},
		},
		[]store.ModelUsage{
			{Model: "gpt-4o-mini", Calls: 3, InputTokens: 10000, OutputTokens: 5000},
			{Model: "home-grown-7b", Calls: 2, InputTokens: 400, OutputTokens: 100},
		}))

	out := buf.String()
	assert.Contains(t, out, "15500", "grand total of tokens")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "$0.0045")
	assert.Contains(t, out, "Pricing unavailable for: home-grown-7b")

	buf.Reset()
	require.NoError(t, writeUsage(&buf, nil, nil))
	assert.Equal(t, "No LLM usage recorded yet.\n", buf.String())
}

func TestRule(t *testing.T) {
	assert.Equal(t, "── AB ─────", rule("AB", 11))
	assert.Equal(t, "── LONG TITLE ", rule("LONG TITLE", 4))
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.25", formatCost(1.25))
}
