package llm

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct{ in, want string }{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"Here you go:\n{\"a\":1}", `{"a":1}`},
		{"  [1,2]  ", `[1,2]`},
		{"no json at all", "no json at all"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripFences(tt.in), tt.in)
	}
}

func TestDecodeReply(t *testing.T) {
	req := Request{Schema: testSchema()}

	got, err := decodeReply(req, "```json\n"+validQuestion+"\n```", StopEnd)
	require.NoError(t, err)
	assert.JSONEq(t, validQuestion, string(got))

	_, err = decodeReply(req, `{"question_text":"Q"}`, StopEnd)
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)

	_, err = decodeReply(req, `{"question_text":"Q"`, StopMaxTokens)
	var truncated *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, `{"question_text":"Q"`, string(truncated.Content))

	got, err = decodeReply(Request{}, `say "hi"`, StopEnd)
	require.NoError(t, err)
	assert.Equal(t, `"say \"hi\""`, string(got))
}

func TestRequestContext(t *testing.T) {
	ctx, cancel := requestContext(context.Background(), Request{})
	defer cancel()
	_, ok := ctx.Deadline()
	assert.False(t, ok)

	ctx, cancel = requestContext(context.Background(), Request{Timeout: time.Minute})
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, time.Second)
}

func TestClassifyStatus(t *testing.T) {
	var rl *ErrRateLimit
	require.ErrorAs(t, classifyStatus(http.StatusTooManyRequests, http.Header{"Retry-After": {"12"}}, nil), &rl)
	assert.Equal(t, 12*time.Second, rl.RetryAfter)

	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, classifyStatus(http.StatusBadGateway, nil, nil), &unavailable)
	assert.ErrorAs(t, classifyStatus(http.StatusRequestTimeout, nil, nil), &unavailable)
	assert.ErrorAs(t, classifyStatus(0, nil, nil), &unavailable)

	var rejected *ErrRejected
	require.ErrorAs(t, classifyStatus(http.StatusForbidden, nil, nil), &rejected)
	assert.Equal(t, http.StatusForbidden, rejected.StatusCode)
}

func TestRetryAfterHeader(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(v string) time.Duration { return retryAfter(http.Header{"Retry-After": {v}}, now) }

	assert.Equal(t, 30*time.Second, at("30"))
	assert.Equal(t, 90*time.Second, at(now.Add(90*time.Second).Format(http.TimeFormat)))
	assert.Zero(t, at(now.Add(-time.Minute).Format(http.TimeFormat)))
	assert.Zero(t, at("soon"))
	assert.Zero(t, retryAfter(nil, now))
}
