package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// retryForTest records requested sleeps instead of sleeping.
func retryForTest(inner Provider, cfg RetryConfig) (*RetryProvider, *[]time.Duration) {
	r := newRetry(inner, cfg, 0)
	var waits []time.Duration
	r.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return r, &waits
}

func testRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Second, MaxWait: 4 * time.Second, Multiplier: 2}
}

var okReply = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func TestRetryRecoversFromOutage(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection reset")}},
		MockResponse{Err: &ErrRateLimit{}},
		okReply,
	)
	r, waits := retryForTest(mock, testRetryConfig())

	resp, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 3, mock.CallCount())

	require.Len(t, *waits, 2)
	assert.InDelta(t, float64(time.Second), float64((*waits)[0]), float64(200*time.Millisecond))
	assert.InDelta(t, float64(2*time.Second), float64((*waits)[1]), float64(400*time.Millisecond))
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider()
	r, waits := retryForTest(mock, testRetryConfig())

	_, err := r.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 3, mock.CallCount())
	assert.Len(t, *waits, 2)
}

func TestRetryInvalidResponseOnce(t *testing.T) {
	bad := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("missing field")}}
	mock := NewMockProvider(bad, bad, okReply)
	r, _ := retryForTest(mock, RetryConfig{MaxAttempts: 5, InitialWait: time.Millisecond, Multiplier: 1})

	_, err := r.Generate(context.Background(), Request{})
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetryStopsOnPermanentErrors(t *testing.T) {
	for name, perm := range map[string]error{
		"rejected":  &ErrRejected{StatusCode: 401, Err: errors.New("bad key")},
		"truncated": &ErrMaxTokensExceeded{},
		"canceled":  context.Canceled,
		"deadline":  context.DeadlineExceeded,
		"disabled":  ErrDisabled,
	} {
		t.Run(name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: perm}, okReply)
			r, waits := retryForTest(mock, testRetryConfig())

			_, err := r.Generate(context.Background(), Request{})
			assert.ErrorIs(t, err, perm)
			assert.Equal(t, 1, mock.CallCount())
			assert.Empty(t, *waits)
		})
	}
}

func TestRetryHonorsRetryAfterUpToMaxWait(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 3 * time.Second}},
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Minute}},
		okReply,
	)
	r, waits := retryForTest(mock, testRetryConfig())

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{3 * time.Second, 4 * time.Second}, *waits)
}

func TestRetryBackoffIsCapped(t *testing.T) {
	r := newRetry(NewMockProvider(), RetryConfig{MaxAttempts: 10, InitialWait: time.Second, MaxWait: 5 * time.Second, Multiplier: 3}, 0)
	for attempt := range 8 {
		d := r.wait(attempt, errors.New("boom"))
		assert.LessOrEqual(t, d, 6*time.Second)
		assert.GreaterOrEqual(t, d, 0*time.Second)
	}
}

func TestRetryCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, okReply)
	r := newRetry(mock, testRetryConfig(), 0)
	r.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := r.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryOverallTimeout(t *testing.T) {
	r := newRetry(deadlineProvider{}, testRetryConfig(), 20*time.Millisecond)
	_, err := r.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// deadlineProvider blocks until the context ends.
type deadlineProvider struct{}

func (deadlineProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (deadlineProvider) ModelID() string { return "slow" }

func TestRetryAtLeastOneAttempt(t *testing.T) {
	mock := NewMockProvider(okReply)
	r := WithRetry(mock, RetryConfig{})
	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", r.ModelID())
}
