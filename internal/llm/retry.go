package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with jittered exponential
// backoff.
type RetryProvider struct {
	inner   Provider
	cfg     RetryConfig
	timeout time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p so rate limits, outages and one bad reply are retried.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return newRetry(p, cfg, 0)
}

// newRetry is WithRetry with an overall deadline across attempts.
func newRetry(p Provider, cfg RetryConfig, timeout time.Duration) *RetryProvider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, cfg: cfg, timeout: timeout, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var err error
	retriedInvalid := false
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err, &retriedInvalid) || attempt == r.cfg.MaxAttempts-1 {
			return nil, err
		}
		if serr := r.sleep(ctx, r.wait(attempt, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// retryable reports whether err is worth another attempt. A schema
// mismatch is retried once; a rejected request, a truncated reply or a
// cancelled context never are.
func retryable(err error, retriedInvalid *bool) bool {
	var (
		rejected  *ErrRejected
		truncated *ErrMaxTokensExceeded
		invalid   *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ErrDisabled):
		return false
	case errors.As(err, &rejected), errors.As(err, &truncated):
		return false
	case errors.As(err, &invalid):
		if *retriedInvalid {
			return false
		}
		*retriedInvalid = true
		return true
	}
	return true
}

// wait is the delay before the attempt after the given one. A RetryAfter
// hint from the provider wins, capped at MaxWait.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return r.capped(rl.RetryAfter)
	}

	d := float64(r.cfg.InitialWait)
	for range attempt {
		d *= r.cfg.Multiplier
	}
	d = float64(r.capped(time.Duration(d)))
	// 20% jitter either way.
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

func (r *RetryProvider) capped(d time.Duration) time.Duration {
	if r.cfg.MaxWait > 0 && d > r.cfg.MaxWait {
		return r.cfg.MaxWait
	}
	return max(d, 0)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
