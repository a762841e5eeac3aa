package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryProvider wraps another Provider with exponential backoff on
// transient failures.
type retryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry decorates p with retry behavior. Rate limits and provider
// outages back off and retry; a schema-invalid response is retried once;
// context cancellation and token exhaustion are returned as-is.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{inner: p, cfg: cfg}
}

func (r *retryProvider) ModelID() string { return r.inner.ModelID() }

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	retriedInvalid := false

	for attempt := range r.cfg.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &retriedInvalid) || attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(attempt, err)):
		}
	}

	return nil, lastErr
}

func retryable(err error, retriedInvalid *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Hitting the token ceiling repeats deterministically.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	// One fresh sample is worth trying when the output fails the schema.
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *retriedInvalid {
			return false
		}
		*retriedInvalid = true
		return true
	}

	return true
}

func (r *retryProvider) wait(attempt int, err error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	base := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	base = min(base, float64(r.cfg.MaxWait))

	// 20% jitter either way.
	base += base * 0.2 * (2*rand.Float64() - 1)
	if base < 0 {
		base = 0
	}
	return time.Duration(base)
}
