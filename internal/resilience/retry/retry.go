// Package retry re-invokes failed operations with exponential backoff.
// Whether and how often to retry comes from the error catalog's policy for
// the failure's category; nothing here hard-codes retry counts.
package retry

import (
	"context"
	"math"
	"time"

	"github.com/payflow/resilience/internal/core/errs"
	"github.com/payflow/resilience/internal/observability/metrics"
)

// Policy overrides the catalog-derived retry behavior for one invocation.
type Policy struct {
	MaxRetries int
	BaseSleep  time.Duration
	Multiplier float64
}

// DefaultMultiplier is applied when a policy does not set one. Backoff is
// deterministic: no jitter is added.
const DefaultMultiplier = 2.0

// Do invokes op, retrying on retryable failures per the catalog policy for
// the failure's category. The final attempt's result is returned verbatim;
// non-retryable failures short-circuit after a single invocation. The
// backoff sleep is the only suspension point and aborts early when ctx is
// cancelled.
func Do[T any](ctx context.Context, op func(context.Context) (T, *errs.Record)) (T, *errs.Record) {
	return do(ctx, op, nil)
}

// DoWithPolicy is Do with an explicit policy instead of the catalog's.
func DoWithPolicy[T any](ctx context.Context, op func(context.Context) (T, *errs.Record), policy Policy) (T, *errs.Record) {
	return do(ctx, op, &policy)
}

func do[T any](ctx context.Context, op func(context.Context) (T, *errs.Record), override *Policy) (T, *errs.Record) {
	val, rec := op(ctx)
	if rec == nil || !rec.Retryable() {
		return val, rec
	}

	policy := policyFor(rec, override)
	for attempt := 1; attempt <= policy.MaxRetries; attempt++ {
		delay := Backoff(attempt, policy.BaseSleep, policy.Multiplier)
		select {
		case <-ctx.Done():
			return val, rec
		case <-time.After(delay):
		}

		metrics.RetryAttempts.WithLabelValues(string(rec.Category())).Inc()

		val, rec = op(ctx)
		if rec == nil {
			return val, nil
		}
		if !rec.Retryable() {
			return val, rec
		}
	}

	metrics.RetriesExhausted.WithLabelValues(string(rec.Category())).Inc()
	return val, rec
}

func policyFor(rec *errs.Record, override *Policy) Policy {
	if override != nil {
		p := *override
		if p.Multiplier == 0 {
			p.Multiplier = DefaultMultiplier
		}
		return p
	}

	catalog := errs.PolicyFor(rec.Category())
	return Policy{
		MaxRetries: catalog.MaxRetries,
		BaseSleep:  catalog.BaseDelay,
		Multiplier: DefaultMultiplier,
	}
}

// Backoff computes the delay before retry number attempt (1-based):
// base * multiplier^(attempt-1).
func Backoff(attempt int, base time.Duration, multiplier float64) time.Duration {
	return time.Duration(float64(base) * math.Pow(multiplier, float64(attempt-1)))
}
