package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/payflow/resilience/internal/core/errs"
	"github.com/payflow/resilience/internal/observability/metrics"
	"github.com/payflow/resilience/internal/resilience/breaker"
	"github.com/payflow/resilience/internal/resilience/retry"
)

// Runner drives probes through the full resilience pipeline: the handler's
// execution wrapper normalizes outcomes, the circuit breaker accounts for
// failures, and the retry executor re-attempts per catalog policy.
type Runner struct {
	handler  *errs.Handler
	breakers *breaker.Registry
	log      *slog.Logger
}

// NewRunner creates a probe runner.
func NewRunner(handler *errs.Handler, breakers *breaker.Registry) *Runner {
	return &Runner{
		handler:  handler,
		breakers: breakers,
		log:      slog.Default(),
	}
}

// Check probes one dependency once, with retries and breaker accounting.
// It returns the classified failure, or nil when the dependency is healthy.
func (r *Runner) Check(ctx context.Context, p Prober) *errs.Record {
	start := time.Now()

	_, rec := retry.Do(ctx, func(ctx context.Context) (struct{}, *errs.Record) {
		return breaker.Call(ctx, r.breakers, p.Name(), func(ctx context.Context) (struct{}, *errs.Record) {
			return errs.Execute(ctx, r.handler, map[string]any{
				"source":     "probe",
				"dependency": p.Name(),
			}, func(ctx context.Context) (struct{}, error) {
				return struct{}{}, p.Probe(ctx)
			})
		})
	})

	metrics.ProbeDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())

	if rec != nil {
		metrics.ProbeFailures.WithLabelValues(p.Name(), string(rec.Reason())).Inc()
		r.log.Warn("Dependency probe failed",
			"dependency", p.Name(),
			"reason", string(rec.Reason()),
			"category", string(rec.Category()),
			"correlation_id", rec.CorrelationID(),
		)
		return rec
	}

	r.log.Debug("Dependency probe succeeded", "dependency", p.Name())
	return nil
}

// Loop probes a dependency on a fixed interval until ctx is cancelled.
func (r *Runner) Loop(ctx context.Context, p Prober, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Check(ctx, p)
		}
	}
}
