package probe

import (
	"context"
	"testing"
	"time"

	"github.com/payflow/resilience/internal/core/errs"
	"github.com/payflow/resilience/internal/resilience/breaker"
)

type fakeProbe struct {
	name  string
	calls int
	fail  bool
}

func (f *fakeProbe) Name() string { return f.name }

func (f *fakeProbe) Probe(ctx context.Context) error {
	f.calls++
	if f.fail {
		return classify(f.name, context.DeadlineExceeded)
	}
	return nil
}

func TestRunner_HealthyProbe(t *testing.T) {
	breakers := breaker.NewRegistry()
	breakers.Register("cache", 3, time.Minute)
	r := NewRunner(errs.NewHandler(), breakers)

	p := &fakeProbe{name: "cache"}
	if rec := r.Check(context.Background(), p); rec != nil {
		t.Fatalf("expected healthy check, got %v", rec)
	}
	if p.calls != 1 {
		t.Errorf("calls = %d, want 1", p.calls)
	}
}

func TestRunner_FailingProbeRetriesAndTripsBreaker(t *testing.T) {
	breakers := breaker.NewRegistry()
	breakers.Register("cache", 2, time.Hour)
	r := NewRunner(errs.NewHandler(), breakers)

	p := &fakeProbe{name: "cache", fail: true}

	// Keep the catalog's 1s external backoff from slowing the test down:
	// cancel once the breaker has certainly tripped (two attempts happen
	// within the first ~1s).
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	rec := r.Check(ctx, p)
	if rec == nil {
		t.Fatal("expected failure")
	}
	if rec.Category() != errs.CategoryExternal {
		t.Errorf("category = %q", rec.Category())
	}
	if p.calls < 2 {
		t.Errorf("calls = %d, want >= 2 (retried)", p.calls)
	}
	if breakers.Status("cache") != breaker.StateOpen {
		t.Error("breaker should have tripped after consecutive failures")
	}
}

func TestRunner_TimeoutClassifiedAsTimeout(t *testing.T) {
	breakers := breaker.NewRegistry()
	r := NewRunner(errs.NewHandler(), breakers)

	p := &fakeProbe{name: "uncfg", fail: true}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	rec := r.Check(ctx, p)
	if rec == nil {
		t.Fatal("expected failure")
	}
	if rec.Reason() != errs.ReasonExternalTimeout {
		t.Errorf("reason = %q, want external_service_timeout", rec.Reason())
	}
}
