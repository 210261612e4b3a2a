// Package breaker guards calls to unreliable external dependencies with a
// per-dependency circuit breaker.
//
// Each dependency owns one state cell with two explicit states, Closed and
// Open, plus an implicit half-open trial: once the reset timeout elapses the
// next call is let through, and its outcome decides whether the breaker
// closes or re-opens for another full window. Cells are synchronized
// independently so unrelated dependencies never contend on a shared lock.
package breaker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/payflow/resilience/internal/core/errs"
	"github.com/payflow/resilience/internal/observability/metrics"
)

// State is the breaker state for one dependency.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Status is a point-in-time snapshot of one dependency's breaker.
type Status struct {
	Name         string        `json:"name"`
	State        string        `json:"state"`
	FailureCount int           `json:"failure_count"`
	Threshold    int           `json:"threshold"`
	ResetTimeout time.Duration `json:"reset_timeout"`
	OpenedAt     time.Time     `json:"opened_at,omitempty"`
}

// cell is the mutable state for one dependency. Its mutex covers only this
// dependency; openedAt is always set while state == StateOpen.
type cell struct {
	mu           sync.Mutex
	name         string
	failures     int
	threshold    int
	resetTimeout time.Duration
	state        State
	openedAt     time.Time
}

// Registry holds one breaker cell per registered dependency name. The
// registry map itself is guarded by an RWMutex used only for lookup and
// registration; call outcomes lock individual cells.
type Registry struct {
	mu    sync.RWMutex
	cells map[string]*cell
	now   func() time.Time
	log   *slog.Logger
}

// NewRegistry creates an empty breaker registry.
func NewRegistry() *Registry {
	return &Registry{
		cells: make(map[string]*cell),
		now:   time.Now,
		log:   slog.Default(),
	}
}

// Register configures a breaker for a dependency. Registering an existing
// name replaces its settings and resets its state.
func (r *Registry) Register(name string, threshold int, resetTimeout time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cells[name] = &cell{
		name:         name,
		threshold:    threshold,
		resetTimeout: resetTimeout,
	}
	metrics.BreakerState.WithLabelValues(name).Set(0)
}

// Status returns the breaker state for a dependency. Unregistered names
// report Closed.
func (r *Registry) Status(name string) State {
	c := r.lookup(name)
	if c == nil {
		return StateClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset forces a breaker back to Closed with a zeroed failure count.
func (r *Registry) Reset(name string) {
	c := r.lookup(name)
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
	c.failures = 0
	c.openedAt = time.Time{}
	metrics.BreakerState.WithLabelValues(name).Set(0)
}

// Snapshot reports the current state of every registered breaker.
func (r *Registry) Snapshot() []Status {
	r.mu.RLock()
	cells := make([]*cell, 0, len(r.cells))
	for _, c := range r.cells {
		cells = append(cells, c)
	}
	r.mu.RUnlock()

	out := make([]Status, 0, len(cells))
	for _, c := range cells {
		c.mu.Lock()
		out = append(out, Status{
			Name:         c.name,
			State:        c.state.String(),
			FailureCount: c.failures,
			Threshold:    c.threshold,
			ResetTimeout: c.resetTimeout,
			OpenedAt:     c.openedAt,
		})
		c.mu.Unlock()
	}
	return out
}

// SetClock replaces the time source; tests use this to step through reset
// timeouts without sleeping.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

func (r *Registry) lookup(name string) *cell {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cells[name]
}

// allow decides whether a call may proceed. In the Open state the call is
// rejected until the reset timeout has elapsed, after which a single trial
// call is let through.
func (r *Registry) allow(c *cell) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return true
	}
	if r.now().Sub(c.openedAt) < c.resetTimeout {
		return false
	}
	// Claim the trial: refreshing openedAt keeps concurrent callers rejected
	// until this trial's outcome settles the state.
	c.openedAt = r.now()
	return true
}

func (r *Registry) onSuccess(c *cell) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateOpen {
		r.log.Info("Circuit breaker closed after successful trial", "dependency", c.name)
	}
	c.state = StateClosed
	c.failures = 0
	c.openedAt = time.Time{}
	metrics.BreakerState.WithLabelValues(c.name).Set(0)
}

func (r *Registry) onFailure(c *cell) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures++

	if c.state == StateOpen {
		// Failed trial: stay open for another full window.
		c.openedAt = r.now()
		return
	}

	if c.failures >= c.threshold {
		c.state = StateOpen
		c.openedAt = r.now()
		metrics.BreakerState.WithLabelValues(c.name).Set(1)
		metrics.BreakerTrips.WithLabelValues(c.name).Inc()
		r.log.Warn("Circuit breaker opened",
			"dependency", c.name,
			"failures", c.failures,
			"threshold", c.threshold,
		)
	}
}

// Call runs op through the breaker for the named dependency. An open breaker
// rejects the call without invoking op. Failures count toward the breaker
// only when the classified record is breaker-eligible. Calls against an
// unregistered name run unprotected.
func Call[T any](ctx context.Context, r *Registry, name string, op func(context.Context) (T, *errs.Record)) (T, *errs.Record) {
	c := r.lookup(name)
	if c == nil {
		r.log.Warn("No circuit breaker registered, running unprotected", "dependency", name)
		return op(ctx)
	}

	if !r.allow(c) {
		metrics.BreakerRejections.WithLabelValues(name).Inc()
		var zero T
		return zero, errs.New(errs.ReasonCircuitOpen, map[string]any{"dependency": name})
	}

	val, rec := op(ctx)
	if rec == nil {
		r.onSuccess(c)
		return val, nil
	}

	if rec.CircuitBreaker() {
		r.onFailure(c)
	}
	return val, rec
}

// CallWithFallback runs op through the breaker and returns the fallback's
// result whenever the primary call fails for any reason, including a
// rejected call on an open breaker.
func CallWithFallback[T any](ctx context.Context, r *Registry, name string, op func(context.Context) (T, *errs.Record), fallback func(context.Context) T) T {
	val, rec := Call(ctx, r, name, op)
	if rec != nil {
		return fallback(ctx)
	}
	return val
}
