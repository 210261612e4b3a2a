package errs

import (
	"fmt"
	"time"
)

// Record is the canonical, immutable representation of one classified
// failure. It is created once at the point of classification and never
// mutated afterwards, except to attach a correlation id when none was set.
//
// Category is always derived from Reason via the catalog; Retryable and
// CircuitBreaker default to the category policy unless overridden at
// construction.
type Record struct {
	typ            string
	message        string
	code           int
	reason         Reason
	context        map[string]any
	timestamp      time.Time
	category       Category
	correlationID  string
	source         string
	retryable      bool
	circuitBreaker bool
}

// Record implements error so classified failures travel through ordinary
// error returns.
func (r *Record) Error() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s [%s] (%d): %s", r.reason, r.category, r.code, r.message)
}

func (r *Record) Type() string          { return r.typ }
func (r *Record) Message() string       { return r.message }
func (r *Record) Code() int             { return r.code }
func (r *Record) Reason() Reason        { return r.reason }
func (r *Record) Timestamp() time.Time  { return r.timestamp }
func (r *Record) Category() Category    { return r.category }
func (r *Record) CorrelationID() string { return r.correlationID }
func (r *Record) Source() string        { return r.source }
func (r *Record) Retryable() bool       { return r.retryable }
func (r *Record) CircuitBreaker() bool  { return r.circuitBreaker }

// Context returns a defensive copy; the internal map is never exposed.
func (r *Record) Context() map[string]any { return cloneMap(r.context) }

// SetCorrelationID attaches a correlation id if none is present. The first
// writer wins so one logical failure keeps a single trace identity across
// layers.
func (r *Record) SetCorrelationID(id string) {
	if r.correlationID == "" {
		r.correlationID = id
	}
}

// Option overrides a Record field during construction.
type Option func(*Record)

// WithSource tags the record with a free-text origin.
func WithSource(source string) Option { return func(r *Record) { r.source = source } }

// WithMessage replaces the catalog default message.
func WithMessage(message string) Option { return func(r *Record) { r.message = message } }

// WithRetryable overrides the category policy's retryable flag.
func WithRetryable(retryable bool) Option { return func(r *Record) { r.retryable = retryable } }

// WithCircuitBreaker overrides the category policy's breaker-accounting flag.
func WithCircuitBreaker(eligible bool) Option {
	return func(r *Record) { r.circuitBreaker = eligible }
}

// New builds a Record for a reason, deriving category, policy flags, status
// code, and default message from the catalog. The context map is defensively
// cloned; a "correlation_id" key in ctx seeds the correlation id and a
// "source" key seeds the source tag.
func New(reason Reason, ctx map[string]any, opts ...Option) *Record {
	category := CategoryFor(reason)
	policy := PolicyFor(category)

	r := &Record{
		typ:            string(category),
		message:        DefaultMessageFor(reason),
		code:           policy.HTTPStatus,
		reason:         reason,
		context:        cloneMap(ctx),
		timestamp:      time.Now().UTC(),
		category:       category,
		retryable:      policy.Retryable,
		circuitBreaker: policy.CircuitBreaker,
	}

	if id, ok := r.context["correlation_id"].(string); ok {
		r.correlationID = id
	}
	if src, ok := r.context["source"].(string); ok {
		r.source = src
	}

	for _, o := range opts {
		o(r)
	}
	return r
}

// Wrap classifies a cause into a Record, preserving the cause's message in
// the context under "cause".
func Wrap(reason Reason, cause error, ctx map[string]any, opts ...Option) *Record {
	r := New(reason, ctx, opts...)
	if cause != nil {
		if r.context == nil {
			r.context = map[string]any{}
		}
		r.context["cause"] = cause.Error()
	}
	return r
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if mv, ok := v.(map[string]any); ok {
			out[k] = cloneMap(mv)
			continue
		}
		out[k] = v
	}
	return out
}
