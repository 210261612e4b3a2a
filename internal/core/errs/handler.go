package errs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/payflow/resilience/internal/observability/metrics"
)

// Handler classifies failures into Records using the catalog. It holds no
// mutable state and is safe for concurrent use.
type Handler struct {
	log *slog.Logger
}

// NewHandler creates a Handler logging through the default slog logger.
func NewHandler() *Handler {
	return &Handler{log: slog.Default()}
}

// NewHandlerWithLogger creates a Handler with an explicit logger.
func NewHandlerWithLogger(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// Classify builds a fully-populated Record for a reason. Unknown reasons
// degrade to a generic internal error rather than failing; classification is
// total. A fresh correlation id is stamped when ctx does not carry one.
func (h *Handler) Classify(reason Reason, ctx map[string]any, opts ...Option) *Record {
	if !IsKnown(reason) {
		h.log.Warn("Unknown failure reason, falling back to internal",
			"reason", string(reason))
		reason = ReasonInternalError
	}

	r := New(reason, ctx, opts...)
	if r.CorrelationID() == "" {
		r.SetCorrelationID(uuid.New().String())
	}
	h.emit(r)
	return r
}

// ClassifyFieldErrors derives one canonical Record from a set of per-field
// validation failures. See fields.go for the priority tiers.
func (h *Handler) ClassifyFieldErrors(fieldErrors FieldErrors, ctx map[string]any) *Record {
	reason := fieldErrors.primaryReason()

	merged := cloneMap(ctx)
	if merged == nil {
		merged = map[string]any{}
	}
	merged["field_errors"] = fieldErrors.toContext()

	return h.Classify(reason, merged)
}

// emit publishes the classification as a structured event. This is a side
// effect of classification, not part of the return value.
func (h *Handler) emit(r *Record) {
	metrics.ErrorsClassified.WithLabelValues(string(r.Category()), string(r.Reason())).Inc()
	h.log.Debug("Failure classified",
		"category", string(r.Category()),
		"reason", string(r.Reason()),
		"correlation_id", r.CorrelationID(),
		"retryable", r.Retryable(),
		"circuit_breaker", r.CircuitBreaker(),
		"source", r.Source(),
	)
}

// Execute runs op and normalizes any outcome into (value, *Record). It is
// the single boundary past which no unclassified failure escapes: an
// already-classified Record passes through unchanged, FieldErrors and bare
// Reasons are classified, arbitrary errors become internal failures, and
// panics are recovered and converted. Execute itself never panics.
func Execute[T any](ctx context.Context, h *Handler, callCtx map[string]any, op func(context.Context) (T, error)) (val T, rec *Record) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			val = zero
			merged := withCause(callCtx, fmt.Sprintf("panic: %v", p))
			rec = h.Classify(ReasonUnexpectedError, merged)
		}
	}()

	val, err := op(ctx)
	if err == nil {
		return val, nil
	}

	var zero T
	val = zero

	var classified *Record
	if errors.As(err, &classified) {
		if classified.CorrelationID() == "" {
			if id, ok := callCtx["correlation_id"].(string); ok {
				classified.SetCorrelationID(id)
			} else {
				classified.SetCorrelationID(uuid.New().String())
			}
		}
		return val, classified
	}

	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		return val, h.ClassifyFieldErrors(fieldErrs, callCtx)
	}

	var reason Reason
	if errors.As(err, &reason) {
		return val, h.Classify(reason, callCtx)
	}

	return val, h.Classify(ReasonInternalError, withCause(callCtx, err.Error()))
}

func withCause(ctx map[string]any, cause string) map[string]any {
	merged := cloneMap(ctx)
	if merged == nil {
		merged = map[string]any{}
	}
	merged["cause"] = cause
	return merged
}
