package errs

import (
	"fmt"
	"time"
)

// sensitiveKeys is the fixed denylist stripped from client-facing views.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"password_hash": {},
	"access_token":  {},
	"refresh_token": {},
	"secret":        {},
	"private_key":   {},
	"api_key":       {},
}

// ClientView renders a record for external consumers. The context is
// sanitized: every key in the sensitive denylist is stripped, recursively
// for nested maps, and all keys are converted to strings. Redaction is
// idempotent.
func ClientView(r *Record) map[string]any {
	return map[string]any{
		"type":      r.Type(),
		"message":   r.Message(),
		"code":      r.Code(),
		"reason":    string(r.Reason()),
		"details":   Redact(r.Context()),
		"timestamp": r.Timestamp().Format(time.RFC3339Nano),
	}
}

// LogView renders a record for internal diagnostics with the full,
// unredacted context. Callers feeding this into a log sink must redact
// secrets at the sink boundary themselves.
func LogView(r *Record) map[string]any {
	return map[string]any{
		"type":           r.Type(),
		"message":        r.Message(),
		"code":           r.Code(),
		"reason":         string(r.Reason()),
		"category":       string(r.Category()),
		"correlation_id": r.CorrelationID(),
		"source":         r.Source(),
		"retryable":      r.Retryable(),
		"details":        r.Context(),
		"timestamp":      r.Timestamp().Format(time.RFC3339Nano),
	}
}

// Redact returns a copy of m with sensitive keys removed, descending into
// nested maps. Keys of non-string-keyed maps are stringified.
func Redact(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if _, sensitive := sensitiveKeys[k]; sensitive {
			continue
		}
		out[k] = redactValue(v)
	}
	return out
}

func redactValue(v any) any {
	switch mv := v.(type) {
	case map[string]any:
		return Redact(mv)
	case map[any]any:
		converted := make(map[string]any, len(mv))
		for k, val := range mv {
			converted[fmt.Sprint(k)] = val
		}
		return Redact(converted)
	default:
		return v
	}
}
