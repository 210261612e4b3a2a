// Package probe implements liveness probes for the external dependencies
// guarded by circuit breakers. Each prober performs one cheap round-trip to
// its dependency and reports the outcome as a classified failure, so that
// probe traffic exercises the same taxonomy, retry, and breaker machinery as
// real calls.
package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/payflow/resilience/internal/core/config"
	"github.com/payflow/resilience/internal/core/errs"
)

// Prober checks one external dependency.
type Prober interface {
	Name() string
	Probe(ctx context.Context) error
}

// New builds a prober from a dependency config entry.
func New(cfg config.DependencyConfig) (Prober, error) {
	switch cfg.Type {
	case "http":
		return NewHTTPProbe(cfg.Name, cfg.URL), nil
	case "redis":
		return NewRedisProbe(cfg.Name, cfg.URL)
	case "postgres":
		return NewPostgresProbe(cfg.Name, cfg.URL)
	case "grpc":
		return NewGRPCProbe(cfg.Name, cfg.URL)
	default:
		return nil, fmt.Errorf("unknown dependency type %q for %s", cfg.Type, cfg.Name)
	}
}

// classify wraps a transport failure as an external-dependency Record,
// distinguishing timeouts from plain unavailability.
func classify(dependency string, err error) error {
	if err == nil {
		return nil
	}

	reason := errs.ReasonExternalUnavailable
	if errors.Is(err, context.DeadlineExceeded) {
		reason = errs.ReasonExternalTimeout
	}

	return errs.Wrap(reason, err, map[string]any{
		"dependency": dependency,
		"source":     "probe",
	})
}
