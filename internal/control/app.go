// Package control wires the resilience daemon together: it registers a
// circuit breaker per configured dependency, builds the matching probes,
// and manages the probe loops and the health server lifecycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/payflow/resilience/internal/core/config"
	"github.com/payflow/resilience/internal/core/errs"
	"github.com/payflow/resilience/internal/infra/probe"
	"github.com/payflow/resilience/internal/observability/health"
	"github.com/payflow/resilience/internal/resilience/breaker"
)

// App is the main application struct that manages the daemon lifecycle.
type App struct {
	cfg          Config
	handler      *errs.Handler
	breakers     *breaker.Registry
	runner       *probe.Runner
	probes       []Dependency
	healthServer *health.Server
	log          *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// Dependency pairs a prober with its probe interval.
type Dependency struct {
	Prober   probe.Prober
	Interval time.Duration
}

// Config holds the application configuration.
type Config struct {
	Port         int
	Dependencies []config.DependencyConfig
}

// NewApp creates an App with all dependencies initialized.
func NewApp(cfg Config) (*App, error) {
	handler := errs.NewHandler()
	breakers := breaker.NewRegistry()
	runner := probe.NewRunner(handler, breakers)

	probes := make([]Dependency, 0, len(cfg.Dependencies))
	for _, dep := range cfg.Dependencies {
		breakers.Register(dep.Name, dep.Threshold, dep.ResetTimeout)

		p, err := probe.New(dep)
		if err != nil {
			return nil, fmt.Errorf("failed to build probe for %s: %w", dep.Name, err)
		}
		probes = append(probes, Dependency{Prober: p, Interval: dep.Interval})

		slog.Info("Registered dependency",
			"name", dep.Name,
			"type", dep.Type,
			"threshold", dep.Threshold,
			"reset_timeout", dep.ResetTimeout,
		)
	}

	return &App{
		cfg:          cfg,
		handler:      handler,
		breakers:     breakers,
		runner:       runner,
		probes:       probes,
		healthServer: health.NewServer(breakers, cfg.Port),
		log:          slog.Default(),
	}, nil
}

// Breakers exposes the breaker registry for embedding callers.
func (a *App) Breakers() *breaker.Registry { return a.breakers }

// Handler exposes the error handler for embedding callers.
func (a *App) Handler() *errs.Handler { return a.handler }

// Start launches the probe loops and the health server.
func (a *App) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	for _, dep := range a.probes {
		a.wg.Add(1)
		go func(d Dependency) {
			defer a.wg.Done()
			a.runner.Loop(runCtx, d.Prober, d.Interval)
		}(dep)
	}

	go func() {
		a.log.Info("Health server listening", "port", a.cfg.Port)
		if err := a.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Health server stopped", "error", err)
		}
	}()

	a.log.Info("Resilience daemon started", "dependencies", len(a.probes))
	return nil
}

// Stop shuts the daemon down, waiting for probe loops to drain.
func (a *App) Stop(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		a.log.Warn("Timed out waiting for probe loops to stop")
	}

	for _, dep := range a.probes {
		if closer, ok := dep.Prober.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				a.log.Warn("Failed to close probe", "dependency", dep.Prober.Name(), "error", err)
			}
		}
	}

	return a.healthServer.Stop(ctx)
}
