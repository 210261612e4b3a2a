package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/payflow/resilience/internal/core/errs"
	"github.com/payflow/resilience/internal/resilience/breaker"
)

func tripBreaker(t *testing.T, r *breaker.Registry, name string, failures int) {
	t.Helper()
	for i := 0; i < failures; i++ {
		breaker.Call(context.Background(), r, name, func(context.Context) (struct{}, *errs.Record) {
			return struct{}{}, errs.New(errs.ReasonExternalUnavailable, nil)
		})
	}
}

func TestHandleHealth(t *testing.T) {
	breakers := breaker.NewRegistry()
	breakers.Register("bank_api", 2, time.Hour)
	breakers.Register("cache", 2, time.Hour)
	s := NewServer(breakers, 0)

	// All closed: healthy.
	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	// One open breaker degrades the aggregate.
	tripBreaker(t, breakers, "bank_api", 2)

	w = httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "degraded" {
		t.Errorf("status = %q, want degraded", body["status"])
	}
}

func TestHandleBreakers(t *testing.T) {
	breakers := breaker.NewRegistry()
	breakers.Register("bank_api", 3, time.Hour)
	s := NewServer(breakers, 0)

	w := httptest.NewRecorder()
	s.handleBreakers(w, httptest.NewRequest(http.MethodGet, "/breakers", nil))

	var snapshot []breaker.Status
	if err := json.Unmarshal(w.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(snapshot) != 1 || snapshot[0].Name != "bank_api" || snapshot[0].State != "closed" {
		t.Errorf("snapshot = %+v", snapshot)
	}
}

func TestHandleReset(t *testing.T) {
	breakers := breaker.NewRegistry()
	breakers.Register("bank_api", 1, time.Hour)
	s := NewServer(breakers, 0)

	tripBreaker(t, breakers, "bank_api", 1)
	if breakers.Status("bank_api") != breaker.StateOpen {
		t.Fatal("breaker should be open")
	}

	// GET is rejected.
	w := httptest.NewRecorder()
	s.handleReset(w, httptest.NewRequest(http.MethodGet, "/breakers/reset?name=bank_api", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", w.Code)
	}

	// Missing name is rejected.
	w = httptest.NewRecorder()
	s.handleReset(w, httptest.NewRequest(http.MethodPost, "/breakers/reset", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing name status = %d, want 400", w.Code)
	}

	// POST with a name closes the breaker.
	w = httptest.NewRecorder()
	s.handleReset(w, httptest.NewRequest(http.MethodPost, "/breakers/reset?name=bank_api", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if breakers.Status("bank_api") != breaker.StateClosed {
		t.Error("reset did not close the breaker")
	}
}
