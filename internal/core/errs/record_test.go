package errs

import (
	"errors"
	"testing"
)

func TestNew_DefaultsFromCatalog(t *testing.T) {
	rec := New(ReasonExternalUnavailable, nil)

	if !rec.Retryable() {
		t.Error("external_dependency must default to retryable")
	}
	if !rec.CircuitBreaker() {
		t.Error("external_dependency must default to breaker-eligible")
	}
	if rec.Code() != 503 {
		t.Errorf("code = %d, want 503", rec.Code())
	}
	if rec.Message() != DefaultMessageFor(ReasonExternalUnavailable) {
		t.Errorf("message = %q", rec.Message())
	}
}

func TestNew_Overrides(t *testing.T) {
	rec := New(ReasonExternalUnavailable, nil,
		WithRetryable(false),
		WithCircuitBreaker(false),
		WithMessage("bank gateway offline"),
		WithSource("transfer_worker"),
	)

	if rec.Retryable() || rec.CircuitBreaker() {
		t.Error("overrides not applied")
	}
	if rec.Message() != "bank gateway offline" {
		t.Errorf("message = %q", rec.Message())
	}
	if rec.Source() != "transfer_worker" {
		t.Errorf("source = %q", rec.Source())
	}
}

func TestNew_ContextIsCloned(t *testing.T) {
	ctx := map[string]any{"a": 1}
	rec := New(ReasonAccountNotFound, ctx)

	ctx["a"] = 2
	if rec.Context()["a"] != 1 {
		t.Error("input mutation leaked into record")
	}

	got := rec.Context()
	got["b"] = 3
	if _, ok := rec.Context()["b"]; ok {
		t.Error("returned map mutation leaked into record")
	}
}

func TestNew_SeedsFromContextKeys(t *testing.T) {
	rec := New(ReasonAccountNotFound, map[string]any{
		"correlation_id": "corr-9",
		"source":         "accounts_api",
	})

	if rec.CorrelationID() != "corr-9" {
		t.Errorf("correlation id = %q", rec.CorrelationID())
	}
	if rec.Source() != "accounts_api" {
		t.Errorf("source = %q", rec.Source())
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	rec := Wrap(ReasonExternalUnavailable, cause, map[string]any{"dependency": "bank_api"})

	if rec.Context()["cause"] != cause.Error() {
		t.Errorf("cause = %v", rec.Context()["cause"])
	}
	if rec.Context()["dependency"] != "bank_api" {
		t.Errorf("context = %v", rec.Context())
	}
}

func TestRecord_ErrorString(t *testing.T) {
	rec := New(ReasonInsufficientFunds, nil)
	want := "insufficient_funds [business_rule] (422): insufficient funds for this operation"
	if rec.Error() != want {
		t.Errorf("Error() = %q, want %q", rec.Error(), want)
	}

	var nilRec *Record
	if nilRec.Error() != "<nil>" {
		t.Errorf("nil Error() = %q", nilRec.Error())
	}
}
