package errs

import (
	"reflect"
	"testing"
)

func TestClientView_Shape(t *testing.T) {
	h := NewHandler()
	rec := h.Classify(ReasonInsufficientFunds, map[string]any{"account_id": "a1"})

	view := ClientView(rec)

	for _, key := range []string{"type", "message", "code", "reason", "details", "timestamp"} {
		if _, ok := view[key]; !ok {
			t.Errorf("client view missing %q: %v", key, view)
		}
	}
	if view["type"] != "business_rule" {
		t.Errorf("type = %v", view["type"])
	}
	if view["code"] != 422 {
		t.Errorf("code = %v", view["code"])
	}
}

func TestClientView_StripsSensitiveKeys(t *testing.T) {
	h := NewHandler()
	rec := h.Classify(ReasonInvalidCredentials, map[string]any{
		"email":        "user@example.com",
		"password":     "hunter2",
		"access_token": "tok",
		"nested": map[string]any{
			"api_key": "k",
			"region":  "eu-west-1",
			"deeper": map[string]any{
				"private_key": "pem",
				"kept":        true,
			},
		},
	})

	details, ok := ClientView(rec)["details"].(map[string]any)
	if !ok {
		t.Fatal("details missing")
	}

	if _, leaked := details["password"]; leaked {
		t.Error("password leaked")
	}
	if _, leaked := details["access_token"]; leaked {
		t.Error("access_token leaked")
	}
	if details["email"] != "user@example.com" {
		t.Errorf("benign key dropped: %v", details)
	}

	nested := details["nested"].(map[string]any)
	if _, leaked := nested["api_key"]; leaked {
		t.Error("nested api_key leaked")
	}
	if nested["region"] != "eu-west-1" {
		t.Errorf("nested benign key dropped: %v", nested)
	}

	deeper := nested["deeper"].(map[string]any)
	if _, leaked := deeper["private_key"]; leaked {
		t.Error("deeply nested private_key leaked")
	}
	if deeper["kept"] != true {
		t.Errorf("deep benign key dropped: %v", deeper)
	}
}

func TestRedact_Idempotent(t *testing.T) {
	in := map[string]any{
		"password": "x",
		"keep":     "y",
		"nested":   map[string]any{"secret": "z", "ok": 1},
	}

	once := Redact(in)
	twice := Redact(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("redaction not idempotent: %v vs %v", once, twice)
	}
}

func TestRedact_StringifiesKeys(t *testing.T) {
	in := map[string]any{
		"raw": map[any]any{1: "one", "secret": "s"},
	}

	out := Redact(in)
	raw := out["raw"].(map[string]any)

	if raw["1"] != "one" {
		t.Errorf("non-string key not converted: %v", raw)
	}
	if _, leaked := raw["secret"]; leaked {
		t.Error("secret leaked through stringified map")
	}
}

func TestLogView_KeepsFullContext(t *testing.T) {
	h := NewHandler()
	rec := h.Classify(ReasonInvalidCredentials, map[string]any{"password": "hunter2"})

	view := LogView(rec)
	details := view["details"].(map[string]any)

	if details["password"] != "hunter2" {
		t.Error("log view must retain the full context; redaction happens at the sink")
	}
	if view["correlation_id"] != rec.CorrelationID() {
		t.Errorf("correlation_id = %v", view["correlation_id"])
	}
	if view["retryable"] != false {
		t.Errorf("retryable = %v", view["retryable"])
	}
}
