package errs

import "testing"

func TestPrimaryReason_Tables(t *testing.T) {
	tests := []struct {
		name   string
		errs   FieldErrors
		expect Reason
	}{
		{"conflict email", FieldErrors{"email": {"has already been taken"}}, ReasonDuplicateEmail},
		{"conflict account", FieldErrors{"account_number": {"must be unique"}}, ReasonDuplicateAccountNumber},
		{"conflict reference", FieldErrors{"reference": {"duplicate value"}}, ReasonDuplicateReference},
		{"conflict unknown field", FieldErrors{"slug": {"already exists"}}, ReasonDuplicateEntry},
		{"format email", FieldErrors{"email": {"is invalid"}}, ReasonInvalidEmailFormat},
		{"format amount", FieldErrors{"amount": {"does not match pattern"}}, ReasonInvalidAmountFormat},
		{"format account", FieldErrors{"account_number": {"must be a valid account number"}}, ReasonInvalidAccountFormat},
		{"format password", FieldErrors{"password": {"is invalid"}}, ReasonInvalidPasswordFormat},
		{"length email", FieldErrors{"email": {"is too long (maximum is 255 characters)"}}, ReasonEmailTooLong},
		{"length password", FieldErrors{"password": {"is too short"}}, ReasonPasswordTooShort},
		{"inclusion status", FieldErrors{"status": {"is not included in the list"}}, ReasonInvalidStatus},
		{"inclusion role", FieldErrors{"role": {"must be one of: admin, member"}}, ReasonInvalidRole},
		{"inclusion direction", FieldErrors{"direction": {"is not included in the list"}}, ReasonInvalidDirection},
		{"immutable field", FieldErrors{"account_number": {"cannot be changed"}}, ReasonOperationNotAllowed},
		{"required field", FieldErrors{"email": {"can't be blank"}}, ReasonMissingFields},
		{"fallback", FieldErrors{"widget": {"something odd"}}, ReasonMissingFields},
	}

	h := NewHandler()
	for _, tt := range tests {
		rec := h.ClassifyFieldErrors(tt.errs, nil)
		if rec.Reason() != tt.expect {
			t.Errorf("%s: reason = %q, want %q", tt.name, rec.Reason(), tt.expect)
		}
	}
}

func TestPrimaryReason_ConflictBeatsFormat(t *testing.T) {
	// A uniqueness violation must win over a format violation regardless of
	// how many fields are flagged or in what order the map iterates.
	fieldErrs := FieldErrors{
		"amount": {"is invalid"},
		"email":  {"has already been taken"},
		"name":   {"is too long"},
	}

	h := NewHandler()
	for i := 0; i < 50; i++ {
		rec := h.ClassifyFieldErrors(fieldErrs, nil)
		if rec.Reason() != ReasonDuplicateEmail {
			t.Fatalf("iteration %d: reason = %q, want duplicate_email", i, rec.Reason())
		}
	}
}

func TestPrimaryReason_OrderIndependentWithinTier(t *testing.T) {
	// Two conflicting fields: the sorted field order decides, not map order.
	fieldErrs := FieldErrors{
		"reference":      {"must be unique"},
		"account_number": {"must be unique"},
	}

	h := NewHandler()
	for i := 0; i < 50; i++ {
		rec := h.ClassifyFieldErrors(fieldErrs, nil)
		if rec.Reason() != ReasonDuplicateAccountNumber {
			t.Fatalf("iteration %d: reason = %q, want duplicate_account_number", i, rec.Reason())
		}
	}
}

func TestPrimaryReason_FormatBeatsLengthAndInclusion(t *testing.T) {
	fieldErrs := FieldErrors{
		"status": {"is not included in the list"},
		"name":   {"is too long"},
		"email":  {"is invalid"},
	}

	h := NewHandler()
	rec := h.ClassifyFieldErrors(fieldErrs, nil)
	if rec.Reason() != ReasonInvalidEmailFormat {
		t.Errorf("reason = %q, want invalid_email_format", rec.Reason())
	}
}

func TestClassifyFieldErrors_ContextCarriesFields(t *testing.T) {
	h := NewHandler()
	rec := h.ClassifyFieldErrors(FieldErrors{"email": {"can't be blank"}}, map[string]any{"request_id": "r1"})

	ctx := rec.Context()
	if ctx["request_id"] != "r1" {
		t.Errorf("caller context lost: %v", ctx)
	}
	fieldCtx, ok := ctx["field_errors"].(map[string]any)
	if !ok {
		t.Fatalf("field_errors missing: %v", ctx)
	}
	msgs, ok := fieldCtx["email"].([]string)
	if !ok || len(msgs) != 1 || msgs[0] != "can't be blank" {
		t.Errorf("field messages = %v", fieldCtx["email"])
	}
}
