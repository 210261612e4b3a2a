package errs

import (
	"sort"
	"strings"
)

// FieldErrors carries per-field validation complaints. Each field may have
// several messages. It implements error so domain code can return it
// directly and let Execute classify it.
type FieldErrors map[string][]string

func (f FieldErrors) Error() string { return "field validation failed" }

func (f FieldErrors) toContext() map[string]any {
	out := make(map[string]any, len(f))
	for field, msgs := range f {
		out[field] = append([]string(nil), msgs...)
	}
	return out
}

// The priority tiers, highest first. A single failed operation reports a
// single primary cause even when several fields are invalid at once, and
// conflicts are reported before formatting problems so that a client fixing
// the reported issue does not discover a more fundamental one on retry.
//
// Each tier pairs a message predicate with an explicit field-to-reason table.
// Fields are scanned in a fixed order so the derived reason does not depend
// on map iteration order.

var conflictReasons = map[string]Reason{
	"email":          ReasonDuplicateEmail,
	"account_number": ReasonDuplicateAccountNumber,
	"reference":      ReasonDuplicateReference,
}

var formatReasons = map[string]Reason{
	"email":          ReasonInvalidEmailFormat,
	"amount":         ReasonInvalidAmountFormat,
	"account_number": ReasonInvalidAccountFormat,
	"name":           ReasonInvalidNameFormat,
	"password":       ReasonInvalidPasswordFormat,
}

var lengthReasons = map[string]Reason{
	"email":     ReasonEmailTooLong,
	"name":      ReasonNameTooLong,
	"password":  ReasonPasswordTooShort,
	"reference": ReasonReferenceTooLong,
}

var inclusionReasons = map[string]Reason{
	"status":    ReasonInvalidStatus,
	"role":      ReasonInvalidRole,
	"direction": ReasonInvalidDirection,
}

func isConflictMessage(msg string) bool {
	return containsAny(msg,
		"already exists", "has already been taken", "must be unique", "duplicate")
}

func isFormatMessage(msg string) bool {
	return containsAny(msg,
		"is invalid", "format", "pattern", "must be a valid")
}

func isLengthMessage(msg string) bool {
	return containsAny(msg,
		"too long", "too short", "length", "characters")
}

func isInclusionMessage(msg string) bool {
	return containsAny(msg,
		"is not included", "must be one of", "inclusion", "not a valid")
}

func isImmutableMessage(msg string) bool {
	return containsAny(msg,
		"cannot be changed", "cannot be modified", "immutable")
}

func containsAny(msg string, patterns ...string) bool {
	lower := strings.ToLower(msg)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

type tier struct {
	match   func(string) bool
	reasons map[string]Reason
	generic Reason
}

// primaryReason walks the tiers in priority order and returns the first hit.
// Within a tier, matching fields are considered in sorted name order, with
// table entries taking precedence over the tier's generic reason.
func (f FieldErrors) primaryReason() Reason {
	tiers := []tier{
		{isConflictMessage, conflictReasons, ReasonDuplicateEntry},
		{isFormatMessage, formatReasons, ReasonMissingFields},
		{isLengthMessage, lengthReasons, ReasonMissingFields},
		{isInclusionMessage, inclusionReasons, ReasonMissingFields},
		{isImmutableMessage, nil, ReasonOperationNotAllowed},
	}

	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, t := range tiers {
		var generic bool
		for _, field := range fields {
			if !anyMessageMatches(f[field], t.match) {
				continue
			}
			if reason, ok := t.reasons[field]; ok {
				return reason
			}
			generic = true
		}
		if generic {
			return t.generic
		}
	}

	// Required-field omissions and anything unmatched collapse to the
	// generic missing-fields reason.
	return ReasonMissingFields
}

func anyMessageMatches(msgs []string, match func(string) bool) bool {
	for _, m := range msgs {
		if match(m) {
			return true
		}
	}
	return false
}
