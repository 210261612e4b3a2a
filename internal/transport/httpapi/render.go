// Package httpapi renders classified failures for HTTP consumers.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/payflow/resilience/internal/core/errs"
)

// WriteError writes a record as a JSON error response. The status code is
// the catalog's HTTP status for the record's category; the body is the
// redacted client view wrapped in an "error" envelope.
func WriteError(w http.ResponseWriter, rec *errs.Record) {
	policy := errs.PolicyFor(rec.Category())

	w.Header().Set("Content-Type", "application/json")
	if rec.CorrelationID() != "" {
		w.Header().Set("X-Correlation-ID", rec.CorrelationID())
	}
	w.WriteHeader(policy.HTTPStatus)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": errs.ClientView(rec),
	})
}
