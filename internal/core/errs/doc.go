// Package errs is the error taxonomy core: a static catalog mapping
// fine-grained failure reasons to coarse categories and resilience policy,
// an immutable Record type representing one classified failure, and a
// Handler that turns any failure signal into a Record at a single boundary.
//
// Classification is total: every reason resolves to a category (unknown
// reasons fall back to system) and Execute converts any outcome, including
// panics, into either a success value or a Record. Once classified, a
// Record's reason and category are never altered downstream; only a missing
// correlation id may be attached.
package errs
