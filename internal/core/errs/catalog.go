package errs

import "time"

// Category is the coarse classification bucket a reason belongs to.
// It drives the HTTP status and the retry / circuit breaker policy.
type Category string

const (
	CategoryValidation     Category = "validation"
	CategoryNotFound       Category = "not_found"
	CategoryAuthentication Category = "authentication"
	CategoryAuthorization  Category = "authorization"
	CategoryConflict       Category = "conflict"
	CategoryBusinessRule   Category = "business_rule"
	CategoryExternal       Category = "external_dependency"
	CategorySystem         Category = "system"
)

// Policy is the resilience policy attached to a category.
type Policy struct {
	HTTPStatus     int
	Retryable      bool
	CircuitBreaker bool
	MaxRetries     int
	BaseDelay      time.Duration
}

// policies is the authoritative policy matrix. Retry counts and delays live
// here and nowhere else; the retry executor and circuit breaker consult this
// table instead of hard-coding their own limits.
var policies = map[Category]Policy{
	CategoryValidation:     {HTTPStatus: 400},
	CategoryNotFound:       {HTTPStatus: 404},
	CategoryAuthentication: {HTTPStatus: 401},
	CategoryAuthorization:  {HTTPStatus: 403},
	CategoryConflict:       {HTTPStatus: 409},
	CategoryBusinessRule:   {HTTPStatus: 422},
	CategoryExternal: {
		HTTPStatus:     503,
		Retryable:      true,
		CircuitBreaker: true,
		MaxRetries:     3,
		BaseDelay:      1000 * time.Millisecond,
	},
	CategorySystem: {
		HTTPStatus:     500,
		Retryable:      true,
		CircuitBreaker: true,
		MaxRetries:     2,
		BaseDelay:      500 * time.Millisecond,
	},
}

var categories = map[Reason]Category{
	ReasonMissingFields:         CategoryValidation,
	ReasonInvalidEmailFormat:    CategoryValidation,
	ReasonInvalidAmountFormat:   CategoryValidation,
	ReasonInvalidAccountFormat:  CategoryValidation,
	ReasonInvalidNameFormat:     CategoryValidation,
	ReasonInvalidPasswordFormat: CategoryValidation,
	ReasonEmailTooLong:          CategoryValidation,
	ReasonNameTooLong:           CategoryValidation,
	ReasonPasswordTooShort:      CategoryValidation,
	ReasonReferenceTooLong:      CategoryValidation,
	ReasonInvalidStatus:         CategoryValidation,
	ReasonInvalidRole:           CategoryValidation,
	ReasonInvalidDirection:      CategoryValidation,

	ReasonAccountNotFound:     CategoryNotFound,
	ReasonTransactionNotFound: CategoryNotFound,
	ReasonUserNotFound:        CategoryNotFound,
	ReasonResourceNotFound:    CategoryNotFound,

	ReasonInvalidCredentials:     CategoryAuthentication,
	ReasonTokenExpired:           CategoryAuthentication,
	ReasonTokenInvalid:           CategoryAuthentication,
	ReasonAuthenticationRequired: CategoryAuthentication,

	ReasonAccessDenied:        CategoryAuthorization,
	ReasonOperationNotAllowed: CategoryAuthorization,

	ReasonDuplicateEmail:         CategoryConflict,
	ReasonDuplicateAccountNumber: CategoryConflict,
	ReasonDuplicateReference:     CategoryConflict,
	ReasonDuplicateEntry:         CategoryConflict,

	ReasonInsufficientFunds:   CategoryBusinessRule,
	ReasonAccountFrozen:       CategoryBusinessRule,
	ReasonLimitExceeded:       CategoryBusinessRule,
	ReasonAlreadySettled:      CategoryBusinessRule,
	ReasonSameAccountTransfer: CategoryBusinessRule,

	ReasonExternalUnavailable: CategoryExternal,
	ReasonExternalTimeout:     CategoryExternal,
	ReasonCircuitOpen:         CategoryExternal,
	ReasonRateLimited:         CategoryExternal,

	ReasonInternalError:      CategorySystem,
	ReasonDatabaseError:      CategorySystem,
	ReasonConfigurationError: CategorySystem,
	ReasonUnexpectedError:    CategorySystem,
}

var messages = map[Reason]string{
	ReasonMissingFields:         "required fields are missing or invalid",
	ReasonInvalidEmailFormat:    "email address format is invalid",
	ReasonInvalidAmountFormat:   "amount format is invalid",
	ReasonInvalidAccountFormat:  "account number format is invalid",
	ReasonInvalidNameFormat:     "name contains invalid characters",
	ReasonInvalidPasswordFormat: "password does not meet format requirements",
	ReasonEmailTooLong:          "email address is too long",
	ReasonNameTooLong:           "name is too long",
	ReasonPasswordTooShort:      "password is too short",
	ReasonReferenceTooLong:      "reference is too long",
	ReasonInvalidStatus:         "status is not a valid value",
	ReasonInvalidRole:           "role is not a valid value",
	ReasonInvalidDirection:      "direction is not a valid value",

	ReasonAccountNotFound:     "account not found",
	ReasonTransactionNotFound: "transaction not found",
	ReasonUserNotFound:        "user not found",
	ReasonResourceNotFound:    "requested resource not found",

	ReasonInvalidCredentials:     "invalid credentials",
	ReasonTokenExpired:           "authentication token has expired",
	ReasonTokenInvalid:           "authentication token is invalid",
	ReasonAuthenticationRequired: "authentication is required",

	ReasonAccessDenied:        "access denied",
	ReasonOperationNotAllowed: "operation is not allowed",

	ReasonDuplicateEmail:         "email address is already registered",
	ReasonDuplicateAccountNumber: "account number already exists",
	ReasonDuplicateReference:     "reference has already been used",
	ReasonDuplicateEntry:         "record already exists",

	ReasonInsufficientFunds:   "insufficient funds for this operation",
	ReasonAccountFrozen:       "account is frozen",
	ReasonLimitExceeded:       "transaction limit exceeded",
	ReasonAlreadySettled:      "transaction has already been settled",
	ReasonSameAccountTransfer: "cannot transfer to the same account",

	ReasonExternalUnavailable: "external service is unavailable",
	ReasonExternalTimeout:     "external service timed out",
	ReasonCircuitOpen:         "circuit breaker is open",
	ReasonRateLimited:         "rate limit exceeded",

	ReasonInternalError:      "an internal error occurred",
	ReasonDatabaseError:      "a database error occurred",
	ReasonConfigurationError: "service is misconfigured",
	ReasonUnexpectedError:    "an unexpected error occurred",
}

// CategoryFor resolves a reason to its category. Unknown reasons fall back
// to CategorySystem; this function is total and never errors.
func CategoryFor(reason Reason) Category {
	if c, ok := categories[reason]; ok {
		return c
	}
	return CategorySystem
}

// PolicyFor returns the resilience policy for a category. Every category has
// an entry; unknown categories get the system policy.
func PolicyFor(category Category) Policy {
	if p, ok := policies[category]; ok {
		return p
	}
	return policies[CategorySystem]
}

// DefaultMessageFor returns the catalog message for a reason, or a generic
// message when the reason is unknown.
func DefaultMessageFor(reason Reason) string {
	if m, ok := messages[reason]; ok {
		return m
	}
	return messages[ReasonInternalError]
}

// IsKnown reports whether the reason is part of the catalog.
func IsKnown(reason Reason) bool {
	_, ok := categories[reason]
	return ok
}
