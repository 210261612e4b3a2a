package errs

// Reason is the fine-grained taxonomy key for a specific failure cause.
// Reasons are a closed set; anything outside it resolves to the system
// category via the catalog rather than failing classification.
type Reason string

// Reason implements error so operations can fail with a bare reason and
// have Execute normalize it into a full Record.
func (r Reason) Error() string { return string(r) }

// Validation reasons.
const (
	ReasonMissingFields         Reason = "missing_fields"
	ReasonInvalidEmailFormat    Reason = "invalid_email_format"
	ReasonInvalidAmountFormat   Reason = "invalid_amount_format"
	ReasonInvalidAccountFormat  Reason = "invalid_account_number_format"
	ReasonInvalidNameFormat     Reason = "invalid_name_format"
	ReasonInvalidPasswordFormat Reason = "invalid_password_format"
	ReasonEmailTooLong          Reason = "email_too_long"
	ReasonNameTooLong           Reason = "name_too_long"
	ReasonPasswordTooShort      Reason = "password_too_short"
	ReasonReferenceTooLong      Reason = "reference_too_long"
	ReasonInvalidStatus         Reason = "invalid_status"
	ReasonInvalidRole           Reason = "invalid_role"
	ReasonInvalidDirection      Reason = "invalid_direction"
)

// Not-found reasons.
const (
	ReasonAccountNotFound     Reason = "account_not_found"
	ReasonTransactionNotFound Reason = "transaction_not_found"
	ReasonUserNotFound        Reason = "user_not_found"
	ReasonResourceNotFound    Reason = "resource_not_found"
)

// Authentication reasons.
const (
	ReasonInvalidCredentials     Reason = "invalid_credentials"
	ReasonTokenExpired           Reason = "token_expired"
	ReasonTokenInvalid           Reason = "token_invalid"
	ReasonAuthenticationRequired Reason = "authentication_required"
)

// Authorization reasons.
const (
	ReasonAccessDenied        Reason = "access_denied"
	ReasonOperationNotAllowed Reason = "operation_not_allowed"
)

// Conflict reasons.
const (
	ReasonDuplicateEmail         Reason = "duplicate_email"
	ReasonDuplicateAccountNumber Reason = "duplicate_account_number"
	ReasonDuplicateReference     Reason = "duplicate_reference"
	ReasonDuplicateEntry         Reason = "duplicate_entry"
)

// Business-rule reasons.
const (
	ReasonInsufficientFunds   Reason = "insufficient_funds"
	ReasonAccountFrozen       Reason = "account_frozen"
	ReasonLimitExceeded       Reason = "limit_exceeded"
	ReasonAlreadySettled      Reason = "transaction_already_settled"
	ReasonSameAccountTransfer Reason = "same_account_transfer"
)

// External dependency reasons.
const (
	ReasonExternalUnavailable Reason = "external_service_unavailable"
	ReasonExternalTimeout     Reason = "external_service_timeout"
	ReasonCircuitOpen         Reason = "circuit_open"
	ReasonRateLimited         Reason = "rate_limited"
)

// System reasons.
const (
	ReasonInternalError      Reason = "internal_error"
	ReasonDatabaseError      Reason = "database_error"
	ReasonConfigurationError Reason = "configuration_error"
	ReasonUnexpectedError    Reason = "unexpected_error"
)
