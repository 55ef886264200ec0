package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidDate   ErrorCode = "VALIDATION_004"
)

// Client error codes (CLIENT_*)
const (
	ClientNotFound  ErrorCode = "CLIENT_001"
	ClientInactive  ErrorCode = "CLIENT_002"
	ClientInvalidID ErrorCode = "CLIENT_003"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound          ErrorCode = "ACCOUNT_001"
	AccountAlreadyExists     ErrorCode = "ACCOUNT_002"
	AccountInsufficientFunds ErrorCode = "ACCOUNT_003"
	AccountInvalidAmount     ErrorCode = "ACCOUNT_004"
	AccountInvalidKind       ErrorCode = "ACCOUNT_005"
	AccountNotChecking       ErrorCode = "ACCOUNT_006"
)

// Transfer error codes (TRANSFER_*)
const (
	TransferSameAccount       ErrorCode = "TRANSFER_001"
	TransferInsufficientFunds ErrorCode = "TRANSFER_002"
	TransferInvalidAmount     ErrorCode = "TRANSFER_003"
)

// Term deposit error codes (DEPOSIT_*)
const (
	TermDepositNotFound      ErrorCode = "DEPOSIT_001"
	TermDepositNotMatured    ErrorCode = "DEPOSIT_002"
	TermDepositRedeemed      ErrorCode = "DEPOSIT_003"
	TermDepositInvalidAmount ErrorCode = "DEPOSIT_004"
	TermDepositInvalidTerm   ErrorCode = "DEPOSIT_005"
)

// Parameter error codes (PARAMS_*)
const (
	ParametersNotSeeded ErrorCode = "PARAMS_001"
	ParametersInvalid   ErrorCode = "PARAMS_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError     ErrorCode = "SYSTEM_001"
	SystemDatabaseError     ErrorCode = "SYSTEM_002"
	SystemRateLimitExceeded ErrorCode = "SYSTEM_003"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidDate:   "Invalid date format or range",

	// Client errors
	ClientNotFound:  "Client not found",
	ClientInactive:  "Client is inactive",
	ClientInvalidID: "Invalid client ID format",

	// Account errors
	AccountNotFound:          "Account not found",
	AccountAlreadyExists:     "Client already owns an account of this kind and category",
	AccountInsufficientFunds: "Insufficient account balance",
	AccountInvalidAmount:     "Amount must be positive",
	AccountInvalidKind:       "Invalid account kind or category",
	AccountNotChecking:       "Operation applies to checking accounts only",

	// Transfer errors
	TransferSameAccount:       "Cannot transfer to the same account",
	TransferInsufficientFunds: "Source account cannot cover amount plus fee",
	TransferInvalidAmount:     "Invalid transfer amount",

	// Term deposit errors
	TermDepositNotFound:      "Term deposit not found",
	TermDepositNotMatured:    "Term deposit has not reached its maturity date",
	TermDepositRedeemed:      "Term deposit was already redeemed",
	TermDepositInvalidAmount: "Principal must be positive and within the real balance",
	TermDepositInvalidTerm:   "Term must be at least one day",

	// Parameter errors
	ParametersNotSeeded: "Bank parameters are not configured",
	ParametersInvalid:   "Invalid bank parameter values",

	// System errors
	SystemInternalError:     "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:     "Database connection error",
	SystemRateLimitExceeded: "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code.
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
