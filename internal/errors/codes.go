package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthCodeExpired            ErrorCode = "AUTH_006"
	AuthCodeInvalid            ErrorCode = "AUTH_007"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
)

// Customer error codes (CUSTOMER_*)
const (
	CustomerNotFound ErrorCode = "CUSTOMER_001"
	CustomerInactive ErrorCode = "CUSTOMER_002"
)

// Manager error codes (MANAGER_*)
const (
	ManagerNotFound ErrorCode = "MANAGER_001"
	ManagerExists   ErrorCode = "MANAGER_002"
)

// Account and ledger error codes (ACCOUNT_*)
const (
	AccountNotFound          ErrorCode = "ACCOUNT_001"
	AccountInvalidAmount     ErrorCode = "ACCOUNT_002"
	AccountInsufficientFunds ErrorCode = "ACCOUNT_003"
	AccountSameTransfer      ErrorCode = "ACCOUNT_004"
	AccountWrongType         ErrorCode = "ACCOUNT_005"
	AccountUnknownType       ErrorCode = "ACCOUNT_006"
	AccountDuplicateType     ErrorCode = "ACCOUNT_007"
)

// Payment error codes (PAYMENT_*)
const (
	PaymentNotFound        ErrorCode = "PAYMENT_001"
	PaymentInvalid         ErrorCode = "PAYMENT_002"
	PaymentDuplicateBoleto ErrorCode = "PAYMENT_003"
)

// Fee error codes (FEE_*)
const (
	FeeNotFound ErrorCode = "FEE_001"
	FeeInvalid  ErrorCode = "FEE_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials:     "Invalid CPF or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",
	AuthCodeExpired:            "Authentication code has expired",
	AuthCodeInvalid:            "Authentication code is invalid",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",

	// Customer errors
	CustomerNotFound: "Customer not found",
	CustomerInactive: "Customer is inactive",

	// Manager errors
	ManagerNotFound: "Manager not found",
	ManagerExists:   "CPF or email already registered to another user",

	// Account and ledger errors
	AccountNotFound:          "Account not found or inactive",
	AccountInvalidAmount:     "Amount must be greater than zero",
	AccountInsufficientFunds: "Insufficient account balance",
	AccountSameTransfer:      "Cannot transfer to the same account",
	AccountWrongType:         "Operation not valid for this account type",
	AccountUnknownType:       "Unknown account type",
	AccountDuplicateType:     "Customer already has an active account of this type",

	// Payment errors
	PaymentNotFound:        "Payment not found",
	PaymentInvalid:         "Invalid payment",
	PaymentDuplicateBoleto: "A payment for this boleto already exists",

	// Fee errors
	FeeNotFound: "Fee not found",
	FeeInvalid:  "Invalid fee",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
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
