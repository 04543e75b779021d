package errors

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

// TestGetErrorMessage_ValidCode tests getting message for valid error codes
func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Auth Invalid Credentials",
			code:     AuthInvalidCredentials,
			expected: "Invalid CPF or password",
		},
		{
			name:     "Auth Missing Token",
			code:     AuthMissingToken,
			expected: "Authorization token is required",
		},
		{
			name:     "Validation General",
			code:     ValidationGeneral,
			expected: "Validation failed",
		},
		{
			name:     "Customer Not Found",
			code:     CustomerNotFound,
			expected: "Customer not found",
		},
		{
			name:     "Account Insufficient Funds",
			code:     AccountInsufficientFunds,
			expected: "Insufficient account balance",
		},
		{
			name:     "Account Same Transfer",
			code:     AccountSameTransfer,
			expected: "Cannot transfer to the same account",
		},
		{
			name:     "Payment Duplicate Boleto",
			code:     PaymentDuplicateBoleto,
			expected: "A payment for this boleto already exists",
		},
		{
			name:     "System Internal Error",
			code:     SystemInternalError,
			expected: "An unexpected error occurred. Please contact support with trace ID",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

// TestGetErrorMessage_UnknownCode tests the fallback for unregistered codes
func (s *CodesTestSuite) TestGetErrorMessage_UnknownCode() {
	s.Equal("An error occurred", GetErrorMessage(ErrorCode("BOGUS_999")))
}

// TestIsValidErrorCode tests error code registration checks
func (s *CodesTestSuite) TestIsValidErrorCode() {
	valid := []ErrorCode{
		AuthInvalidCredentials, AuthCodeInvalid,
		ValidationGeneral,
		CustomerInactive,
		ManagerNotFound, ManagerExists,
		AccountNotFound, AccountInvalidAmount, AccountWrongType,
		AccountUnknownType, AccountDuplicateType,
		PaymentNotFound, PaymentInvalid,
		FeeNotFound, FeeInvalid,
		SystemRateLimitExceeded,
	}
	for _, code := range valid {
		s.True(IsValidErrorCode(code), string(code))
	}

	s.False(IsValidErrorCode(ErrorCode("BOGUS_999")))
	s.False(IsValidErrorCode(ErrorCode("")))
}

// TestErrorCodePrefixes verifies codes stay within their domain prefix
func (s *CodesTestSuite) TestErrorCodePrefixes() {
	s.Contains(string(AuthCodeExpired), "AUTH_")
	s.Contains(string(CustomerNotFound), "CUSTOMER_")
	s.Contains(string(ManagerExists), "MANAGER_")
	s.Contains(string(AccountDuplicateType), "ACCOUNT_")
	s.Contains(string(PaymentDuplicateBoleto), "PAYMENT_")
	s.Contains(string(FeeInvalid), "FEE_")
	s.Contains(string(SystemDatabaseError), "SYSTEM_")
}
