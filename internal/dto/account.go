package dto

import (
	"conta-bancaria/internal/models"

	"github.com/shopspring/decimal"
)

// Account Request DTOs

// RegisterAccountRequest represents the request payload for opening an account
type RegisterAccountRequest struct {
	CustomerID     string `json:"customer_id" validate:"required,uuid"`
	AccountType    string `json:"account_type" validate:"required,account_type"`
	Number         string `json:"number" validate:"required,account_number"`
	InitialBalance string `json:"initial_balance,omitempty" validate:"omitempty,amount"`
}

// AmountRequest represents the request payload for withdrawals and deposits
type AmountRequest struct {
	Amount string `json:"amount" validate:"required,amount"`
}

// TransferRequest represents the request payload for transferring funds between accounts
type TransferRequest struct {
	DestinationNumber string `json:"destination_number" validate:"required,account_number"`
	Amount            string `json:"amount" validate:"required,amount"`
}

// UpdateAccountParametersRequest carries the managed account parameters.
// Fields are pointers so absent values leave the current ones untouched.
type UpdateAccountParametersRequest struct {
	Balance        *string `json:"balance,omitempty" validate:"omitempty,amount"`
	FeeRate        *string `json:"fee_rate,omitempty" validate:"omitempty,amount"`
	OverdraftLimit *string `json:"overdraft_limit,omitempty" validate:"omitempty,amount"`
	InterestRate   *string `json:"interest_rate,omitempty" validate:"omitempty,amount"`
}

// Account Response DTOs

// AccountSummary is the public view of an account returned by every
// ledger operation: number, variant tag and current balance.
type AccountSummary struct {
	Number      string          `json:"number"`
	AccountType string          `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
}

// NewAccountSummary builds a summary from an account record
func NewAccountSummary(account *models.Account) *AccountSummary {
	return &AccountSummary{
		Number:      account.Number,
		AccountType: account.AccountType,
		Balance:     account.Balance,
	}
}

// NewAccountSummaries builds summaries for a slice of accounts
func NewAccountSummaries(accounts []models.Account) []AccountSummary {
	summaries := make([]AccountSummary, 0, len(accounts))
	for i := range accounts {
		summaries = append(summaries, *NewAccountSummary(&accounts[i]))
	}
	return summaries
}

// TransferResult carries both sides of a completed transfer
type TransferResult struct {
	Source      *AccountSummary `json:"source"`
	Destination *AccountSummary `json:"destination"`
	Amount      decimal.Decimal `json:"amount"`
}

// AccountListResponse represents a paginated list of account summaries
type AccountListResponse struct {
	Accounts []AccountSummary `json:"accounts"`
	Total    int64            `json:"total"`
	Offset   int              `json:"offset"`
	Limit    int              `json:"limit"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
