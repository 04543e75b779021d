package handlers

import (
	"net/http"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/errors"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account and ledger HTTP requests
type AccountHandler struct {
	ledgerService services.LedgerServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(ledgerService services.LedgerServiceInterface) *AccountHandler {
	return &AccountHandler{ledgerService: ledgerService}
}

// RegisterAccount opens an account for an existing customer
// @Summary Register a new account
// @Description Open a checking (CORRENTE) or savings (POUPANCA) account for a customer. The type tag is case-insensitive. A customer holds at most one active account per type.
// @Tags Accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RegisterAccountRequest true "Account registration details"
// @Success 201 {object} dto.AccountSummary "Account registered"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Failure 409 {object} errors.ErrorResponse "ACCOUNT_007 - Customer already holds this account type"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts [post]
func (h *AccountHandler) RegisterAccount(c echo.Context) error {
	var req dto.RegisterAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid customer ID"))
	}

	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		initialBalance, err = decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid initial balance"))
		}
	}

	summary, err := h.ledgerService.RegisterAccount(customerID, req.AccountType, req.Number, initialBalance)
	if err != nil {
		switch err {
		case services.ErrCustomerNotFound:
			return SendError(c, errors.CustomerNotFound)
		case services.ErrCustomerInactive:
			return SendError(c, errors.CustomerInactive)
		case services.ErrUnknownAccountType:
			return SendError(c, errors.AccountUnknownType)
		case services.ErrDuplicateAccountType:
			return SendError(c, errors.AccountDuplicateType)
		case models.ErrInvalidBalance:
			return SendError(c, errors.AccountInvalidAmount, errors.WithDetails("Initial balance cannot be negative"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, summary)
}

// GetAccount retrieves an account summary by number
// @Summary Get account by number
// @Description Retrieve the summary (number, type, balance) of an active account
// @Tags Accounts
// @Security BearerAuth
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} dto.AccountSummary "Account summary"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts/{number} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	summary, err := h.ledgerService.GetAccount(c.Param("number"))
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// ListAccounts retrieves active accounts with pagination
// @Summary List accounts
// @Description Retrieve summaries of all active accounts
// @Tags Accounts
// @Security BearerAuth
// @Produce json
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.AccountListResponse "Account summaries"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	offset, limit := getPagination(c)

	summaries, total, err := h.ledgerService.ListAccounts(offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: summaries,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	})
}

// Withdraw debits an amount from an account
// @Summary Withdraw from an account
// @Description Debit a positive amount no greater than the current balance
// @Tags Ledger
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param number path string true "Account number"
// @Param request body dto.AmountRequest true "Amount to withdraw"
// @Success 200 {object} dto.AccountSummary "Updated account summary"
// @Failure 400 {object} errors.ErrorResponse "ACCOUNT_002 - Amount must be greater than zero"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_003 - Insufficient balance"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts/{number}/withdraw [post]
func (h *AccountHandler) Withdraw(c echo.Context) error {
	return h.handleAmountOperation(c, h.ledgerService.Withdraw)
}

// Deposit credits an amount to an account
// @Summary Deposit into an account
// @Description Credit a positive amount to an active account
// @Tags Ledger
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param number path string true "Account number"
// @Param request body dto.AmountRequest true "Amount to deposit"
// @Success 200 {object} dto.AccountSummary "Updated account summary"
// @Failure 400 {object} errors.ErrorResponse "ACCOUNT_002 - Amount must be greater than zero"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts/{number}/deposit [post]
func (h *AccountHandler) Deposit(c echo.Context) error {
	return h.handleAmountOperation(c, h.ledgerService.Deposit)
}

// Transfer moves an amount between two accounts
// @Summary Transfer between accounts
// @Description Withdraw from the source account and deposit into the destination atomically. Transfers to the same account are rejected.
// @Tags Ledger
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param number path string true "Source account number"
// @Param request body dto.TransferRequest true "Destination and amount"
// @Success 200 {object} dto.TransferResult "Source and destination summaries"
// @Failure 400 {object} errors.ErrorResponse "ACCOUNT_004 - Transfer to the same account"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_003 - Insufficient balance"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts/{number}/transfer [post]
func (h *AccountHandler) Transfer(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.AccountInvalidAmount)
	}

	result, err := h.ledgerService.Transfer(c.Param("number"), req.DestinationNumber, amount)
	if err != nil {
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// ApplyInterest compounds interest into a savings account
// @Summary Apply interest
// @Description Compound the configured interest rate into a savings account balance. Checking accounts are rejected.
// @Tags Ledger
// @Security BearerAuth
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} dto.AccountSummary "Updated account summary"
// @Failure 400 {object} errors.ErrorResponse "ACCOUNT_005 - Not a savings account"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts/{number}/interest [post]
func (h *AccountHandler) ApplyInterest(c echo.Context) error {
	summary, err := h.ledgerService.ApplyInterest(c.Param("number"))
	if err != nil {
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// UpdateParameters updates account parameters through the privileged path
// @Summary Update account parameters
// @Description Manager-only update of balance, fee rate, overdraft limit or interest rate. Parameters must match the account type.
// @Tags Accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param number path string true "Account number"
// @Param request body dto.UpdateAccountParametersRequest true "Parameters to update"
// @Success 200 {object} dto.AccountSummary "Updated account summary"
// @Failure 400 {object} errors.ErrorResponse "ACCOUNT_005 - Parameter not valid for this account type"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts/{number}/parameters [patch]
func (h *AccountHandler) UpdateParameters(c echo.Context) error {
	var req dto.UpdateAccountParametersRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	summary, err := h.ledgerService.UpdateParameters(c.Param("number"), req)
	if err != nil {
		if err == models.ErrInvalidBalance {
			return SendError(c, errors.AccountInvalidAmount, errors.WithDetails("Balance cannot be negative"))
		}
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// CloseAccount deactivates an account
// @Summary Close an account
// @Description Deactivate an account. The row and its balance are kept; the number no longer resolves for ledger operations.
// @Tags Accounts
// @Security BearerAuth
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} dto.MessageResponse "Account closed"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts/{number} [delete]
func (h *AccountHandler) CloseAccount(c echo.Context) error {
	if err := h.ledgerService.CloseAccount(c.Param("number")); err != nil {
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account closed successfully"})
}

// handleAmountOperation binds a single-amount request and runs the given
// ledger operation against the account in the path.
func (h *AccountHandler) handleAmountOperation(
	c echo.Context,
	operation func(number string, amount decimal.Decimal) (*dto.AccountSummary, error),
) error {
	var req dto.AmountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.AccountInvalidAmount)
	}

	summary, err := operation(c.Param("number"), amount)
	if err != nil {
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// sendLedgerError maps ledger sentinels to their API error codes
func (h *AccountHandler) sendLedgerError(c echo.Context, err error) error {
	switch err {
	case services.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case services.ErrInvalidAmount:
		return SendError(c, errors.AccountInvalidAmount)
	case services.ErrInsufficientFunds:
		return SendError(c, errors.AccountInsufficientFunds)
	case services.ErrSameAccountTransfer:
		return SendError(c, errors.AccountSameTransfer)
	case services.ErrWrongAccountType:
		return SendError(c, errors.AccountWrongType)
	default:
		return SendSystemError(c, err)
	}
}
