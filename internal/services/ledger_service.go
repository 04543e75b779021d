package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrCustomerInactive     = errors.New("customer is deactivated")
	ErrDuplicateAccountType = errors.New("customer already holds an active account of this type")

	// Domain rule violations surface from the model layer; the service
	// re-exports them so callers depend on one package.
	ErrInvalidAmount       = models.ErrInvalidAmount
	ErrInsufficientFunds   = models.ErrInsufficientFunds
	ErrSameAccountTransfer = models.ErrSameAccountTransfer
	ErrWrongAccountType    = models.ErrWrongAccountType
	ErrUnknownAccountType  = models.ErrUnknownAccountType
)

// ledgerService implements LedgerServiceInterface. Every operation
// resolves accounts by number among active rows, applies the domain rule
// on the model and persists the outcome before reporting a summary.
type ledgerService struct {
	accountRepo repositories.AccountRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	auditRepo   repositories.AuditLogRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewLedgerService creates the account ledger service
func NewLedgerService(
	accountRepo repositories.AccountRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// RegisterAccount opens an account of the requested variant for a
// customer. The type tag decides the variant and its default parameters;
// a customer may hold at most one active account per variant.
func (s *ledgerService) RegisterAccount(customerID uuid.UUID, typeTag, number string, initialBalance decimal.Decimal) (*dto.AccountSummary, error) {
	customer, err := s.userRepo.FindActiveByID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}

	account, err := models.NewAccountFromType(typeTag, number, customer.ID, initialBalance)
	if err != nil {
		return nil, err
	}

	exists, err := s.accountRepo.ExistsActiveForCustomer(customer.ID, account.AccountType)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing accounts: %w", err)
	}
	if exists {
		return nil, ErrDuplicateAccountType
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.recordAudit(&customer.ID, models.AuditActionAccountRegistered, account, models.JSONBMap{
		"account_type": account.AccountType,
		"number":       account.Number,
	})
	s.metrics.IncrementCounter("account_registered", map[string]string{
		"account_type": account.AccountType,
	})
	s.logger.Info("account registered",
		"number", account.Number,
		"account_type", account.AccountType,
		"customer_id", customer.ID.String(),
	)

	return dto.NewAccountSummary(account), nil
}

// GetAccount reports the summary of an active account
func (s *ledgerService) GetAccount(number string) (*dto.AccountSummary, error) {
	account, err := s.resolve(number)
	if err != nil {
		return nil, err
	}
	return dto.NewAccountSummary(account), nil
}

// ListAccounts reports summaries of all active accounts
func (s *ledgerService) ListAccounts(offset, limit int) ([]dto.AccountSummary, int64, error) {
	accounts, total, err := s.accountRepo.ListActive(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	return dto.NewAccountSummaries(accounts), total, nil
}

// Withdraw removes funds from an account
func (s *ledgerService) Withdraw(number string, amount decimal.Decimal) (*dto.AccountSummary, error) {
	start := time.Now()

	account, err := s.resolve(number)
	if err != nil {
		return nil, err
	}

	if err := account.Withdraw(amount); err != nil {
		s.metrics.IncrementCounter("ledger_operation_rejected", map[string]string{
			"operation": "withdraw",
		})
		return nil, err
	}

	if err := s.accountRepo.Save(account); err != nil {
		return nil, fmt.Errorf("failed to persist withdrawal: %w", err)
	}

	s.recordAudit(nil, models.AuditActionWithdraw, account, models.JSONBMap{
		"amount":  amount.String(),
		"balance": account.Balance.String(),
	})
	s.recordOperation("withdraw", start)
	s.logger.Info("withdrawal applied",
		"number", account.Number,
		"amount", amount.String(),
		"balance", account.Balance.String(),
	)

	return dto.NewAccountSummary(account), nil
}

// Deposit adds funds to an account
func (s *ledgerService) Deposit(number string, amount decimal.Decimal) (*dto.AccountSummary, error) {
	start := time.Now()

	account, err := s.resolve(number)
	if err != nil {
		return nil, err
	}

	if err := account.Deposit(amount); err != nil {
		s.metrics.IncrementCounter("ledger_operation_rejected", map[string]string{
			"operation": "deposit",
		})
		return nil, err
	}

	if err := s.accountRepo.Save(account); err != nil {
		return nil, fmt.Errorf("failed to persist deposit: %w", err)
	}

	s.recordAudit(nil, models.AuditActionDeposit, account, models.JSONBMap{
		"amount":  amount.String(),
		"balance": account.Balance.String(),
	})
	s.recordOperation("deposit", start)
	s.logger.Info("deposit applied",
		"number", account.Number,
		"amount", amount.String(),
		"balance", account.Balance.String(),
	)

	return dto.NewAccountSummary(account), nil
}

// Transfer moves funds between two active accounts. The source is
// withdrawn before the destination is credited, and both rows are
// persisted in one database transaction.
func (s *ledgerService) Transfer(sourceNumber, destNumber string, amount decimal.Decimal) (*dto.TransferResult, error) {
	start := time.Now()

	source, err := s.resolve(sourceNumber)
	if err != nil {
		return nil, err
	}

	dest, err := s.resolve(destNumber)
	if err != nil {
		return nil, err
	}

	if err := source.TransferTo(amount, dest); err != nil {
		s.metrics.IncrementCounter("ledger_operation_rejected", map[string]string{
			"operation": "transfer",
		})
		return nil, err
	}

	if err := s.accountRepo.SaveBoth(source, dest); err != nil {
		return nil, fmt.Errorf("failed to persist transfer: %w", err)
	}

	s.recordAudit(nil, models.AuditActionTransfer, source, models.JSONBMap{
		"amount":      amount.String(),
		"destination": dest.Number,
	})
	s.recordOperation("transfer", start)
	s.logger.Info("transfer applied",
		"source", source.Number,
		"destination", dest.Number,
		"amount", amount.String(),
	)

	return &dto.TransferResult{
		Source:      dto.NewAccountSummary(source),
		Destination: dto.NewAccountSummary(dest),
		Amount:      amount,
	}, nil
}

// ApplyInterest compounds one interest period into a savings balance.
// Checking accounts reject the operation.
func (s *ledgerService) ApplyInterest(number string) (*dto.AccountSummary, error) {
	start := time.Now()

	account, err := s.resolve(number)
	if err != nil {
		return nil, err
	}

	if err := account.ApplyInterest(); err != nil {
		s.metrics.IncrementCounter("ledger_operation_rejected", map[string]string{
			"operation": "apply_interest",
		})
		return nil, err
	}

	if err := s.accountRepo.Save(account); err != nil {
		return nil, fmt.Errorf("failed to persist interest: %w", err)
	}

	s.recordAudit(nil, models.AuditActionInterestApplied, account, models.JSONBMap{
		"interest_rate": account.InterestRate.String(),
		"balance":       account.Balance.String(),
	})
	s.recordOperation("apply_interest", start)
	s.logger.Info("interest applied",
		"number", account.Number,
		"rate", account.InterestRate.String(),
		"balance", account.Balance.String(),
	)

	return dto.NewAccountSummary(account), nil
}

// UpdateParameters overwrites managed account parameters through the
// privileged write path. Parameters that do not belong to the account's
// variant are rejected rather than silently ignored.
func (s *ledgerService) UpdateParameters(number string, req dto.UpdateAccountParametersRequest) (*dto.AccountSummary, error) {
	account, err := s.resolve(number)
	if err != nil {
		return nil, err
	}

	if req.InterestRate != nil && !account.IsSavings() {
		return nil, ErrWrongAccountType
	}
	if (req.FeeRate != nil || req.OverdraftLimit != nil) && !account.IsChecking() {
		return nil, ErrWrongAccountType
	}

	changed := models.JSONBMap{}

	if req.Balance != nil {
		balance, err := parseAmountField(*req.Balance)
		if err != nil {
			return nil, err
		}
		if balance.IsNegative() {
			return nil, models.ErrInvalidBalance
		}
		account.Balance = balance
		changed["balance"] = balance.String()
	}
	if req.FeeRate != nil {
		rate, err := parseAmountField(*req.FeeRate)
		if err != nil || rate.IsNegative() {
			return nil, ErrInvalidAmount
		}
		account.FeeRate = rate
		changed["fee_rate"] = rate.String()
	}
	if req.OverdraftLimit != nil {
		limit, err := parseAmountField(*req.OverdraftLimit)
		if err != nil || limit.IsNegative() {
			return nil, ErrInvalidAmount
		}
		account.OverdraftLimit = limit
		changed["overdraft_limit"] = limit.String()
	}
	if req.InterestRate != nil {
		rate, err := parseAmountField(*req.InterestRate)
		if err != nil || rate.IsNegative() {
			return nil, ErrInvalidAmount
		}
		account.InterestRate = rate
		changed["interest_rate"] = rate.String()
	}

	if err := s.accountRepo.Save(account); err != nil {
		return nil, fmt.Errorf("failed to persist parameters: %w", err)
	}

	s.recordAudit(nil, models.AuditActionAccountUpdated, account, changed)
	s.logger.Info("account parameters updated", "number", account.Number)

	return dto.NewAccountSummary(account), nil
}

// CloseAccount deactivates an account. The row and its balance survive,
// but the number stops resolving for ledger operations.
func (s *ledgerService) CloseAccount(number string) error {
	account, err := s.resolve(number)
	if err != nil {
		return err
	}

	account.Deactivate()
	if err := s.accountRepo.Save(account); err != nil {
		return fmt.Errorf("failed to close account: %w", err)
	}

	s.recordAudit(nil, models.AuditActionAccountClosed, account, nil)
	s.logger.Info("account closed", "number", account.Number)

	return nil
}

func (s *ledgerService) resolve(number string) (*models.Account, error) {
	account, err := s.accountRepo.FindActiveByNumber(number)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	return account, nil
}

func (s *ledgerService) recordAudit(userID *uuid.UUID, action string, account *models.Account, metadata models.JSONBMap) {
	if err := s.auditRepo.Create(&models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   "account",
		ResourceID: account.Number,
		IPAddress:  "system",
		UserAgent:  "internal",
		Metadata:   metadata,
	}); err != nil {
		s.logger.Error("failed to create audit log", "error", err, "action", action)
	}
}

func (s *ledgerService) recordOperation(operation string, start time.Time) {
	s.metrics.IncrementCounter("ledger_operation_applied", map[string]string{
		"operation": operation,
	})
	s.metrics.RecordProcessingTime("ledger_operation", time.Since(start))
}

func parseAmountField(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return value, nil
}
