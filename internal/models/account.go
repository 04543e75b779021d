package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// Account type tags as they appear on the wire and in the
	// discriminator column. Registration accepts them case-insensitively.
	AccountTypeChecking = "CORRENTE"
	AccountTypeSavings  = "POUPANCA"
)

// Default parameters assigned to newly registered accounts.
var (
	DefaultCheckingFeeRate     = decimal.RequireFromString("0.05")
	DefaultCheckingOverdraft   = decimal.RequireFromString("500.00")
	DefaultSavingsInterestRate = decimal.RequireFromString("0.01")
)

var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	ErrWrongAccountType    = errors.New("operation not valid for this account type")
	ErrUnknownAccountType  = errors.New("unknown account type")
	ErrInvalidBalance      = errors.New("balance cannot be negative")
)

// Account represents a bank account. Checking and savings accounts share
// this struct; AccountType discriminates and decides which of the extra
// parameter fields are meaningful.
type Account struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Number      string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"number"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	AccountType string          `gorm:"type:varchar(20);not null" json:"account_type"`
	Balance     decimal.Decimal `gorm:"type:decimal(19,2);not null;default:0" json:"balance"`
	Active      bool            `gorm:"not null;default:true" json:"active"`

	// Checking parameters. Overdraft is modeled but withdrawals stay
	// balance-bounded; see Withdraw.
	OverdraftLimit decimal.Decimal `gorm:"type:decimal(19,2);default:0" json:"overdraft_limit,omitempty"`
	FeeRate        decimal.Decimal `gorm:"type:decimal(9,4);default:0" json:"fee_rate,omitempty"`

	// Savings parameter.
	InterestRate decimal.Decimal `gorm:"type:decimal(9,4);default:0" json:"interest_rate,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	Customer User      `gorm:"foreignKey:CustomerID" json:"-"`
	Payments []Payment `gorm:"foreignKey:AccountID" json:"-"`
}

// NewAccountFromType builds an account for the given type tag with the
// default parameters for that type. The tag is matched case-insensitively;
// anything outside the closed set fails with ErrUnknownAccountType, and a
// negative initial balance fails with ErrInvalidBalance.
func NewAccountFromType(typeTag, number string, customerID uuid.UUID, initialBalance decimal.Decimal) (*Account, error) {
	accountType, err := NormalizeAccountType(typeTag)
	if err != nil {
		return nil, err
	}

	if initialBalance.IsNegative() {
		return nil, ErrInvalidBalance
	}

	account := &Account{
		Number:      number,
		CustomerID:  customerID,
		AccountType: accountType,
		Balance:     initialBalance,
		Active:      true,
	}

	switch accountType {
	case AccountTypeChecking:
		account.FeeRate = DefaultCheckingFeeRate
		account.OverdraftLimit = DefaultCheckingOverdraft
	case AccountTypeSavings:
		account.InterestRate = DefaultSavingsInterestRate
	}

	return account, nil
}

// NormalizeAccountType maps a case-insensitive type tag to its canonical
// form, or fails with ErrUnknownAccountType.
func NormalizeAccountType(typeTag string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(typeTag)) {
	case AccountTypeChecking:
		return AccountTypeChecking, nil
	case AccountTypeSavings:
		return AccountTypeSavings, nil
	default:
		return "", ErrUnknownAccountType
	}
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.CustomerID == uuid.Nil {
		return errors.New("customer ID is required")
	}

	if a.Number == "" {
		return errors.New("account number is required")
	}

	if !IsValidAccountType(a.AccountType) {
		return ErrUnknownAccountType
	}

	if a.Balance.IsNegative() {
		return ErrInvalidBalance
	}

	if a.OverdraftLimit.IsNegative() || a.FeeRate.IsNegative() || a.InterestRate.IsNegative() {
		return errors.New("account rates and limits cannot be negative")
	}

	return nil
}

// Withdraw removes the amount from the balance. The amount must be
// strictly positive and no greater than the current balance; on failure
// the balance is untouched.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Deposit adds the amount to the balance. The amount must be strictly
// positive.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	a.Balance = a.Balance.Add(amount)
	return nil
}

// TransferTo moves the amount from this account to dest: the source is
// withdrawn first, the destination credited second. A failed withdrawal
// aborts before the destination is touched, and once the withdrawal
// succeeds the deposit cannot fail (the amount is already known positive).
func (a *Account) TransferTo(amount decimal.Decimal, dest *Account) error {
	if a.ID == dest.ID {
		return ErrSameAccountTransfer
	}

	if err := a.Withdraw(amount); err != nil {
		return err
	}

	return dest.Deposit(amount)
}

// ApplyInterest compounds the savings interest rate into the balance,
// rounded half-even to 2 decimal places. Calling it on a checking account
// fails with ErrWrongAccountType.
func (a *Account) ApplyInterest() error {
	if a.AccountType != AccountTypeSavings {
		return ErrWrongAccountType
	}

	earned := a.Balance.Mul(a.InterestRate).RoundBank(2)
	a.Balance = a.Balance.Add(earned)
	return nil
}

// CanWithdraw reports whether the amount could be withdrawn right now.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return a.Active && amount.GreaterThan(decimal.Zero) && amount.LessThanOrEqual(a.Balance)
}

// IsChecking returns true for checking accounts
func (a *Account) IsChecking() bool {
	return a.AccountType == AccountTypeChecking
}

// IsSavings returns true for savings accounts
func (a *Account) IsSavings() bool {
	return a.AccountType == AccountTypeSavings
}

// Deactivate soft-deletes the account. Accounts are never hard-deleted.
func (a *Account) Deactivate() {
	a.Active = false
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeChecking, AccountTypeSavings:
		return true
	default:
		return false
	}
}
