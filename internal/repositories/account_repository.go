package repositories

import (
	"errors"
	"fmt"

	"conta-bancaria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNumberExists = errors.New("account number already exists")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{db: db}
}

// Create persists a new account
func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAccountNumberExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// FindByID retrieves an account regardless of its active flag
func (r *accountRepository) FindByID(id uuid.UUID) (*models.Account, error) {
	account := &models.Account{ID: id}
	if err := r.db.First(account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// FindActiveByNumber resolves an account by its number. Deactivated
// accounts are invisible to every ledger operation, so the lookup is
// scoped to active rows.
func (r *accountRepository) FindActiveByNumber(number string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("number = ? AND active = ?", number, true).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}
	return &account, nil
}

// FindActiveByCustomerID retrieves all active accounts held by a customer
func (r *accountRepository) FindActiveByCustomerID(customerID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("customer_id = ? AND active = ?", customerID, true).
		Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for customer: %w", err)
	}
	return accounts, nil
}

// ListActive retrieves active accounts with pagination
func (r *accountRepository) ListActive(offset, limit int) ([]models.Account, int64, error) {
	var accounts []models.Account
	var total int64

	query := r.db.Model(&models.Account{}).Where("active = ?", true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).
		Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, total, nil
}

// ExistsActiveForCustomer reports whether the customer already holds an
// active account of the given variant. One checking plus one savings per
// customer is the ceiling.
func (r *accountRepository) ExistsActiveForCustomer(customerID uuid.UUID, accountType string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).
		Where("customer_id = ? AND account_type = ? AND active = ?",
			customerID, accountType, true).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return count > 0, nil
}

// Save persists changes to an existing account
func (r *accountRepository) Save(account *models.Account) error {
	if err := r.db.Save(account).Error; err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// SaveBoth persists a transfer's two mutated accounts in a single
// database transaction so a crash cannot leave the withdrawal durable
// without the matching deposit.
func (r *accountRepository) SaveBoth(source, dest *models.Account) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(source).Error; err != nil {
			return fmt.Errorf("failed to save source account: %w", err)
		}
		if err := tx.Save(dest).Error; err != nil {
			return fmt.Errorf("failed to save destination account: %w", err)
		}
		return nil
	})
}
