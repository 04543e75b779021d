package repositories

import (
	"time"

	"conta-bancaria/internal/models"

	"github.com/google/uuid"
)

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	FindByID(id uuid.UUID) (*models.Account, error)
	FindActiveByNumber(number string) (*models.Account, error)
	FindActiveByCustomerID(customerID uuid.UUID) ([]models.Account, error)
	ListActive(offset, limit int) ([]models.Account, int64, error)
	ExistsActiveForCustomer(customerID uuid.UUID, accountType string) (bool, error)
	Save(account *models.Account) error
	SaveBoth(source, dest *models.Account) error
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByID(id uuid.UUID) (*models.User, error)
	FindActiveByID(id uuid.UUID) (*models.User, error)
	FindByCPF(cpf string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	ListActiveByRole(role string, offset, limit int) ([]*models.User, int64, error)
	Save(user *models.User) error
	Deactivate(id uuid.UUID) error
}

// PaymentRepositoryInterface defines the contract for payment repository operations
type PaymentRepositoryInterface interface {
	Create(payment *models.Payment) error
	FindByID(id uuid.UUID) (*models.Payment, error)
	FindByBoleto(boleto string) (*models.Payment, error)
	ListByAccountID(accountID uuid.UUID, offset, limit int) ([]models.Payment, int64, error)
	Save(payment *models.Payment) error
}

// FeeRepositoryInterface defines the contract for fee repository operations
type FeeRepositoryInterface interface {
	Create(fee *models.Fee) error
	FindByID(id uuid.UUID) (*models.Fee, error)
	FindByIDs(ids []uuid.UUID) ([]models.Fee, error)
	List() ([]models.Fee, error)
	Save(fee *models.Fee) error
	Delete(id uuid.UUID) error
}

// AuthCodeRepositoryInterface defines the contract for authentication code operations
type AuthCodeRepositoryInterface interface {
	Create(code *models.AuthCode) error
	FindValidByCode(customerID uuid.UUID, code string) (*models.AuthCode, error)
	Save(code *models.AuthCode) error
	DeleteExpired() (int64, error)
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	ListByUserID(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	ListByAction(action string, offset, limit int) ([]*models.AuditLog, int64, error)
	DeleteOlderThan(duration time.Duration) (int64, error)
}
