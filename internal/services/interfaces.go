package services

import (
	"time"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerServiceInterface defines the contract for account ledger operations
type LedgerServiceInterface interface {
	RegisterAccount(customerID uuid.UUID, typeTag, number string, initialBalance decimal.Decimal) (*dto.AccountSummary, error)
	GetAccount(number string) (*dto.AccountSummary, error)
	ListAccounts(offset, limit int) ([]dto.AccountSummary, int64, error)
	Withdraw(number string, amount decimal.Decimal) (*dto.AccountSummary, error)
	Deposit(number string, amount decimal.Decimal) (*dto.AccountSummary, error)
	Transfer(sourceNumber, destNumber string, amount decimal.Decimal) (*dto.TransferResult, error)
	ApplyInterest(number string) (*dto.AccountSummary, error)
	UpdateParameters(number string, req dto.UpdateAccountParametersRequest) (*dto.AccountSummary, error)
	CloseAccount(number string) error
}

// CustomerServiceInterface defines the contract for customer lifecycle operations
type CustomerServiceInterface interface {
	Register(req dto.RegisterCustomerRequest) (*models.User, []dto.AccountSummary, error)
	GetCustomer(id uuid.UUID) (*models.User, error)
	GetCustomerByCPF(cpf string) (*models.User, error)
	GetCustomerAccounts(id uuid.UUID) ([]dto.AccountSummary, error)
	ListCustomers(offset, limit int) ([]*models.User, int64, error)
	UpdateCustomer(id uuid.UUID, req dto.UpdateCustomerRequest) (*models.User, error)
	Deactivate(id uuid.UUID) error
}

// ManagerServiceInterface defines the contract for staff user administration
type ManagerServiceInterface interface {
	RegisterManager(req dto.RegisterManagerRequest) (*models.User, error)
	GetManager(id uuid.UUID) (*models.User, error)
	ListManagers(offset, limit int) ([]*models.User, int64, error)
	UpdateManager(id uuid.UUID, req dto.UpdateManagerRequest) (*models.User, error)
	DeactivateManager(id uuid.UUID) error
	EnsureAdmin(name, cpf, email, password string) error
}

// PaymentServiceInterface defines the contract for boleto payment operations
type PaymentServiceInterface interface {
	PayBoleto(accountNumber string, req dto.PayBoletoRequest) (*models.Payment, error)
	GetPayment(id uuid.UUID) (*models.Payment, error)
	ListPayments(accountNumber string, offset, limit int) ([]models.Payment, int64, error)
}

// FeeServiceInterface defines the contract for fee catalog operations
type FeeServiceInterface interface {
	CreateFee(req dto.FeeRequest) (*models.Fee, error)
	GetFee(id uuid.UUID) (*models.Fee, error)
	ListFees() ([]models.Fee, error)
	UpdateFee(id uuid.UUID, req dto.FeeRequest) (*models.Fee, error)
	DeleteFee(id uuid.UUID) error
}

// AuthServiceInterface defines the contract for authentication operations
type AuthServiceInterface interface {
	Login(cpf, password, ipAddress string) (*models.AuthCode, error)
	ValidateCode(cpf, code, ipAddress string) (*dto.TokenResponse, error)
}

// TokenServiceInterface defines the contract for JWT token operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines the contract for password operations
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// MetricsRecorderInterface abstracts metrics collection for services
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
