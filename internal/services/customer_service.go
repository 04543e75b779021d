package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const accountNumberAttempts = 5

// customerService implements CustomerServiceInterface
type customerService struct {
	userRepo        repositories.UserRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	auditRepo       repositories.AuditLogRepositoryInterface
	passwordService PasswordServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewCustomerService creates a customer lifecycle service
func NewCustomerService(
	userRepo repositories.UserRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	passwordService PasswordServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CustomerServiceInterface {
	return &customerService{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		auditRepo:       auditRepo,
		passwordService: passwordService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Register creates a customer and opens the requested accounts.
// Registration is idempotent on CPF: a known CPF reuses the existing
// customer record and only opens the accounts it does not yet hold.
// Asking for a variant the customer already holds fails the whole call.
func (s *customerService) Register(req dto.RegisterCustomerRequest) (*models.User, []dto.AccountSummary, error) {
	accountTypes, err := normalizeRequestedTypes(req.AccountTypes)
	if err != nil {
		return nil, nil, err
	}

	customer, err := s.userRepo.FindByCPF(req.CPF)
	switch {
	case err == nil:
		if !customer.Active {
			return nil, nil, ErrCustomerInactive
		}
	case errors.Is(err, repositories.ErrUserNotFound):
		customer, err = s.createCustomer(req)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	summaries := make([]dto.AccountSummary, 0, len(accountTypes))
	for _, accountType := range accountTypes {
		exists, err := s.accountRepo.ExistsActiveForCustomer(customer.ID, accountType)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing accounts: %w", err)
		}
		if exists {
			return nil, nil, ErrDuplicateAccountType
		}

		account, err := s.openAccount(customer.ID, accountType)
		if err != nil {
			return nil, nil, err
		}
		summaries = append(summaries, *dto.NewAccountSummary(account))
	}

	s.metrics.IncrementCounter("customer_registered", nil)
	s.logger.Info("customer registered",
		"customer_id", customer.ID.String(),
		"accounts", len(summaries),
	)

	return customer, summaries, nil
}

// GetCustomer retrieves an active customer by ID
func (s *customerService) GetCustomer(id uuid.UUID) (*models.User, error) {
	customer, err := s.userRepo.FindActiveByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// GetCustomerByCPF retrieves an active customer by CPF
func (s *customerService) GetCustomerByCPF(cpf string) (*models.User, error) {
	customer, err := s.userRepo.FindByCPF(cpf)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if !customer.Active {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// UpdateCustomer patches a customer's name and email. Nil fields in the
// request leave the stored value untouched.
func (s *customerService) UpdateCustomer(id uuid.UUID, req dto.UpdateCustomerRequest) (*models.User, error) {
	customer, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}

	if err := s.userRepo.Save(customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	if err := s.auditRepo.Create(&models.AuditLog{
		UserID:     &customer.ID,
		Action:     models.AuditActionCustomerUpdated,
		Resource:   "customer",
		ResourceID: customer.ID.String(),
		IPAddress:  "system",
		UserAgent:  "internal",
	}); err != nil {
		s.logger.Error("failed to create audit log", "error", err,
			"action", models.AuditActionCustomerUpdated)
	}

	s.logger.Info("customer updated", "customer_id", customer.ID.String())
	return customer, nil
}

// GetCustomerAccounts reports summaries of a customer's active accounts
func (s *customerService) GetCustomerAccounts(id uuid.UUID) ([]dto.AccountSummary, error) {
	if _, err := s.GetCustomer(id); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindActiveByCustomerID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer accounts: %w", err)
	}
	return dto.NewAccountSummaries(accounts), nil
}

// ListCustomers retrieves active customers with pagination
func (s *customerService) ListCustomers(offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.ListActiveByRole(models.RoleCustomer, offset, limit)
}

// Deactivate flips a customer to inactive, cascading to their accounts
func (s *customerService) Deactivate(id uuid.UUID) error {
	if err := s.userRepo.Deactivate(id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}

	if err := s.auditRepo.Create(&models.AuditLog{
		UserID:     &id,
		Action:     models.AuditActionCustomerDeactivated,
		Resource:   "customer",
		ResourceID: id.String(),
		IPAddress:  "system",
		UserAgent:  "internal",
	}); err != nil {
		s.logger.Error("failed to create audit log", "error", err,
			"action", models.AuditActionCustomerDeactivated)
	}

	s.metrics.IncrementCounter("customer_deactivated", nil)
	s.logger.Info("customer deactivated", "customer_id", id.String())
	return nil
}

func (s *customerService) createCustomer(req dto.RegisterCustomerRequest) (*models.User, error) {
	passwordHash, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	customer := &models.User{
		Name:         req.Name,
		CPF:          req.CPF,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleCustomer,
	}

	if err := s.userRepo.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	if err := s.auditRepo.Create(&models.AuditLog{
		UserID:     &customer.ID,
		Action:     models.AuditActionCustomerRegistered,
		Resource:   "customer",
		ResourceID: customer.ID.String(),
		IPAddress:  "system",
		UserAgent:  "internal",
	}); err != nil {
		s.logger.Error("failed to create audit log", "error", err,
			"action", models.AuditActionCustomerRegistered)
	}

	return customer, nil
}

func (s *customerService) openAccount(customerID uuid.UUID, accountType string) (*models.Account, error) {
	// Numbers are random; collisions are resolved by retrying against
	// the unique index.
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		number, err := generateAccountNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}

		account, err := models.NewAccountFromType(accountType, number, customerID, decimal.Zero)
		if err != nil {
			return nil, err
		}

		err = s.accountRepo.Create(account)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, repositories.ErrAccountNumberExists) {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to allocate unique account number after %d attempts", accountNumberAttempts)
}

func normalizeRequestedTypes(typeTags []string) ([]string, error) {
	seen := make(map[string]bool, len(typeTags))
	normalized := make([]string, 0, len(typeTags))

	for _, tag := range typeTags {
		accountType, err := models.NormalizeAccountType(tag)
		if err != nil {
			return nil, err
		}
		if seen[accountType] {
			return nil, ErrDuplicateAccountType
		}
		seen[accountType] = true
		normalized = append(normalized, accountType)
	}

	return normalized, nil
}

func generateAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	digit, err := rand.Int(rand.Reader, big.NewInt(10))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d-%d", n.Int64(), digit.Int64()), nil
}
