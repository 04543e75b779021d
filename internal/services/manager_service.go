package services

import (
	"errors"
	"fmt"
	"log/slog"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrManagerNotFound = errors.New("manager not found")
	ErrManagerExists   = errors.New("cpf or email already registered")
)

// managerService implements ManagerServiceInterface. Managers and admins
// share the users table with customers; this service only ever touches
// records holding a staff role.
type managerService struct {
	userRepo        repositories.UserRepositoryInterface
	auditRepo       repositories.AuditLogRepositoryInterface
	passwordService PasswordServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewManagerService creates a staff administration service
func NewManagerService(
	userRepo repositories.UserRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	passwordService PasswordServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ManagerServiceInterface {
	return &managerService{
		userRepo:        userRepo,
		auditRepo:       auditRepo,
		passwordService: passwordService,
		metrics:         metrics,
		logger:          logger,
	}
}

// RegisterManager creates a staff user. The role defaults to manager;
// only the request can raise it to admin, and the API layer restricts
// who gets to send that request.
func (s *managerService) RegisterManager(req dto.RegisterManagerRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleManager
	}

	if _, err := s.userRepo.FindByCPF(req.CPF); err == nil {
		return nil, ErrManagerExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check cpf: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrManagerExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	passwordHash, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	manager := &models.User{
		Name:         req.Name,
		CPF:          req.CPF,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.userRepo.Create(manager); err != nil {
		if errors.Is(err, repositories.ErrCPFExists) || errors.Is(err, repositories.ErrEmailExists) {
			return nil, ErrManagerExists
		}
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}

	s.recordAudit(manager.ID, models.AuditActionManagerRegistered, models.JSONBMap{
		"role": manager.Role,
	})
	s.metrics.IncrementCounter("manager_registered", map[string]string{"role": manager.Role})
	s.logger.Info("manager registered",
		"manager_id", manager.ID.String(),
		"role", manager.Role,
	)

	return manager, nil
}

// GetManager retrieves an active staff user by ID. Customer records do
// not resolve through this path.
func (s *managerService) GetManager(id uuid.UUID) (*models.User, error) {
	manager, err := s.userRepo.FindActiveByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	if manager.IsCustomer() {
		return nil, ErrManagerNotFound
	}
	return manager, nil
}

// ListManagers retrieves active managers with pagination
func (s *managerService) ListManagers(offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.ListActiveByRole(models.RoleManager, offset, limit)
}

// UpdateManager patches a manager's name and email. Nil fields in the
// request leave the stored value untouched.
func (s *managerService) UpdateManager(id uuid.UUID, req dto.UpdateManagerRequest) (*models.User, error) {
	manager, err := s.GetManager(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		manager.Name = *req.Name
	}
	if req.Email != nil {
		manager.Email = *req.Email
	}

	if err := s.userRepo.Save(manager); err != nil {
		return nil, fmt.Errorf("failed to update manager: %w", err)
	}

	s.recordAudit(manager.ID, models.AuditActionManagerUpdated, nil)
	s.logger.Info("manager updated", "manager_id", manager.ID.String())
	return manager, nil
}

// DeactivateManager flips a staff user to inactive. The role guard in
// GetManager keeps customer records out of this path.
func (s *managerService) DeactivateManager(id uuid.UUID) error {
	if _, err := s.GetManager(id); err != nil {
		return err
	}

	if err := s.userRepo.Deactivate(id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrManagerNotFound
		}
		return fmt.Errorf("failed to deactivate manager: %w", err)
	}

	s.recordAudit(id, models.AuditActionManagerDeactivated, nil)
	s.metrics.IncrementCounter("manager_deactivated", nil)
	s.logger.Info("manager deactivated", "manager_id", id.String())
	return nil
}

// EnsureAdmin creates the first admin user when none exists, so the
// staff endpoints are reachable on a fresh database. It is a no-op when
// an active admin is already present; when none is and no bootstrap
// credentials are configured, it only logs a warning.
func (s *managerService) EnsureAdmin(name, cpf, email, password string) error {
	_, total, err := s.userRepo.ListActiveByRole(models.RoleAdmin, 0, 1)
	if err != nil {
		return fmt.Errorf("failed to check for admin users: %w", err)
	}
	if total > 0 {
		return nil
	}

	if cpf == "" || email == "" || password == "" {
		s.logger.Warn("no active admin user exists; set ADMIN_CPF, ADMIN_EMAIL and ADMIN_PASSWORD to bootstrap one")
		return nil
	}

	admin, err := s.RegisterManager(dto.RegisterManagerRequest{
		Name:     name,
		CPF:      cpf,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, ErrManagerExists) {
			// Never silently promote an existing user to admin.
			return fmt.Errorf("bootstrap admin cpf or email already belongs to another user")
		}
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	s.logger.Info("bootstrap admin created", "manager_id", admin.ID.String())
	return nil
}

func (s *managerService) recordAudit(managerID uuid.UUID, action string, metadata models.JSONBMap) {
	if err := s.auditRepo.Create(&models.AuditLog{
		UserID:     &managerID,
		Action:     action,
		Resource:   "manager",
		ResourceID: managerID.String(),
		IPAddress:  "system",
		UserAgent:  "internal",
		Metadata:   metadata,
	}); err != nil {
		s.logger.Error("failed to create audit log", "error", err, "action", action)
	}
}
