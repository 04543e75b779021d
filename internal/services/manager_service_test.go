package services

import (
	"log/slog"
	"testing"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/repositories"
	"conta-bancaria/internal/repositories/repository_mocks"
	"conta-bancaria/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// ManagerServiceSuite defines the test suite for ManagerServiceInterface
type ManagerServiceSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	userRepo        *repository_mocks.MockUserRepositoryInterface
	auditRepo       *repository_mocks.MockAuditLogRepositoryInterface
	passwordService *service_mocks.MockPasswordServiceInterface
	metrics         *service_mocks.MockMetricsRecorderInterface
	service         ManagerServiceInterface
}

// SetupTest runs before each test in the suite
func (s *ManagerServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.auditRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.passwordService = service_mocks.NewMockPasswordServiceInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.service = NewManagerService(
		s.userRepo, s.auditRepo, s.passwordService, s.metrics, slog.Default())

	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()
}

// TearDownTest runs after each test in the suite
func (s *ManagerServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestManagerServiceSuite runs the test suite
func TestManagerServiceSuite(t *testing.T) {
	suite.Run(t, new(ManagerServiceSuite))
}

func managerRequest(role string) dto.RegisterManagerRequest {
	return dto.RegisterManagerRequest{
		Name:     "Carlos Lima",
		CPF:      "31142306091",
		Email:    "carlos@example.com",
		Password: "segredo123",
		Role:     role,
	}
}

func (s *ManagerServiceSuite) TestRegisterManager_DefaultsToManagerRole() {
	req := managerRequest("")

	s.userRepo.EXPECT().FindByCPF(req.CPF).Return(nil, repositories.ErrUserNotFound)
	s.userRepo.EXPECT().FindByEmail(req.Email).Return(nil, repositories.ErrUserNotFound)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("hashed", nil)
	s.userRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(user *models.User) error {
		s.Equal(models.RoleManager, user.Role)
		s.Equal("hashed", user.PasswordHash)
		user.ID = uuid.New()
		return nil
	})

	manager, err := s.service.RegisterManager(req)
	s.NoError(err)
	s.Equal(models.RoleManager, manager.Role)
}

func (s *ManagerServiceSuite) TestRegisterManager_AdminRole() {
	req := managerRequest(models.RoleAdmin)

	s.userRepo.EXPECT().FindByCPF(req.CPF).Return(nil, repositories.ErrUserNotFound)
	s.userRepo.EXPECT().FindByEmail(req.Email).Return(nil, repositories.ErrUserNotFound)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("hashed", nil)
	s.userRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(user *models.User) error {
		user.ID = uuid.New()
		return nil
	})

	manager, err := s.service.RegisterManager(req)
	s.NoError(err)
	s.Equal(models.RoleAdmin, manager.Role)
}

func (s *ManagerServiceSuite) TestRegisterManager_DuplicateCPF() {
	req := managerRequest("")
	existing := &models.User{ID: uuid.New(), CPF: req.CPF, Role: models.RoleCustomer}

	s.userRepo.EXPECT().FindByCPF(req.CPF).Return(existing, nil)

	_, err := s.service.RegisterManager(req)
	s.ErrorIs(err, ErrManagerExists)
}

func (s *ManagerServiceSuite) TestRegisterManager_DuplicateEmail() {
	req := managerRequest("")
	existing := &models.User{ID: uuid.New(), Email: req.Email, Role: models.RoleManager}

	s.userRepo.EXPECT().FindByCPF(req.CPF).Return(nil, repositories.ErrUserNotFound)
	s.userRepo.EXPECT().FindByEmail(req.Email).Return(existing, nil)

	_, err := s.service.RegisterManager(req)
	s.ErrorIs(err, ErrManagerExists)
}

func (s *ManagerServiceSuite) TestRegisterManager_CreateRaceLosesToUniqueIndex() {
	req := managerRequest("")

	s.userRepo.EXPECT().FindByCPF(req.CPF).Return(nil, repositories.ErrUserNotFound)
	s.userRepo.EXPECT().FindByEmail(req.Email).Return(nil, repositories.ErrUserNotFound)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("hashed", nil)
	s.userRepo.EXPECT().Create(gomock.Any()).Return(repositories.ErrCPFExists)

	_, err := s.service.RegisterManager(req)
	s.ErrorIs(err, ErrManagerExists)
}

func (s *ManagerServiceSuite) TestGetManager() {
	manager := &models.User{ID: uuid.New(), Active: true, Role: models.RoleManager}
	s.userRepo.EXPECT().FindActiveByID(manager.ID).Return(manager, nil)

	found, err := s.service.GetManager(manager.ID)
	s.NoError(err)
	s.Equal(manager.ID, found.ID)
}

func (s *ManagerServiceSuite) TestGetManager_CustomerHidden() {
	customer := &models.User{ID: uuid.New(), Active: true, Role: models.RoleCustomer}
	s.userRepo.EXPECT().FindActiveByID(customer.ID).Return(customer, nil)

	_, err := s.service.GetManager(customer.ID)
	s.ErrorIs(err, ErrManagerNotFound)
}

func (s *ManagerServiceSuite) TestGetManager_NotFound() {
	id := uuid.New()
	s.userRepo.EXPECT().FindActiveByID(id).Return(nil, repositories.ErrUserNotFound)

	_, err := s.service.GetManager(id)
	s.ErrorIs(err, ErrManagerNotFound)
}

func (s *ManagerServiceSuite) TestUpdateManager_PatchesOnlyProvidedFields() {
	id := uuid.New()
	manager := &models.User{
		ID: id, Name: "Carlos Lima", Email: "carlos@example.com",
		Active: true, Role: models.RoleManager,
	}
	newEmail := "carlos.lima@example.com"

	s.userRepo.EXPECT().FindActiveByID(id).Return(manager, nil)
	s.userRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(user *models.User) error {
		s.Equal("Carlos Lima", user.Name)
		s.Equal(newEmail, user.Email)
		return nil
	})

	updated, err := s.service.UpdateManager(id, dto.UpdateManagerRequest{Email: &newEmail})
	s.NoError(err)
	s.Equal(newEmail, updated.Email)
}

func (s *ManagerServiceSuite) TestUpdateManager_NotFound() {
	id := uuid.New()
	newName := "Carlos Souza"
	s.userRepo.EXPECT().FindActiveByID(id).Return(nil, repositories.ErrUserNotFound)

	_, err := s.service.UpdateManager(id, dto.UpdateManagerRequest{Name: &newName})
	s.ErrorIs(err, ErrManagerNotFound)
}

func (s *ManagerServiceSuite) TestDeactivateManager() {
	manager := &models.User{ID: uuid.New(), Active: true, Role: models.RoleAdmin}

	s.userRepo.EXPECT().FindActiveByID(manager.ID).Return(manager, nil)
	s.userRepo.EXPECT().Deactivate(manager.ID).Return(nil)

	s.NoError(s.service.DeactivateManager(manager.ID))
}

func (s *ManagerServiceSuite) TestDeactivateManager_CustomerRejected() {
	customer := &models.User{ID: uuid.New(), Active: true, Role: models.RoleCustomer}
	s.userRepo.EXPECT().FindActiveByID(customer.ID).Return(customer, nil)

	s.ErrorIs(s.service.DeactivateManager(customer.ID), ErrManagerNotFound)
}

func (s *ManagerServiceSuite) TestListManagers() {
	managers := []*models.User{{ID: uuid.New(), Role: models.RoleManager, Active: true}}
	s.userRepo.EXPECT().ListActiveByRole(models.RoleManager, 0, 10).
		Return(managers, int64(1), nil)

	found, total, err := s.service.ListManagers(0, 10)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(found, 1)
}

func (s *ManagerServiceSuite) TestEnsureAdmin_SkipsWhenAdminExists() {
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin, Active: true}
	s.userRepo.EXPECT().ListActiveByRole(models.RoleAdmin, 0, 1).
		Return([]*models.User{admin}, int64(1), nil)

	s.NoError(s.service.EnsureAdmin("Administrador", "31142306091", "admin@example.com", "segredo123"))
}

func (s *ManagerServiceSuite) TestEnsureAdmin_WarnsWithoutCredentials() {
	s.userRepo.EXPECT().ListActiveByRole(models.RoleAdmin, 0, 1).
		Return(nil, int64(0), nil)

	// Missing credentials leave the database untouched.
	s.NoError(s.service.EnsureAdmin("Administrador", "", "", ""))
}

func (s *ManagerServiceSuite) TestEnsureAdmin_CreatesFirstAdmin() {
	s.userRepo.EXPECT().ListActiveByRole(models.RoleAdmin, 0, 1).
		Return(nil, int64(0), nil)
	s.userRepo.EXPECT().FindByCPF("31142306091").Return(nil, repositories.ErrUserNotFound)
	s.userRepo.EXPECT().FindByEmail("admin@example.com").Return(nil, repositories.ErrUserNotFound)
	s.passwordService.EXPECT().HashPassword("segredo123").Return("hashed", nil)
	s.userRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(user *models.User) error {
		s.Equal(models.RoleAdmin, user.Role)
		user.ID = uuid.New()
		return nil
	})

	s.NoError(s.service.EnsureAdmin("Administrador", "31142306091", "admin@example.com", "segredo123"))
}

func (s *ManagerServiceSuite) TestEnsureAdmin_TakenCPFNeverPromoted() {
	existing := &models.User{ID: uuid.New(), CPF: "31142306091", Role: models.RoleCustomer, Active: true}

	s.userRepo.EXPECT().ListActiveByRole(models.RoleAdmin, 0, 1).
		Return(nil, int64(0), nil)
	s.userRepo.EXPECT().FindByCPF("31142306091").Return(existing, nil)

	err := s.service.EnsureAdmin("Administrador", "31142306091", "admin@example.com", "segredo123")
	s.Error(err)
}
