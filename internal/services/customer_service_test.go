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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// CustomerServiceSuite defines the test suite for CustomerServiceInterface
type CustomerServiceSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	userRepo        *repository_mocks.MockUserRepositoryInterface
	accountRepo     *repository_mocks.MockAccountRepositoryInterface
	auditRepo       *repository_mocks.MockAuditLogRepositoryInterface
	passwordService *service_mocks.MockPasswordServiceInterface
	metrics         *service_mocks.MockMetricsRecorderInterface
	service         CustomerServiceInterface
}

// SetupTest runs before each test in the suite
func (s *CustomerServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.accountRepo = repository_mocks.NewMockAccountRepositoryInterface(s.ctrl)
	s.auditRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.passwordService = service_mocks.NewMockPasswordServiceInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.service = NewCustomerService(
		s.userRepo, s.accountRepo, s.auditRepo, s.passwordService, s.metrics, slog.Default())

	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()
}

// TearDownTest runs after each test in the suite
func (s *CustomerServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestCustomerServiceSuite runs the test suite
func TestCustomerServiceSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func registerRequest(accountTypes ...string) dto.RegisterCustomerRequest {
	return dto.RegisterCustomerRequest{
		Name:         "Maria Silva",
		CPF:          "52998224725",
		Email:        "maria@example.com",
		Password:     "segredo123",
		AccountTypes: accountTypes,
	}
}

func (s *CustomerServiceSuite) TestRegister_NewCustomer() {
	req := registerRequest("CORRENTE", "poupanca")

	s.userRepo.EXPECT().FindByCPF(req.CPF).Return(nil, repositories.ErrUserNotFound)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("hashed", nil)
	s.userRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(user *models.User) error {
		s.Equal(models.RoleCustomer, user.Role)
		s.Equal("hashed", user.PasswordHash)
		user.ID = uuid.New()
		return nil
	})

	gomock.InOrder(
		s.accountRepo.EXPECT().ExistsActiveForCustomer(gomock.Any(), models.AccountTypeChecking).
			Return(false, nil),
		s.accountRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(account *models.Account) error {
			s.Equal(models.AccountTypeChecking, account.AccountType)
			s.Regexp(`^\d{6}-\d$`, account.Number)
			return nil
		}),
		s.accountRepo.EXPECT().ExistsActiveForCustomer(gomock.Any(), models.AccountTypeSavings).
			Return(false, nil),
		s.accountRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(account *models.Account) error {
			s.Equal(models.AccountTypeSavings, account.AccountType)
			return nil
		}),
	)

	customer, summaries, err := s.service.Register(req)
	s.NoError(err)
	s.Equal("52998224725", customer.CPF)
	s.Len(summaries, 2)
	s.True(summaries[0].Balance.IsZero())
}

func (s *CustomerServiceSuite) TestRegister_ExistingCPFOpensMissingAccount() {
	req := registerRequest("POUPANCA")
	existing := &models.User{ID: uuid.New(), CPF: req.CPF, Active: true, Role: models.RoleCustomer}

	s.userRepo.EXPECT().FindByCPF(req.CPF).Return(existing, nil)
	s.accountRepo.EXPECT().ExistsActiveForCustomer(existing.ID, models.AccountTypeSavings).
		Return(false, nil)
	s.accountRepo.EXPECT().Create(gomock.Any()).Return(nil)

	customer, summaries, err := s.service.Register(req)
	s.NoError(err)
	s.Equal(existing.ID, customer.ID)
	s.Len(summaries, 1)
}

func (s *CustomerServiceSuite) TestRegister_ExistingVariantRejected() {
	req := registerRequest("CORRENTE")
	existing := &models.User{ID: uuid.New(), CPF: req.CPF, Active: true, Role: models.RoleCustomer}

	s.userRepo.EXPECT().FindByCPF(req.CPF).Return(existing, nil)
	s.accountRepo.EXPECT().ExistsActiveForCustomer(existing.ID, models.AccountTypeChecking).
		Return(true, nil)

	_, _, err := s.service.Register(req)
	s.ErrorIs(err, ErrDuplicateAccountType)
}

func (s *CustomerServiceSuite) TestRegister_DeactivatedCPFBlocked() {
	req := registerRequest("CORRENTE")
	existing := &models.User{ID: uuid.New(), CPF: req.CPF, Active: false, Role: models.RoleCustomer}

	s.userRepo.EXPECT().FindByCPF(req.CPF).Return(existing, nil)

	_, _, err := s.service.Register(req)
	s.ErrorIs(err, ErrCustomerInactive)
}

func (s *CustomerServiceSuite) TestRegister_RepeatedTypeTag() {
	// The same variant twice in one request never reaches the repositories.
	_, _, err := s.service.Register(registerRequest("CORRENTE", "corrente"))
	s.ErrorIs(err, ErrDuplicateAccountType)
}

func (s *CustomerServiceSuite) TestRegister_UnknownTypeTag() {
	_, _, err := s.service.Register(registerRequest("SALARIO"))
	s.ErrorIs(err, ErrUnknownAccountType)
}

func (s *CustomerServiceSuite) TestRegister_RetriesOnNumberCollision() {
	req := registerRequest("CORRENTE")
	existing := &models.User{ID: uuid.New(), CPF: req.CPF, Active: true, Role: models.RoleCustomer}

	s.userRepo.EXPECT().FindByCPF(req.CPF).Return(existing, nil)
	s.accountRepo.EXPECT().ExistsActiveForCustomer(existing.ID, models.AccountTypeChecking).
		Return(false, nil)
	gomock.InOrder(
		s.accountRepo.EXPECT().Create(gomock.Any()).Return(repositories.ErrAccountNumberExists),
		s.accountRepo.EXPECT().Create(gomock.Any()).Return(nil),
	)

	_, summaries, err := s.service.Register(req)
	s.NoError(err)
	s.Len(summaries, 1)
}

func (s *CustomerServiceSuite) TestGetCustomerAccounts() {
	customerID := uuid.New()
	customer := &models.User{ID: customerID, Active: true, Role: models.RoleCustomer}
	account, err := models.NewAccountFromType(
		models.AccountTypeChecking, "000123-4", customerID, decimal.Zero)
	s.Require().NoError(err)

	s.userRepo.EXPECT().FindActiveByID(customerID).Return(customer, nil)
	s.accountRepo.EXPECT().FindActiveByCustomerID(customerID).
		Return([]models.Account{*account}, nil)

	summaries, err := s.service.GetCustomerAccounts(customerID)
	s.NoError(err)
	s.Len(summaries, 1)
	s.Equal("000123-4", summaries[0].Number)
}

func (s *CustomerServiceSuite) TestGetCustomer_NotFound() {
	id := uuid.New()
	s.userRepo.EXPECT().FindActiveByID(id).Return(nil, repositories.ErrUserNotFound)

	_, err := s.service.GetCustomer(id)
	s.ErrorIs(err, ErrCustomerNotFound)
}

func (s *CustomerServiceSuite) TestGetCustomerByCPF() {
	customer := &models.User{ID: uuid.New(), CPF: "52998224725", Active: true, Role: models.RoleCustomer}
	s.userRepo.EXPECT().FindByCPF(customer.CPF).Return(customer, nil)

	found, err := s.service.GetCustomerByCPF(customer.CPF)
	s.NoError(err)
	s.Equal(customer.ID, found.ID)
}

func (s *CustomerServiceSuite) TestGetCustomerByCPF_NotFound() {
	s.userRepo.EXPECT().FindByCPF("00000000000").Return(nil, repositories.ErrUserNotFound)

	_, err := s.service.GetCustomerByCPF("00000000000")
	s.ErrorIs(err, ErrCustomerNotFound)
}

func (s *CustomerServiceSuite) TestGetCustomerByCPF_InactiveHidden() {
	customer := &models.User{ID: uuid.New(), CPF: "52998224725", Active: false, Role: models.RoleCustomer}
	s.userRepo.EXPECT().FindByCPF(customer.CPF).Return(customer, nil)

	_, err := s.service.GetCustomerByCPF(customer.CPF)
	s.ErrorIs(err, ErrCustomerNotFound)
}

func (s *CustomerServiceSuite) TestUpdateCustomer_PatchesOnlyProvidedFields() {
	id := uuid.New()
	customer := &models.User{
		ID: id, Name: "Maria Silva", Email: "maria@example.com",
		Active: true, Role: models.RoleCustomer,
	}
	newName := "Maria Souza"

	s.userRepo.EXPECT().FindActiveByID(id).Return(customer, nil)
	s.userRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(user *models.User) error {
		s.Equal("Maria Souza", user.Name)
		s.Equal("maria@example.com", user.Email)
		return nil
	})

	updated, err := s.service.UpdateCustomer(id, dto.UpdateCustomerRequest{Name: &newName})
	s.NoError(err)
	s.Equal("Maria Souza", updated.Name)
}

func (s *CustomerServiceSuite) TestUpdateCustomer_NotFound() {
	id := uuid.New()
	newEmail := "novo@example.com"
	s.userRepo.EXPECT().FindActiveByID(id).Return(nil, repositories.ErrUserNotFound)

	_, err := s.service.UpdateCustomer(id, dto.UpdateCustomerRequest{Email: &newEmail})
	s.ErrorIs(err, ErrCustomerNotFound)
}

func (s *CustomerServiceSuite) TestDeactivate() {
	id := uuid.New()
	s.userRepo.EXPECT().Deactivate(id).Return(nil)

	s.NoError(s.service.Deactivate(id))
}

func (s *CustomerServiceSuite) TestDeactivate_NotFound() {
	id := uuid.New()
	s.userRepo.EXPECT().Deactivate(id).Return(repositories.ErrUserNotFound)

	s.ErrorIs(s.service.Deactivate(id), ErrCustomerNotFound)
}
