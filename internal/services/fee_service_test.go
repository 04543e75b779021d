package services

import (
	"log/slog"
	"testing"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/repositories"
	"conta-bancaria/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// FeeServiceSuite defines the test suite for FeeServiceInterface
type FeeServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	feeRepo *repository_mocks.MockFeeRepositoryInterface
	service FeeServiceInterface
}

// SetupTest runs before each test in the suite
func (s *FeeServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.feeRepo = repository_mocks.NewMockFeeRepositoryInterface(s.ctrl)
	s.service = NewFeeService(s.feeRepo, slog.Default())
}

// TearDownTest runs after each test in the suite
func (s *FeeServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestFeeServiceSuite runs the test suite
func TestFeeServiceSuite(t *testing.T) {
	suite.Run(t, new(FeeServiceSuite))
}

func (s *FeeServiceSuite) TestCreateFee() {
	s.feeRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(fee *models.Fee) error {
		fee.ID = uuid.New()
		return nil
	})

	fee, err := s.service.CreateFee(dto.FeeRequest{
		Description: "convenience fee",
		Percent:     "0.02",
		FixedAmount: "1.50",
	})
	s.NoError(err)
	s.True(decimal.RequireFromString("0.02").Equal(fee.Percent))
	s.True(decimal.RequireFromString("1.50").Equal(fee.FixedAmount))
}

func (s *FeeServiceSuite) TestCreateFee_NegativeComponent() {
	_, err := s.service.CreateFee(dto.FeeRequest{
		Description: "bad fee",
		Percent:     "-0.01",
		FixedAmount: "0",
	})
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *FeeServiceSuite) TestCreateFee_MalformedAmount() {
	_, err := s.service.CreateFee(dto.FeeRequest{
		Description: "bad fee",
		Percent:     "two percent",
		FixedAmount: "0",
	})
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *FeeServiceSuite) TestGetFee_NotFound() {
	id := uuid.New()
	s.feeRepo.EXPECT().FindByID(id).Return(nil, repositories.ErrFeeNotFound)

	_, err := s.service.GetFee(id)
	s.ErrorIs(err, ErrFeeNotFound)
}

func (s *FeeServiceSuite) TestUpdateFee() {
	id := uuid.New()
	existing := &models.Fee{
		ID:          id,
		Description: "old description",
		Percent:     decimal.RequireFromString("0.01"),
		FixedAmount: decimal.Zero,
	}

	s.feeRepo.EXPECT().FindByID(id).Return(existing, nil)
	s.feeRepo.EXPECT().Save(existing).Return(nil)

	fee, err := s.service.UpdateFee(id, dto.FeeRequest{
		Description: "new description",
		Percent:     "0.03",
		FixedAmount: "2.00",
	})
	s.NoError(err)
	s.Equal("new description", fee.Description)
	s.True(decimal.RequireFromString("0.03").Equal(fee.Percent))
}

func (s *FeeServiceSuite) TestDeleteFee_NotFound() {
	id := uuid.New()
	s.feeRepo.EXPECT().Delete(id).Return(repositories.ErrFeeNotFound)

	s.ErrorIs(s.service.DeleteFee(id), ErrFeeNotFound)
}
