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

// PaymentServiceSuite defines the test suite for PaymentServiceInterface
type PaymentServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	paymentRepo *repository_mocks.MockPaymentRepositoryInterface
	accountRepo *repository_mocks.MockAccountRepositoryInterface
	feeRepo     *repository_mocks.MockFeeRepositoryInterface
	auditRepo   *repository_mocks.MockAuditLogRepositoryInterface
	metrics     *service_mocks.MockMetricsRecorderInterface
	service     PaymentServiceInterface
	account     *models.Account
}

// SetupTest runs before each test in the suite
func (s *PaymentServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.paymentRepo = repository_mocks.NewMockPaymentRepositoryInterface(s.ctrl)
	s.accountRepo = repository_mocks.NewMockAccountRepositoryInterface(s.ctrl)
	s.feeRepo = repository_mocks.NewMockFeeRepositoryInterface(s.ctrl)
	s.auditRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.service = NewPaymentService(
		s.paymentRepo, s.accountRepo, s.feeRepo, s.auditRepo, s.metrics, slog.Default())

	account, err := models.NewAccountFromType(
		models.AccountTypeChecking, "0001-1", uuid.New(),
		decimal.RequireFromString("500.00"))
	s.Require().NoError(err)
	account.ID = uuid.New()
	s.account = account

	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()
}

// TearDownTest runs after each test in the suite
func (s *PaymentServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestPaymentServiceSuite runs the test suite
func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) TestPayBoleto() {
	s.accountRepo.EXPECT().FindActiveByNumber("0001-1").Return(s.account, nil)
	s.paymentRepo.EXPECT().FindByBoleto("23790000000001").
		Return(nil, repositories.ErrPaymentNotFound)
	s.paymentRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.accountRepo.EXPECT().Save(s.account).Return(nil)
	s.paymentRepo.EXPECT().Save(gomock.Any()).Return(nil)

	payment, err := s.service.PayBoleto("0001-1", dto.PayBoletoRequest{
		Boleto: "23790000000001",
		Amount: "150.00",
	})
	s.NoError(err)
	s.Equal(models.PaymentStatusConfirmed, payment.Status)
	s.True(decimal.RequireFromString("150.00").Equal(payment.AmountPaid))
	s.True(decimal.RequireFromString("350.00").Equal(s.account.Balance))
}

func (s *PaymentServiceSuite) TestPayBoleto_WithFees() {
	feeID := uuid.New()
	fee := models.Fee{
		ID:          feeID,
		Description: "convenience fee",
		Percent:     decimal.RequireFromString("0.02"),
		FixedAmount: decimal.RequireFromString("1.50"),
	}

	s.accountRepo.EXPECT().FindActiveByNumber("0001-1").Return(s.account, nil)
	s.paymentRepo.EXPECT().FindByBoleto("23790000000002").
		Return(nil, repositories.ErrPaymentNotFound)
	s.feeRepo.EXPECT().FindByIDs([]uuid.UUID{feeID}).Return([]models.Fee{fee}, nil)
	s.paymentRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.accountRepo.EXPECT().Save(s.account).Return(nil)
	s.paymentRepo.EXPECT().Save(gomock.Any()).Return(nil)

	payment, err := s.service.PayBoleto("0001-1", dto.PayBoletoRequest{
		Boleto: "23790000000002",
		Amount: "100.00",
		FeeIDs: []string{feeID.String()},
	})
	s.NoError(err)
	// 100.00 + 2% + 1.50 fixed = 103.50 debited.
	s.True(decimal.RequireFromString("103.50").Equal(payment.TotalWithFees()))
	s.True(decimal.RequireFromString("396.50").Equal(s.account.Balance))
}

func (s *PaymentServiceSuite) TestPayBoleto_AlreadyPaid() {
	s.accountRepo.EXPECT().FindActiveByNumber("0001-1").Return(s.account, nil)
	s.paymentRepo.EXPECT().FindByBoleto("23790000000003").
		Return(&models.Payment{Boleto: "23790000000003"}, nil)

	_, err := s.service.PayBoleto("0001-1", dto.PayBoletoRequest{
		Boleto: "23790000000003",
		Amount: "10.00",
	})
	s.ErrorIs(err, ErrBoletoAlreadyPaid)
	s.True(decimal.RequireFromString("500.00").Equal(s.account.Balance))
}

func (s *PaymentServiceSuite) TestPayBoleto_InsufficientFunds() {
	s.accountRepo.EXPECT().FindActiveByNumber("0001-1").Return(s.account, nil)
	s.paymentRepo.EXPECT().FindByBoleto("23790000000004").
		Return(nil, repositories.ErrPaymentNotFound)

	_, err := s.service.PayBoleto("0001-1", dto.PayBoletoRequest{
		Boleto: "23790000000004",
		Amount: "500.01",
	})
	s.ErrorIs(err, ErrInsufficientFunds)
	s.True(decimal.RequireFromString("500.00").Equal(s.account.Balance))
}

func (s *PaymentServiceSuite) TestPayBoleto_UnknownFee() {
	feeID := uuid.New()
	s.accountRepo.EXPECT().FindActiveByNumber("0001-1").Return(s.account, nil)
	s.paymentRepo.EXPECT().FindByBoleto("23790000000005").
		Return(nil, repositories.ErrPaymentNotFound)
	s.feeRepo.EXPECT().FindByIDs([]uuid.UUID{feeID}).
		Return(nil, repositories.ErrFeeNotFound)

	_, err := s.service.PayBoleto("0001-1", dto.PayBoletoRequest{
		Boleto: "23790000000005",
		Amount: "10.00",
		FeeIDs: []string{feeID.String()},
	})
	s.ErrorIs(err, ErrUnknownFee)
}

func (s *PaymentServiceSuite) TestPayBoleto_MalformedFeeID() {
	s.accountRepo.EXPECT().FindActiveByNumber("0001-1").Return(s.account, nil)
	s.paymentRepo.EXPECT().FindByBoleto("23790000000006").
		Return(nil, repositories.ErrPaymentNotFound)

	_, err := s.service.PayBoleto("0001-1", dto.PayBoletoRequest{
		Boleto: "23790000000006",
		Amount: "10.00",
		FeeIDs: []string{"not-a-uuid"},
	})
	s.ErrorIs(err, ErrUnknownFee)
}

func (s *PaymentServiceSuite) TestPayBoleto_AccountNotFound() {
	s.accountRepo.EXPECT().FindActiveByNumber("9999-9").
		Return(nil, repositories.ErrAccountNotFound)

	_, err := s.service.PayBoleto("9999-9", dto.PayBoletoRequest{
		Boleto: "23790000000007",
		Amount: "10.00",
	})
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *PaymentServiceSuite) TestGetPayment_NotFound() {
	id := uuid.New()
	s.paymentRepo.EXPECT().FindByID(id).Return(nil, repositories.ErrPaymentNotFound)

	_, err := s.service.GetPayment(id)
	s.ErrorIs(err, ErrPaymentNotFound)
}

func (s *PaymentServiceSuite) TestListPayments() {
	payments := []models.Payment{{Boleto: "23790000000008"}}
	s.accountRepo.EXPECT().FindActiveByNumber("0001-1").Return(s.account, nil)
	s.paymentRepo.EXPECT().ListByAccountID(s.account.ID, 0, 10).
		Return(payments, int64(1), nil)

	result, total, err := s.service.ListPayments("0001-1", 0, 10)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(result, 1)
}
