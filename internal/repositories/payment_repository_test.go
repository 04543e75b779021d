package repositories

import (
	"testing"
	"time"

	"conta-bancaria/internal/database"
	"conta-bancaria/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentRepositorySuite struct {
	suite.Suite
	db      *database.DB
	repo    PaymentRepositoryInterface
	account *models.Account
}

func (s *PaymentRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewPaymentRepository(s.db.DB)

	customer := database.CreateTestCustomer(s.T(), s.db, "52998224725")
	s.account = database.CreateTestAccount(s.T(), s.db, customer,
		models.AccountTypeChecking, "0001-1", "1000.00")
}

func (s *PaymentRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestPaymentRepositorySuite(t *testing.T) {
	suite.Run(t, new(PaymentRepositorySuite))
}

func (s *PaymentRepositorySuite) newPayment(boleto, amount string) *models.Payment {
	return &models.Payment{
		AccountID:  s.account.ID,
		Boleto:     boleto,
		AmountPaid: decimal.RequireFromString(amount),
		PaidAt:     time.Now(),
		Status:     models.PaymentStatusConfirmed,
	}
}

func (s *PaymentRepositorySuite) TestCreate() {
	payment := s.newPayment(gofakeit.DigitN(47), "150.00")

	err := s.repo.Create(payment)
	s.NoError(err)
	s.NotEqual(uuid.Nil, payment.ID)
	s.NotZero(payment.CreatedAt)
}

func (s *PaymentRepositorySuite) TestCreate_WithFees() {
	fee := &models.Fee{
		Description: "Processing fee",
		Percent:     decimal.RequireFromString("0.02"),
		FixedAmount: decimal.RequireFromString("1.50"),
	}
	s.Require().NoError(s.db.Create(fee).Error)

	payment := s.newPayment(gofakeit.DigitN(47), "100.00")
	payment.Fees = []models.Fee{*fee}

	s.NoError(s.repo.Create(payment))

	found, err := s.repo.FindByID(payment.ID)
	s.NoError(err)
	s.Len(found.Fees, 1)
	s.Equal(fee.ID, found.Fees[0].ID)
}

func (s *PaymentRepositorySuite) TestFindByBoleto() {
	boleto := gofakeit.DigitN(47)
	payment := s.newPayment(boleto, "99.90")
	s.Require().NoError(s.repo.Create(payment))

	found, err := s.repo.FindByBoleto(boleto)
	s.NoError(err)
	s.Equal(payment.ID, found.ID)
	s.True(decimal.RequireFromString("99.90").Equal(found.AmountPaid))
}

func (s *PaymentRepositorySuite) TestFindByBoleto_NotFound() {
	_, err := s.repo.FindByBoleto(gofakeit.DigitN(47))
	s.ErrorIs(err, ErrPaymentNotFound)
}

func (s *PaymentRepositorySuite) TestFindByID_NotFound() {
	_, err := s.repo.FindByID(uuid.New())
	s.ErrorIs(err, ErrPaymentNotFound)
}

func (s *PaymentRepositorySuite) TestListByAccountID() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.repo.Create(s.newPayment(gofakeit.DigitN(47), "10.00")))
	}

	payments, total, err := s.repo.ListByAccountID(s.account.ID, 0, 2)
	s.NoError(err)
	s.Equal(int64(3), total)
	s.Len(payments, 2)
}

func (s *PaymentRepositorySuite) TestListByAccountID_Empty() {
	payments, total, err := s.repo.ListByAccountID(uuid.New(), 0, 20)
	s.NoError(err)
	s.Zero(total)
	s.Empty(payments)
}

func (s *PaymentRepositorySuite) TestSave() {
	payment := s.newPayment(gofakeit.DigitN(47), "25.00")
	payment.Status = models.PaymentStatusPending
	s.Require().NoError(s.repo.Create(payment))

	payment.Status = models.PaymentStatusConfirmed
	s.NoError(s.repo.Save(payment))

	found, err := s.repo.FindByID(payment.ID)
	s.NoError(err)
	s.Equal(models.PaymentStatusConfirmed, found.Status)
}
