package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrBoletoAlreadyPaid = errors.New("boleto has already been paid")
	ErrUnknownFee        = errors.New("one or more fees do not exist")
)

// paymentService implements PaymentServiceInterface. A boleto payment
// withdraws the boleto amount plus every applied fee from the paying
// account in a single ledger movement.
type paymentService struct {
	paymentRepo repositories.PaymentRepositoryInterface
	accountRepo repositories.AccountRepositoryInterface
	feeRepo     repositories.FeeRepositoryInterface
	auditRepo   repositories.AuditLogRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewPaymentService creates a boleto payment service
func NewPaymentService(
	paymentRepo repositories.PaymentRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	feeRepo repositories.FeeRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) PaymentServiceInterface {
	return &paymentService{
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
		feeRepo:     feeRepo,
		auditRepo:   auditRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// PayBoleto pays a boleto from the given account. Each boleto line can be
// paid once; the sum of the amount and the applied fees must fit in the
// account's balance.
func (s *paymentService) PayBoleto(accountNumber string, req dto.PayBoletoRequest) (*models.Payment, error) {
	start := time.Now()

	account, err := s.accountRepo.FindActiveByNumber(accountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	amount, err := parseAmountField(req.Amount)
	if err != nil {
		return nil, err
	}

	if _, err := s.paymentRepo.FindByBoleto(req.Boleto); err == nil {
		return nil, ErrBoletoAlreadyPaid
	} else if !errors.Is(err, repositories.ErrPaymentNotFound) {
		return nil, fmt.Errorf("failed to check boleto: %w", err)
	}

	fees, err := s.resolveFees(req.FeeIDs)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		AccountID:  account.ID,
		Boleto:     req.Boleto,
		AmountPaid: amount,
		Status:     models.PaymentStatusPending,
		Fees:       fees,
	}

	total := payment.TotalWithFees()
	if err := account.Withdraw(total); err != nil {
		s.metrics.IncrementCounter("payment_rejected", map[string]string{
			"reason": "withdraw",
		})
		return nil, err
	}

	if err := s.paymentRepo.Create(payment); err != nil {
		if errors.Is(err, repositories.ErrBoletoExists) {
			return nil, ErrBoletoAlreadyPaid
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if err := s.accountRepo.Save(account); err != nil {
		payment.Fail()
		if saveErr := s.paymentRepo.Save(payment); saveErr != nil {
			s.logger.Error("failed to mark payment as failed", "error", saveErr,
				"payment_id", payment.ID.String())
		}
		return nil, fmt.Errorf("failed to persist payment withdrawal: %w", err)
	}

	payment.Confirm()
	if err := s.paymentRepo.Save(payment); err != nil {
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	if err := s.auditRepo.Create(&models.AuditLog{
		Action:     models.AuditActionPaymentMade,
		Resource:   "payment",
		ResourceID: payment.ID.String(),
		IPAddress:  "system",
		UserAgent:  "internal",
		Metadata: models.JSONBMap{
			"boleto": payment.Boleto,
			"amount": amount.String(),
			"total":  total.String(),
			"number": account.Number,
		},
	}); err != nil {
		s.logger.Error("failed to create audit log", "error", err,
			"action", models.AuditActionPaymentMade)
	}

	s.metrics.IncrementCounter("payment_confirmed", nil)
	s.metrics.RecordProcessingTime("payment", time.Since(start))
	s.logger.Info("boleto paid",
		"payment_id", payment.ID.String(),
		"number", account.Number,
		"total", total.String(),
	)

	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *paymentService) GetPayment(id uuid.UUID) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// ListPayments retrieves payments made from an account
func (s *paymentService) ListPayments(accountNumber string, offset, limit int) ([]models.Payment, int64, error) {
	account, err := s.accountRepo.FindActiveByNumber(accountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, 0, ErrAccountNotFound
		}
		return nil, 0, fmt.Errorf("failed to resolve account: %w", err)
	}

	return s.paymentRepo.ListByAccountID(account.ID, offset, limit)
}

func (s *paymentService) resolveFees(feeIDs []string) ([]models.Fee, error) {
	if len(feeIDs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(feeIDs))
	for _, raw := range feeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrUnknownFee
		}
		ids = append(ids, id)
	}

	fees, err := s.feeRepo.FindByIDs(ids)
	if err != nil {
		if errors.Is(err, repositories.ErrFeeNotFound) {
			return nil, ErrUnknownFee
		}
		return nil, fmt.Errorf("failed to resolve fees: %w", err)
	}
	return fees, nil
}
