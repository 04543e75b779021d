package repositories

import (
	"errors"
	"fmt"

	"conta-bancaria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrBoletoExists    = errors.New("boleto already paid")
)

// paymentRepository implements PaymentRepositoryInterface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepositoryInterface {
	return &paymentRepository{db: db}
}

// Create persists a new payment together with its fee associations
func (r *paymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrBoletoExists
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// FindByID retrieves a payment with its fees preloaded
func (r *paymentRepository) FindByID(id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Preload("Fees").First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

// FindByBoleto retrieves a payment by its boleto line
func (r *paymentRepository) FindByBoleto(boleto string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Preload("Fees").
		Where("boleto = ?", boleto).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by boleto: %w", err)
	}
	return &payment, nil
}

// ListByAccountID retrieves payments made from an account, newest first
func (r *paymentRepository) ListByAccountID(accountID uuid.UUID, offset, limit int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	query := r.db.Model(&models.Payment{}).Where("account_id = ?", accountID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	if err := query.Preload("Fees").Offset(offset).Limit(limit).
		Order("paid_at DESC").Find(&payments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, total, nil
}

// Save persists changes to an existing payment
func (r *paymentRepository) Save(payment *models.Payment) error {
	if err := r.db.Save(payment).Error; err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}
