package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusFailed    = "failed"
)

var (
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidPayment       = errors.New("payment amount must be positive")
)

// Payment is a boleto payment debited from an account. The amount paid is
// the boleto face value; applicable fees are added on top when the account
// is debited.
type Payment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Boleto     string          `gorm:"type:varchar(120);uniqueIndex;not null" json:"boleto"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"amount_paid"`
	PaidAt     time.Time       `gorm:"not null" json:"paid_at"`
	Status     string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
	Fees    []Fee   `gorm:"many2many:payment_fees" json:"fees,omitempty"`
}

// BeforeCreate hook for Payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	now := time.Now()
	if p.Status == "" {
		p.Status = PaymentStatusPending
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = now
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	return p.Validate()
}

// BeforeUpdate hook for Payment
func (p *Payment) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return p.Validate()
}

// Validate validates the payment fields
func (p *Payment) Validate() error {
	if p.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if p.Boleto == "" {
		return errors.New("boleto code is required")
	}

	if p.AmountPaid.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPayment
	}

	if !IsValidPaymentStatus(p.Status) {
		return ErrInvalidPaymentStatus
	}

	return nil
}

// Confirm marks the payment as confirmed
func (p *Payment) Confirm() {
	p.Status = PaymentStatusConfirmed
}

// Fail marks the payment as failed
func (p *Payment) Fail() {
	p.Status = PaymentStatusFailed
}

// TotalWithFees returns the amount the account is debited: the boleto
// value plus each fee's percentage share (rounded half-even to 2 places)
// and fixed amount.
func (p *Payment) TotalWithFees() decimal.Decimal {
	total := p.AmountPaid
	for _, fee := range p.Fees {
		total = total.Add(fee.AppliedTo(p.AmountPaid))
	}
	return total
}

// TableName returns the table name for Payment
func (p *Payment) TableName() string {
	return "payments"
}

// IsValidPaymentStatus checks if the payment status is valid
func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusFailed:
		return true
	default:
		return false
	}
}
