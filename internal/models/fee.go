package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fee is a charge applied on top of a payment: a percentage of the paid
// amount plus a fixed amount. Either component may be zero.
type Fee struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Description string          `gorm:"type:varchar(120);not null" json:"description"`
	Percent     decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0" json:"percent"`
	FixedAmount decimal.Decimal `gorm:"type:decimal(19,2);not null;default:0" json:"fixed_amount"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Fee
func (f *Fee) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}

	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = now
	}

	return f.Validate()
}

// Validate validates the fee fields
func (f *Fee) Validate() error {
	if f.Description == "" {
		return errors.New("fee description is required")
	}

	if f.Percent.IsNegative() || f.FixedAmount.IsNegative() {
		return errors.New("fee components cannot be negative")
	}

	return nil
}

// AppliedTo returns the charge for the given base amount: the percentage
// share rounded half-even to 2 decimal places, plus the fixed amount.
func (f *Fee) AppliedTo(base decimal.Decimal) decimal.Decimal {
	return base.Mul(f.Percent).RoundBank(2).Add(f.FixedAmount)
}

// TableName returns the table name for Fee
func (f *Fee) TableName() string {
	return "fees"
}
