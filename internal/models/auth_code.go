package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthCode is a short-lived verification code issued to a customer for
// sensitive operations.
type AuthCode struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Code       string    `gorm:"type:varchar(12);not null" json:"code"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	Validated  bool      `gorm:"not null;default:false" json:"validated"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`

	Customer User `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate hook for AuthCode
func (ac *AuthCode) BeforeCreate(tx *gorm.DB) error {
	if ac.ID == uuid.Nil {
		ac.ID = uuid.New()
	}

	if ac.CreatedAt.IsZero() {
		ac.CreatedAt = time.Now()
	}

	if ac.Code == "" {
		return errors.New("code is required")
	}

	if ac.ExpiresAt.IsZero() {
		return errors.New("expiry is required")
	}

	return nil
}

// IsExpired returns true once the code's validity window has passed.
func (ac *AuthCode) IsExpired() bool {
	return time.Now().After(ac.ExpiresAt)
}

// MarkValidated flags the code as consumed.
func (ac *AuthCode) MarkValidated() {
	ac.Validated = true
}

// TableName returns the table name for AuthCode
func (ac *AuthCode) TableName() string {
	return "auth_codes"
}
