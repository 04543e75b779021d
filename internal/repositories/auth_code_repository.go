package repositories

import (
	"errors"
	"fmt"
	"time"

	"conta-bancaria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAuthCodeNotFound = errors.New("authentication code not found")

// authCodeRepository implements AuthCodeRepositoryInterface
type authCodeRepository struct {
	db *gorm.DB
}

// NewAuthCodeRepository creates a new authentication code repository
func NewAuthCodeRepository(db *gorm.DB) AuthCodeRepositoryInterface {
	return &authCodeRepository{db: db}
}

func (r *authCodeRepository) Create(code *models.AuthCode) error {
	if err := r.db.Create(code).Error; err != nil {
		return fmt.Errorf("failed to create auth code: %w", err)
	}
	return nil
}

// FindValidByCode retrieves an unexpired, not-yet-validated code for a
// customer. Expired and consumed codes look the same as missing ones.
func (r *authCodeRepository) FindValidByCode(customerID uuid.UUID, code string) (*models.AuthCode, error) {
	var authCode models.AuthCode
	if err := r.db.Where(
		"customer_id = ? AND code = ? AND validated = ? AND expires_at > ?",
		customerID, code, false, time.Now(),
	).First(&authCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthCodeNotFound
		}
		return nil, fmt.Errorf("failed to get auth code: %w", err)
	}
	return &authCode, nil
}

func (r *authCodeRepository) Save(code *models.AuthCode) error {
	if err := r.db.Save(code).Error; err != nil {
		return fmt.Errorf("failed to save auth code: %w", err)
	}
	return nil
}

// DeleteExpired purges codes past their expiry
func (r *authCodeRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now()).Delete(&models.AuthCode{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired auth codes: %w", result.Error)
	}
	return result.RowsAffected, nil
}
