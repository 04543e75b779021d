package repositories

import (
	"errors"
	"fmt"

	"conta-bancaria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrFeeNotFound = errors.New("fee not found")

// feeRepository implements FeeRepositoryInterface
type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(db *gorm.DB) FeeRepositoryInterface {
	return &feeRepository{db: db}
}

func (r *feeRepository) Create(fee *models.Fee) error {
	if err := r.db.Create(fee).Error; err != nil {
		return fmt.Errorf("failed to create fee: %w", err)
	}
	return nil
}

func (r *feeRepository) FindByID(id uuid.UUID) (*models.Fee, error) {
	var fee models.Fee
	if err := r.db.First(&fee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, fmt.Errorf("failed to get fee: %w", err)
	}
	return &fee, nil
}

// FindByIDs resolves a batch of fee IDs. Every ID must exist, otherwise
// a payment could silently skip one of its charges.
func (r *feeRepository) FindByIDs(ids []uuid.UUID) ([]models.Fee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var fees []models.Fee
	if err := r.db.Where("id IN ?", ids).Find(&fees).Error; err != nil {
		return nil, fmt.Errorf("failed to get fees: %w", err)
	}
	if len(fees) != len(ids) {
		return nil, ErrFeeNotFound
	}
	return fees, nil
}

func (r *feeRepository) List() ([]models.Fee, error) {
	var fees []models.Fee
	if err := r.db.Order("description ASC").Find(&fees).Error; err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}
	return fees, nil
}

func (r *feeRepository) Save(fee *models.Fee) error {
	if err := r.db.Save(fee).Error; err != nil {
		return fmt.Errorf("failed to save fee: %w", err)
	}
	return nil
}

func (r *feeRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Fee{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete fee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFeeNotFound
	}
	return nil
}
