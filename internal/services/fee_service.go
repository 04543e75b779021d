package services

import (
	"errors"
	"fmt"
	"log/slog"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/repositories"

	"github.com/google/uuid"
)

var ErrFeeNotFound = errors.New("fee not found")

// feeService implements FeeServiceInterface
type feeService struct {
	feeRepo repositories.FeeRepositoryInterface
	logger  *slog.Logger
}

// NewFeeService creates a fee catalog service
func NewFeeService(feeRepo repositories.FeeRepositoryInterface, logger *slog.Logger) FeeServiceInterface {
	return &feeService{
		feeRepo: feeRepo,
		logger:  logger,
	}
}

func (s *feeService) CreateFee(req dto.FeeRequest) (*models.Fee, error) {
	fee, err := buildFee(req)
	if err != nil {
		return nil, err
	}

	if err := s.feeRepo.Create(fee); err != nil {
		return nil, fmt.Errorf("failed to create fee: %w", err)
	}

	s.logger.Info("fee created", "fee_id", fee.ID.String(), "description", fee.Description)
	return fee, nil
}

func (s *feeService) GetFee(id uuid.UUID) (*models.Fee, error) {
	fee, err := s.feeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrFeeNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, fmt.Errorf("failed to get fee: %w", err)
	}
	return fee, nil
}

func (s *feeService) ListFees() ([]models.Fee, error) {
	return s.feeRepo.List()
}

func (s *feeService) UpdateFee(id uuid.UUID, req dto.FeeRequest) (*models.Fee, error) {
	fee, err := s.GetFee(id)
	if err != nil {
		return nil, err
	}

	updated, err := buildFee(req)
	if err != nil {
		return nil, err
	}

	fee.Description = updated.Description
	fee.Percent = updated.Percent
	fee.FixedAmount = updated.FixedAmount

	if err := s.feeRepo.Save(fee); err != nil {
		return nil, fmt.Errorf("failed to save fee: %w", err)
	}

	s.logger.Info("fee updated", "fee_id", fee.ID.String())
	return fee, nil
}

func (s *feeService) DeleteFee(id uuid.UUID) error {
	if err := s.feeRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrFeeNotFound) {
			return ErrFeeNotFound
		}
		return fmt.Errorf("failed to delete fee: %w", err)
	}

	s.logger.Info("fee deleted", "fee_id", id.String())
	return nil
}

func buildFee(req dto.FeeRequest) (*models.Fee, error) {
	percent, err := parseAmountField(req.Percent)
	if err != nil || percent.IsNegative() {
		return nil, ErrInvalidAmount
	}

	fixed, err := parseAmountField(req.FixedAmount)
	if err != nil || fixed.IsNegative() {
		return nil, ErrInvalidAmount
	}

	return &models.Fee{
		Description: req.Description,
		Percent:     percent,
		FixedAmount: fixed,
	}, nil
}
