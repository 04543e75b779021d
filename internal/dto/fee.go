package dto

import (
	"conta-bancaria/internal/models"

	"github.com/shopspring/decimal"
)

// FeeRequest represents the request payload for creating or updating a fee
type FeeRequest struct {
	Description string `json:"description" validate:"required,min=2,max=255"`
	Percent     string `json:"percent" validate:"required,amount"`
	FixedAmount string `json:"fixed_amount" validate:"required,amount"`
}

// FeeResponse represents a fee in API responses
type FeeResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Percent     decimal.Decimal `json:"percent"`
	FixedAmount decimal.Decimal `json:"fixed_amount"`
}

// NewFeeResponse builds a response view from a fee record
func NewFeeResponse(fee *models.Fee) *FeeResponse {
	return &FeeResponse{
		ID:          fee.ID.String(),
		Description: fee.Description,
		Percent:     fee.Percent,
		FixedAmount: fee.FixedAmount,
	}
}

// FeeListResponse represents the fee catalog
type FeeListResponse struct {
	Fees []*FeeResponse `json:"fees"`
}
