package dto

import (
	"time"

	"conta-bancaria/internal/models"

	"github.com/shopspring/decimal"
)

// PayBoletoRequest represents the request payload for paying a boleto
type PayBoletoRequest struct {
	Boleto string   `json:"boleto" validate:"required,min=10,max=60"`
	Amount string   `json:"amount" validate:"required,amount"`
	FeeIDs []string `json:"fee_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID         string          `json:"id"`
	Boleto     string          `json:"boleto"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	Status     string          `json:"status"`
	PaidAt     time.Time       `json:"paid_at"`
	Fees       []FeeResponse   `json:"fees,omitempty"`
}

// NewPaymentResponse builds a response view from a payment record
func NewPaymentResponse(payment *models.Payment) *PaymentResponse {
	fees := make([]FeeResponse, 0, len(payment.Fees))
	for i := range payment.Fees {
		fees = append(fees, *NewFeeResponse(&payment.Fees[i]))
	}

	return &PaymentResponse{
		ID:         payment.ID.String(),
		Boleto:     payment.Boleto,
		AmountPaid: payment.AmountPaid,
		TotalPaid:  payment.TotalWithFees(),
		Status:     payment.Status,
		PaidAt:     payment.PaidAt,
		Fees:       fees,
	}
}

// PaymentListResponse represents a paginated list of payments
type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int64              `json:"total"`
	Offset   int                `json:"offset"`
	Limit    int                `json:"limit"`
}
