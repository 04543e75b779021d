package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayment_TotalWithFees(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		fees   []Fee
		want   string
	}{
		{
			name:   "no fees",
			amount: "150.00",
			want:   "150.00",
		},
		{
			name:   "percentage fee",
			amount: "100.00",
			fees: []Fee{
				{Description: "percentage", Percent: decimal.RequireFromString("0.02")},
			},
			want: "102.00",
		},
		{
			name:   "fixed fee",
			amount: "100.00",
			fees: []Fee{
				{Description: "fixed", FixedAmount: decimal.RequireFromString("1.50")},
			},
			want: "101.50",
		},
		{
			name:   "combined fee",
			amount: "100.00",
			fees: []Fee{
				{
					Description: "combined",
					Percent:     decimal.RequireFromString("0.02"),
					FixedAmount: decimal.RequireFromString("1.50"),
				},
			},
			want: "103.50",
		},
		{
			name:   "multiple fees accumulate",
			amount: "200.00",
			fees: []Fee{
				{Description: "first", Percent: decimal.RequireFromString("0.01")},
				{Description: "second", FixedAmount: decimal.RequireFromString("0.75")},
			},
			want: "202.75",
		},
		{
			name:   "percentage share rounds half-even",
			amount: "100.50",
			fees: []Fee{
				// 100.50 * 0.01 = 1.005 -> 1.00
				{Description: "rounding", Percent: decimal.RequireFromString("0.01")},
			},
			want: "101.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := Payment{
				AccountID:  uuid.New(),
				Boleto:     "23790000000001",
				AmountPaid: decimal.RequireFromString(tt.amount),
				Fees:       tt.fees,
			}
			assert.True(t, decimal.RequireFromString(tt.want).Equal(payment.TotalWithFees()))
		})
	}
}

func TestPayment_Lifecycle(t *testing.T) {
	payment := Payment{Status: PaymentStatusPending}

	payment.Confirm()
	assert.Equal(t, PaymentStatusConfirmed, payment.Status)

	payment.Fail()
	assert.Equal(t, PaymentStatusFailed, payment.Status)
}

func TestPayment_Validate(t *testing.T) {
	valid := Payment{
		AccountID:  uuid.New(),
		Boleto:     "23790000000001",
		AmountPaid: decimal.RequireFromString("10.00"),
		Status:     PaymentStatusPending,
	}
	require.NoError(t, valid.Validate())

	missingAccount := valid
	missingAccount.AccountID = uuid.Nil
	assert.Error(t, missingAccount.Validate())

	missingBoleto := valid
	missingBoleto.Boleto = ""
	assert.Error(t, missingBoleto.Validate())

	zeroAmount := valid
	zeroAmount.AmountPaid = decimal.Zero
	assert.ErrorIs(t, zeroAmount.Validate(), ErrInvalidPayment)

	badStatus := valid
	badStatus.Status = "settled"
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidPaymentStatus)
}

func TestFee_AppliedTo(t *testing.T) {
	fee := Fee{
		Description: "combined",
		Percent:     decimal.RequireFromString("0.025"),
		FixedAmount: decimal.RequireFromString("2.00"),
	}

	// 80.00 * 0.025 = 2.00, plus the fixed 2.00.
	assert.True(t, decimal.RequireFromString("4.00").
		Equal(fee.AppliedTo(decimal.RequireFromString("80.00"))))
}

func TestFee_Validate(t *testing.T) {
	valid := Fee{Description: "ok", Percent: decimal.Zero, FixedAmount: decimal.Zero}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Fee{}).Validate())
	assert.Error(t, (&Fee{
		Description: "negative",
		Percent:     decimal.RequireFromString("-0.01"),
	}).Validate())
}
