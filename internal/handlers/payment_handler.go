package handlers

import (
	"net/http"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/errors"
	"conta-bancaria/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PaymentHandler handles boleto payment HTTP requests
type PaymentHandler struct {
	paymentService services.PaymentServiceInterface
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService services.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PayBoleto pays a boleto from an account
// @Summary Pay a boleto
// @Description Debit the boleto amount plus any applied fees from the account. Each boleto line can be paid once.
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param number path string true "Paying account number"
// @Param request body dto.PayBoletoRequest true "Boleto, amount and optional fee IDs"
// @Success 201 {object} dto.PaymentResponse "Payment confirmed"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or unknown fee"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 409 {object} errors.ErrorResponse "PAYMENT_003 - Boleto already paid"
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_003 - Insufficient balance for amount plus fees"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts/{number}/payments [post]
func (h *PaymentHandler) PayBoleto(c echo.Context) error {
	var req dto.PayBoletoRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	payment, err := h.paymentService.PayBoleto(c.Param("number"), req)
	if err != nil {
		switch err {
		case services.ErrAccountNotFound:
			return SendError(c, errors.AccountNotFound)
		case services.ErrBoletoAlreadyPaid:
			return SendError(c, errors.PaymentDuplicateBoleto)
		case services.ErrUnknownFee:
			return SendError(c, errors.FeeNotFound)
		case services.ErrInvalidAmount:
			return SendError(c, errors.AccountInvalidAmount)
		case services.ErrInsufficientFunds:
			return SendError(c, errors.AccountInsufficientFunds)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewPaymentResponse(payment))
}

// GetPayment retrieves a payment by ID
// @Summary Get payment by ID
// @Description Retrieve a payment with its applied fees
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param paymentId path string true "Payment ID (UUID)"
// @Success 200 {object} dto.PaymentResponse "Payment details"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid payment ID format"
// @Failure 404 {object} errors.ErrorResponse "PAYMENT_001 - Payment not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /payments/{paymentId} [get]
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid payment ID"))
	}

	payment, err := h.paymentService.GetPayment(paymentID)
	if err != nil {
		if err == services.ErrPaymentNotFound {
			return SendError(c, errors.PaymentNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewPaymentResponse(payment))
}

// ListPayments retrieves payments made from an account
// @Summary List account payments
// @Description Retrieve payments made from an account, most recent first
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param number path string true "Account number"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.PaymentListResponse "Payments"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts/{number}/payments [get]
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	offset, limit := getPagination(c)

	payments, total, err := h.paymentService.ListPayments(c.Param("number"), offset, limit)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	responses := make([]*dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, dto.NewPaymentResponse(&payments[i]))
	}

	return c.JSON(http.StatusOK, dto.PaymentListResponse{
		Payments: responses,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	})
}
