package handlers

import (
	"net/http"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/errors"
	"conta-bancaria/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// FeeHandler handles fee catalog HTTP requests. All routes are
// manager-only.
type FeeHandler struct {
	feeService services.FeeServiceInterface
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(feeService services.FeeServiceInterface) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// CreateFee adds a fee to the catalog
// @Summary Create a fee
// @Description Add a fee (percentage and/or fixed amount) to the catalog
// @Tags Fees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.FeeRequest true "Fee details"
// @Success 201 {object} dto.FeeResponse "Fee created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or negative component"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /fees [post]
func (h *FeeHandler) CreateFee(c echo.Context) error {
	var req dto.FeeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	fee, err := h.feeService.CreateFee(req)
	if err != nil {
		if err == services.ErrInvalidAmount {
			return SendError(c, errors.FeeInvalid)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewFeeResponse(fee))
}

// GetFee retrieves a fee by ID
// @Summary Get fee by ID
// @Tags Fees
// @Security BearerAuth
// @Produce json
// @Param feeId path string true "Fee ID (UUID)"
// @Success 200 {object} dto.FeeResponse "Fee details"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid fee ID format"
// @Failure 404 {object} errors.ErrorResponse "FEE_001 - Fee not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /fees/{feeId} [get]
func (h *FeeHandler) GetFee(c echo.Context) error {
	feeID, err := uuid.Parse(c.Param("feeId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid fee ID"))
	}

	fee, err := h.feeService.GetFee(feeID)
	if err != nil {
		if err == services.ErrFeeNotFound {
			return SendError(c, errors.FeeNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewFeeResponse(fee))
}

// ListFees retrieves the fee catalog
// @Summary List fees
// @Tags Fees
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.FeeListResponse "Fee catalog"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /fees [get]
func (h *FeeHandler) ListFees(c echo.Context) error {
	fees, err := h.feeService.ListFees()
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]*dto.FeeResponse, 0, len(fees))
	for i := range fees {
		responses = append(responses, dto.NewFeeResponse(&fees[i]))
	}

	return c.JSON(http.StatusOK, dto.FeeListResponse{Fees: responses})
}

// UpdateFee replaces a fee's description and components
// @Summary Update a fee
// @Tags Fees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param feeId path string true "Fee ID (UUID)"
// @Param request body dto.FeeRequest true "New fee details"
// @Success 200 {object} dto.FeeResponse "Updated fee"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or negative component"
// @Failure 404 {object} errors.ErrorResponse "FEE_001 - Fee not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /fees/{feeId} [put]
func (h *FeeHandler) UpdateFee(c echo.Context) error {
	feeID, err := uuid.Parse(c.Param("feeId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid fee ID"))
	}

	var req dto.FeeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	fee, err := h.feeService.UpdateFee(feeID, req)
	if err != nil {
		switch err {
		case services.ErrFeeNotFound:
			return SendError(c, errors.FeeNotFound)
		case services.ErrInvalidAmount:
			return SendError(c, errors.FeeInvalid)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewFeeResponse(fee))
}

// DeleteFee removes a fee from the catalog
// @Summary Delete a fee
// @Description Remove a fee from the catalog. Payments that already applied it keep their association.
// @Tags Fees
// @Security BearerAuth
// @Produce json
// @Param feeId path string true "Fee ID (UUID)"
// @Success 200 {object} dto.MessageResponse "Fee deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid fee ID format"
// @Failure 404 {object} errors.ErrorResponse "FEE_001 - Fee not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /fees/{feeId} [delete]
func (h *FeeHandler) DeleteFee(c echo.Context) error {
	feeID, err := uuid.Parse(c.Param("feeId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid fee ID"))
	}

	if err := h.feeService.DeleteFee(feeID); err != nil {
		if err == services.ErrFeeNotFound {
			return SendError(c, errors.FeeNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Fee deleted successfully"})
}
