package handlers

import (
	stderrors "errors"
	"net/http"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/errors"
	"conta-bancaria/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CustomerHandler handles customer lifecycle HTTP requests
type CustomerHandler struct {
	customerService services.CustomerServiceInterface
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService services.CustomerServiceInterface) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Register creates a customer and opens the requested accounts
// @Summary Register a customer
// @Description Register a customer by CPF and open the requested account types. A known CPF reuses the existing customer and only opens the accounts it does not yet hold; requesting a type the customer already holds fails the whole call.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.RegisterCustomerRequest true "Customer registration details"
// @Success 201 {object} dto.RegisterCustomerResponse "Customer registered with accounts"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 409 {object} errors.ErrorResponse "ACCOUNT_007 - Customer already holds a requested account type"
// @Failure 422 {object} errors.ErrorResponse "CUSTOMER_002 - CPF belongs to a deactivated customer"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /customers [post]
func (h *CustomerHandler) Register(c echo.Context) error {
	var req dto.RegisterCustomerRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	customer, accounts, err := h.customerService.Register(req)
	if err != nil {
		switch err {
		case services.ErrCustomerInactive:
			return SendError(c, errors.CustomerInactive)
		case services.ErrDuplicateAccountType:
			return SendError(c, errors.AccountDuplicateType)
		case services.ErrUnknownAccountType:
			return SendError(c, errors.AccountUnknownType)
		}
		// Password policy failures surface wrapped from hashing.
		if stderrors.Is(err, services.ErrPasswordTooShort) ||
			stderrors.Is(err, services.ErrPasswordTooLong) ||
			stderrors.Is(err, services.ErrPasswordWeak) ||
			stderrors.Is(err, services.ErrPasswordEmpty) {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.RegisterCustomerResponse{
		Customer: dto.NewCustomerResponse(customer),
		Accounts: accounts,
		Message:  "Customer registered successfully",
	})
}

// GetCustomer retrieves a customer by ID
// @Summary Get customer by ID
// @Description Retrieve an active customer's profile
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Success 200 {object} dto.CustomerResponse "Customer profile"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid customer ID format"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /customers/{customerId} [get]
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid customer ID"))
	}

	customer, err := h.customerService.GetCustomer(customerID)
	if err != nil {
		if err == services.ErrCustomerNotFound {
			return SendError(c, errors.CustomerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCustomerResponse(customer))
}

// GetCustomerByCPF retrieves a customer by CPF
// @Summary Get customer by CPF
// @Description Manager-only lookup of an active customer by CPF
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param cpf path string true "Customer CPF (11 digits)"
// @Success 200 {object} dto.CustomerResponse "Customer profile"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /customers/by-cpf/{cpf} [get]
func (h *CustomerHandler) GetCustomerByCPF(c echo.Context) error {
	customer, err := h.customerService.GetCustomerByCPF(c.Param("cpf"))
	if err != nil {
		if err == services.ErrCustomerNotFound {
			return SendError(c, errors.CustomerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCustomerResponse(customer))
}

// UpdateCustomer patches a customer's profile
// @Summary Update a customer
// @Description Update a customer's name and/or email. Omitted fields are left untouched.
// @Tags Customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Param request body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse "Updated customer profile"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /customers/{customerId} [patch]
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid customer ID"))
	}

	var req dto.UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	customer, err := h.customerService.UpdateCustomer(customerID, req)
	if err != nil {
		if err == services.ErrCustomerNotFound {
			return SendError(c, errors.CustomerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCustomerResponse(customer))
}

// GetCustomerAccounts retrieves a customer's active accounts
// @Summary Get customer accounts
// @Description Retrieve summaries of a customer's active accounts
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Success 200 {array} dto.AccountSummary "Account summaries"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid customer ID format"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /customers/{customerId}/accounts [get]
func (h *CustomerHandler) GetCustomerAccounts(c echo.Context) error {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid customer ID"))
	}

	accounts, err := h.customerService.GetCustomerAccounts(customerID)
	if err != nil {
		if err == services.ErrCustomerNotFound {
			return SendError(c, errors.CustomerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, accounts)
}

// ListCustomers retrieves active customers with pagination
// @Summary List customers
// @Description Manager-only listing of active customers
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.CustomerListResponse "Customer profiles"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	offset, limit := getPagination(c)

	customers, total, err := h.customerService.ListCustomers(offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]*dto.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, dto.NewCustomerResponse(customer))
	}

	return c.JSON(http.StatusOK, dto.CustomerListResponse{
		Customers: responses,
		Total:     total,
		Offset:    offset,
		Limit:     limit,
	})
}

// Deactivate marks a customer as inactive
// @Summary Deactivate a customer
// @Description Deactivate a customer and all of their accounts. Rows and balances are kept; the CPF can no longer register or authenticate.
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Success 200 {object} dto.MessageResponse "Customer deactivated"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid customer ID format"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /customers/{customerId} [delete]
func (h *CustomerHandler) Deactivate(c echo.Context) error {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid customer ID"))
	}

	if err := h.customerService.Deactivate(customerID); err != nil {
		if err == services.ErrCustomerNotFound {
			return SendError(c, errors.CustomerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Customer deactivated successfully"})
}
