package dto

import (
	"time"

	"conta-bancaria/internal/models"
)

// RegisterCustomerRequest represents the request payload for registering a
// customer together with the accounts to open for them.
type RegisterCustomerRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=120"`
	CPF          string   `json:"cpf" validate:"required,cpf"`
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=8,max=72"`
	AccountTypes []string `json:"account_types" validate:"required,min=1,max=2,dive,account_type"`
}

// UpdateCustomerRequest represents the request payload for updating a
// customer's own data. Nil fields are left untouched.
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCustomerResponse builds a response view from a user record
func NewCustomerResponse(user *models.User) *CustomerResponse {
	return &CustomerResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		CPF:       user.CPF,
		Email:     user.Email,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

// RegisterCustomerResponse represents the result of a registration
type RegisterCustomerResponse struct {
	Customer *CustomerResponse `json:"customer"`
	Accounts []AccountSummary  `json:"accounts"`
	Message  string            `json:"message"`
}

// CustomerListResponse represents a paginated list of customers
type CustomerListResponse struct {
	Customers []*CustomerResponse `json:"customers"`
	Total     int64               `json:"total"`
	Offset    int                 `json:"offset"`
	Limit     int                 `json:"limit"`
}
