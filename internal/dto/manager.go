package dto

import (
	"time"

	"conta-bancaria/internal/models"
)

// RegisterManagerRequest represents the request payload for creating a
// staff user. Role defaults to manager when omitted.
type RegisterManagerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	CPF      string `json:"cpf" validate:"required,cpf"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=manager admin"`
}

// UpdateManagerRequest represents the request payload for updating a
// manager's data. Nil fields are left untouched.
type UpdateManagerRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// ManagerResponse represents a staff user in API responses
type ManagerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewManagerResponse builds a response view from a staff user record
func NewManagerResponse(user *models.User) *ManagerResponse {
	return &ManagerResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		CPF:       user.CPF,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

// ManagerListResponse represents a paginated list of staff users
type ManagerListResponse struct {
	Managers []*ManagerResponse `json:"managers"`
	Total    int64              `json:"total"`
	Offset   int                `json:"offset"`
	Limit    int                `json:"limit"`
}
