package dto

import "time"

// LoginRequest represents the first authentication step: credentials in,
// one-time code out.
type LoginRequest struct {
	CPF      string `json:"cpf" validate:"required,cpf"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse acknowledges credential verification. The code itself is
// delivered out of band; in development it is echoed for convenience.
type LoginResponse struct {
	Message   string    `json:"message"`
	Code      string    `json:"code,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidateCodeRequest represents the second authentication step
type ValidateCodeRequest struct {
	CPF  string `json:"cpf" validate:"required,cpf"`
	Code string `json:"code" validate:"required,len=6"`
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}
