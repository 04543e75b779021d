package handlers

import (
	"net/http"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/errors"
	"conta-bancaria/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles the two-step authentication flow
type AuthHandler struct {
	authService services.AuthServiceInterface
	// echoCodes controls whether the one-time code is returned in the
	// login response. Enabled outside production, where there is no
	// delivery channel.
	echoCodes bool
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface, echoCodes bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		echoCodes:   echoCodes,
	}
}

// Login verifies credentials and issues a one-time authentication code
// @Summary Login with CPF and password
// @Description First authentication step: verify credentials and issue a short-lived one-time code. Unknown CPFs and wrong passwords answer identically.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "CPF and password"
// @Success 200 {object} dto.LoginResponse "Code issued"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 401 {object} errors.ErrorResponse "AUTH_001 - Invalid CPF or password"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	authCode, err := h.authService.Login(req.CPF, req.Password, getClientIP(c))
	if err != nil {
		if err == services.ErrInvalidCredentials {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	response := dto.LoginResponse{
		Message:   "Authentication code issued",
		ExpiresAt: authCode.ExpiresAt,
	}
	if h.echoCodes {
		response.Code = authCode.Code
	}

	return c.JSON(http.StatusOK, response)
}

// ValidateCode exchanges a one-time code for an access token
// @Summary Validate authentication code
// @Description Second authentication step: exchange a valid one-time code for a JWT access token. Codes are single use.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ValidateCodeRequest true "CPF and code"
// @Success 200 {object} dto.TokenResponse "Access token"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 401 {object} errors.ErrorResponse "AUTH_007 - Invalid or expired code"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /auth/validate [post]
func (h *AuthHandler) ValidateCode(c echo.Context) error {
	var req dto.ValidateCodeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	token, err := h.authService.ValidateCode(req.CPF, req.Code, getClientIP(c))
	if err != nil {
		if err == services.ErrInvalidAuthCode {
			return SendError(c, errors.AuthCodeInvalid)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, token)
}
