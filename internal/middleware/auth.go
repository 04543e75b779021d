package middleware

import (
	stderrors "errors"
	"log/slog"

	"conta-bancaria/internal/errors"
	"conta-bancaria/internal/handlers"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireAuth validates the Bearer token on the request and stores the
// authenticated identity on the echo context under "user_id", "user_cpf"
// and "user_role".
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			tokenString, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(tokenString)
			if err != nil {
				if stderrors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				slog.Warn("Token carries malformed user ID",
					"trace_id", GetTraceID(c),
					"user_id", claims.UserID,
				)
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			c.Set("user_id", userID)
			c.Set("user_cpf", claims.CPF)
			c.Set("user_role", claims.Role)

			return next(c)
		}
	}
}

// RequireRole allows the request through only when the authenticated user's
// role matches one of the given roles. Must run after RequireAuth.
func RequireRole(requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("user_role").(string)
			if !ok || role == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			for _, required := range requiredRoles {
				if role == required {
					return next(c)
				}
			}

			return handlers.SendError(c, errors.AuthInsufficientPermission)
		}
	}
}

// RequireManager restricts the route to bank staff.
func RequireManager() echo.MiddlewareFunc {
	return RequireRole(models.RoleManager, models.RoleAdmin)
}
