package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAuthCode    = errors.New("invalid or expired authentication code")
)

// authService implements AuthServiceInterface. Authentication is a two
// step flow: credentials buy a short-lived one-time code, the code buys
// the access token.
type authService struct {
	userRepo        repositories.UserRepositoryInterface
	authCodeRepo    repositories.AuthCodeRepositoryInterface
	auditRepo       repositories.AuditLogRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
	codeTTL         time.Duration
}

// NewAuthService creates an authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	authCodeRepo repositories.AuthCodeRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	codeTTL time.Duration,
) AuthServiceInterface {
	return &authService{
		userRepo:        userRepo,
		authCodeRepo:    authCodeRepo,
		auditRepo:       auditRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		metrics:         metrics,
		logger:          logger,
		codeTTL:         codeTTL,
	}
}

// Login verifies credentials and issues a one-time authentication code.
// Unknown CPFs, deactivated customers and wrong passwords all answer the
// same way so the response does not leak which part failed.
func (s *authService) Login(cpf, password, ipAddress string) (*models.AuthCode, error) {
	user, err := s.userRepo.FindByCPF(cpf)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.recordFailedLogin(cpf, ipAddress, "unknown_cpf")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.Active || !s.passwordService.ComparePassword(password, user.PasswordHash) {
		s.recordFailedLogin(cpf, ipAddress, "bad_credentials")
		return nil, ErrInvalidCredentials
	}

	code, err := generateAuthCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate authentication code: %w", err)
	}

	authCode := &models.AuthCode{
		CustomerID: user.ID,
		Code:       code,
		ExpiresAt:  time.Now().Add(s.codeTTL),
	}
	if err := s.authCodeRepo.Create(authCode); err != nil {
		return nil, fmt.Errorf("failed to store authentication code: %w", err)
	}

	s.metrics.IncrementCounter("authentication_event", map[string]string{
		"event_type": "code_issued",
	})
	s.logger.Info("authentication code issued", "user_id", user.ID.String())

	return authCode, nil
}

// ValidateCode exchanges a valid one-time code for an access token and
// marks the code as consumed.
func (s *authService) ValidateCode(cpf, code, ipAddress string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByCPF(cpf)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidAuthCode
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.Active {
		return nil, ErrInvalidAuthCode
	}

	authCode, err := s.authCodeRepo.FindValidByCode(user.ID, code)
	if err != nil {
		if errors.Is(err, repositories.ErrAuthCodeNotFound) {
			s.recordFailedLogin(cpf, ipAddress, "bad_code")
			return nil, ErrInvalidAuthCode
		}
		return nil, fmt.Errorf("failed to look up authentication code: %w", err)
	}

	authCode.MarkValidated()
	if err := s.authCodeRepo.Save(authCode); err != nil {
		return nil, fmt.Errorf("failed to consume authentication code: %w", err)
	}

	token, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.auditRepo.Create(&models.AuditLog{
		UserID:     &user.ID,
		Action:     models.AuditActionLogin,
		Resource:   "auth",
		ResourceID: user.ID.String(),
		IPAddress:  ipAddress,
		UserAgent:  "api",
	}); err != nil {
		s.logger.Error("failed to create audit log", "error", err,
			"action", models.AuditActionLogin)
	}

	s.metrics.IncrementCounter("authentication_event", map[string]string{
		"event_type": "login",
	})
	s.logger.Info("login completed", "user_id", user.ID.String())

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Role:        user.Role,
	}, nil
}

func (s *authService) recordFailedLogin(cpf, ipAddress, reason string) {
	if err := s.auditRepo.Create(&models.AuditLog{
		Action:    models.AuditActionFailedLogin,
		Resource:  "auth",
		IPAddress: ipAddress,
		UserAgent: "api",
		Metadata: models.JSONBMap{
			"cpf":    maskCPF(cpf),
			"reason": reason,
		},
	}); err != nil {
		s.logger.Error("failed to create audit log", "error", err,
			"action", models.AuditActionFailedLogin)
	}

	s.metrics.IncrementCounter("authentication_event", map[string]string{
		"event_type": "failed_login",
	})
}

func generateAuthCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func maskCPF(cpf string) string {
	if len(cpf) < 4 {
		return "***"
	}
	return "*******" + cpf[len(cpf)-4:]
}
