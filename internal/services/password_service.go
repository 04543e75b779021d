package services

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const (
	// Cost factor 12 for financial data protection.
	BCryptCost = 12

	MaxPasswordLength = 72 // bcrypt input limit
)

var (
	ErrPasswordEmpty    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
	ErrPasswordWeak     = errors.New("password must mix letters and numbers")

	letterRegex = regexp.MustCompile(`[A-Za-z]`)
	numberRegex = regexp.MustCompile(`[0-9]`)
)

// PasswordService handles password hashing and validation
type PasswordService struct {
	cost      int
	minLength int
}

// NewPasswordService creates a password service
func NewPasswordService(cost, minLength int) PasswordServiceInterface {
	if cost <= 0 {
		cost = BCryptCost
	}
	return &PasswordService{
		cost:      cost,
		minLength: minLength,
	}
}

// ValidatePassword checks if a password meets the security requirements
func (ps *PasswordService) ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}

	if len(password) < ps.minLength {
		return ErrPasswordTooShort
	}

	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}

	if !letterRegex.MatchString(password) || !numberRegex.MatchString(password) {
		return ErrPasswordWeak
	}

	return nil
}

// HashPassword validates and hashes a password using bcrypt
func (ps *PasswordService) HashPassword(password string) (string, error) {
	if err := ps.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// ComparePassword compares a plain password with a hashed password.
// Returns true if they match, false otherwise.
func (ps *PasswordService) ComparePassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
