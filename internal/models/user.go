package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	cpfRegex   = regexp.MustCompile(`^\d{11}$`)
)

// User is an account holder or bank staff member; Role decides which
// operations the API layer lets them reach. Customers own accounts,
// managers and admins do not.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"type:varchar(120);not null" json:"name"`
	CPF          string    `gorm:"type:varchar(11);uniqueIndex;not null" json:"cpf"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`

	Accounts  []Account  `gorm:"foreignKey:CustomerID" json:"-"`
	AuthCodes []AuthCode `gorm:"foreignKey:CustomerID" json:"-"`
	AuditLogs []AuditLog `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	// Map-based updates carry an empty struct; only validate full saves.
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	u.UpdatedAt = time.Now()
	return u.Validate()
}

func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}

	if !cpfRegex.MatchString(u.CPF) {
		return errors.New("cpf must be 11 digits")
	}

	if !emailRegex.MatchString(u.Email) {
		return errors.New("invalid email format")
	}

	if !IsValidRole(u.Role) {
		return fmt.Errorf("invalid role: %s", u.Role)
	}

	return nil
}

// Deactivate soft-deletes the user. Their accounts are deactivated by the
// repository in the same transaction.
func (u *User) Deactivate() {
	u.Active = false
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

func (u *User) TableName() string {
	return "users"
}

// IsValidRole checks if the role is one of the known roles
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	default:
		return false
	}
}

// IsValidCPF validates the raw CPF format (11 digits)
func IsValidCPF(cpf string) bool {
	return cpfRegex.MatchString(cpf)
}
