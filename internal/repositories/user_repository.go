package repositories

import (
	"errors"
	"fmt"

	"conta-bancaria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrCPFExists    = errors.New("cpf already registered")
	ErrEmailExists  = errors.New("email already registered")
)

// userRepository implements UserRepositoryInterface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepositoryInterface {
	return &userRepository{db: db}
}

// Create persists a new user
func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCPFExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by ID
func (r *userRepository) FindByID(id uuid.UUID) (*models.User, error) {
	user := &models.User{ID: id}
	if err := r.db.First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// FindActiveByID retrieves a user by ID, excluding deactivated records
func (r *userRepository) FindActiveByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ? AND active = ?", id, true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// FindByCPF retrieves a user by CPF, active or not. Registration uses
// this to detect returning customers whose record was deactivated.
func (r *userRepository) FindByCPF(cpf string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("cpf = ?", cpf).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by cpf: %w", err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by email
func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// ListActiveByRole retrieves active users of a role with pagination
func (r *userRepository) ListActiveByRole(role string, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.Model(&models.User{}).Where("role = ? AND active = ?", role, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).
		Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// Save persists changes to an existing user
func (r *userRepository) Save(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Deactivate flips a user to inactive and cascades the flag to every
// account the user holds, all inside one transaction.
func (r *userRepository) Deactivate(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ? AND active = ?", id, true).
			Update("active", false)
		if result.Error != nil {
			return fmt.Errorf("failed to deactivate user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		if err := tx.Model(&models.Account{}).
			Where("customer_id = ? AND active = ?", id, true).
			Update("active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate user accounts: %w", err)
		}

		return nil
	})
}
