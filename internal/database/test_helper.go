package database

import (
	"fmt"
	"testing"

	"conta-bancaria/internal/config"
	"conta-bancaria/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestCustomer(t *testing.T, db *DB, cpf string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test Customer",
		CPF:          cpf,
		Email:        fmt.Sprintf("customer-%s@example.com", cpf),
		PasswordHash: "hashed_password",
		Role:         models.RoleCustomer,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}

	return user
}

func CreateTestManager(t *testing.T, db *DB, cpf string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test Manager",
		CPF:          cpf,
		Email:        fmt.Sprintf("manager-%s@example.com", cpf),
		PasswordHash: "hashed_password",
		Role:         models.RoleManager,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test manager: %v", err)
	}

	return user
}

func CreateTestAccount(t *testing.T, db *DB, customer *models.User, typeTag, number, balance string) *models.Account {
	t.Helper()

	account, err := models.NewAccountFromType(typeTag, number, customer.ID, decimal.RequireFromString(balance))
	if err != nil {
		t.Fatalf("failed to build test account: %v", err)
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"payment_fees",
		"payments",
		"fees",
		"auth_codes",
		"audit_logs",
		"accounts",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
