package validation

import (
	"reflect"
	"regexp"
	"strings"

	"conta-bancaria/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_number", validateAccountNumber)
	_ = v.RegisterValidation("account_type", validateAccountType)
	_ = v.RegisterValidation("amount", validateAmount)
	_ = v.RegisterValidation("cpf", validateCPF)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

var accountNumberRegex = regexp.MustCompile(`^\d{6}-\d$`)

// validateAccountNumber validates the account number format: six digits,
// a dash and a check digit.
func validateAccountNumber(fl validator.FieldLevel) bool {
	return accountNumberRegex.MatchString(fl.Field().String())
}

// validateAccountType validates that the type tag resolves to a known
// account variant, case-insensitively.
func validateAccountType(fl validator.FieldLevel) bool {
	_, err := models.NormalizeAccountType(fl.Field().String())
	return err == nil
}

// validateAmount validates that a monetary field is a well-formed,
// non-negative decimal string. Positivity beyond that is enforced by the
// ledger itself so rejections carry the domain error code.
func validateAmount(fl validator.FieldLevel) bool {
	value, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !value.IsNegative()
}

// validateCPF validates a Brazilian CPF: eleven digits with valid check
// digits, not all repeated.
func validateCPF(fl validator.FieldLevel) bool {
	cpf := fl.Field().String()
	if len(cpf) != 11 {
		return false
	}

	digits := make([]int, 11)
	allEqual := true
	for i, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
		if digits[i] != digits[0] {
			allEqual = false
		}
	}
	if allEqual {
		return false
	}

	return digits[9] == cpfCheckDigit(digits[:9]) &&
		digits[10] == cpfCheckDigit(digits[:10])
}

func cpfCheckDigit(digits []int) int {
	weight := len(digits) + 1
	sum := 0
	for _, d := range digits {
		sum += d * weight
		weight--
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
