package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type cpfProbe struct {
	CPF string `validate:"cpf"`
}

func TestValidateCPF(t *testing.T) {
	v := NewValidator().GetValidate()

	valid := []string{"52998224725", "15350946056"}
	for _, cpf := range valid {
		assert.NoError(t, v.Struct(cpfProbe{CPF: cpf}), cpf)
	}

	invalid := []string{
		"",
		"529982247",      // too short
		"52998224724",    // bad check digit
		"11111111111",    // repeated digits
		"5299822472a",    // non-numeric
		"529.982.247-25", // formatted
	}
	for _, cpf := range invalid {
		assert.Error(t, v.Struct(cpfProbe{CPF: cpf}), cpf)
	}
}

type accountProbe struct {
	Number string `validate:"account_number"`
	Type   string `validate:"account_type"`
	Amount string `validate:"amount"`
}

func TestCustomAccountRules(t *testing.T) {
	v := NewValidator().GetValidate()

	assert.NoError(t, v.Struct(accountProbe{
		Number: "000123-4",
		Type:   "corrente",
		Amount: "10.50",
	}))

	assert.Error(t, v.Struct(accountProbe{
		Number: "123-4",
		Type:   "corrente",
		Amount: "10.50",
	}), "short number")

	assert.Error(t, v.Struct(accountProbe{
		Number: "000123-4",
		Type:   "SALARIO",
		Amount: "10.50",
	}), "unknown type")

	assert.Error(t, v.Struct(accountProbe{
		Number: "000123-4",
		Type:   "POUPANCA",
		Amount: "-1.00",
	}), "negative amount")

	assert.Error(t, v.Struct(accountProbe{
		Number: "000123-4",
		Type:   "POUPANCA",
		Amount: "ten",
	}), "malformed amount")
}
