package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("gcash")
	require.NoError(t, err)
	assert.True(t, m.IsEWallet())
	assert.Equal(t, "e-wallet", m.Kind())

	m, err = ParsePaymentMethod("debit_card")
	require.NoError(t, err)
	assert.True(t, m.IsCard())
	assert.Equal(t, "card", m.Kind())

	_, err = ParsePaymentMethod("cash")
	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
}

func TestFieldProblems_UsesJSONNames(t *testing.T) {
	problems := FieldProblems(BillingAddress{City: "Manila", Country: "Canada"})

	assert.ElementsMatch(t, []string{
		"billingAddress is required",
		"billingZip is required",
		"billingCountry must be one of Philippines, USA, Singapore, Japan",
	}, problems)
}

func TestFieldProblems_CVVHasReadableName(t *testing.T) {
	problems := FieldProblems(CardPayment{
		Method:         MethodCreditCard,
		CardholderName: "Juan Dela Cruz",
		CardNumber:     "4111111111111111",
		Expiry:         "12/29",
	})
	assert.Equal(t, []string{"cvv is required"}, problems)
}

func TestValidationError_IsErrValidation(t *testing.T) {
	var err error = &ValidationError{Scope: "card", Problems: []string{"cvv is required"}}

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "card: cvv is required", err.Error())
}

func TestCustomizationOption_LineTotal(t *testing.T) {
	assert.Equal(t, int64(0), CustomizationOption{Price: 1800}.LineTotal())
	assert.Equal(t, int64(3500), CustomizationOption{Price: 3500, Selected: true}.LineTotal())
	assert.Equal(t, int64(3600), CustomizationOption{Price: 1800, Selected: true, Quantity: 2}.LineTotal())
}
