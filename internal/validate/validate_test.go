package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Email    string          `validate:"required,email"`
	Price    decimal.Decimal `validate:"min=0"`
	Quantity int             `validate:"required,gt=0"`
}

func TestStructFields_valid(t *testing.T) {
	err := StructFields(&testPayload{
		Email:    "jane.doe@example.com",
		Price:    decimal.RequireFromString("19.99"),
		Quantity: 2,
	})

	assert.NoError(t, err)
}

func TestStructFields_malformedEmail(t *testing.T) {
	err := StructFields(&testPayload{
		Email:    "not-an-email",
		Price:    decimal.RequireFromString("19.99"),
		Quantity: 2,
	})

	require.Error(t, err)

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "email", fieldErrs["Email"])
}

func TestStructFields_negativePrice(t *testing.T) {
	err := StructFields(&testPayload{
		Email:    "jane.doe@example.com",
		Price:    decimal.RequireFromString("-0.01"),
		Quantity: 2,
	})

	require.Error(t, err)

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "min", fieldErrs["Price"])
}

func TestStructFields_nonPositiveQuantity(t *testing.T) {
	for _, quantity := range []int{0, -3} {
		err := StructFields(&testPayload{
			Email:    "jane.doe@example.com",
			Price:    decimal.RequireFromString("19.99"),
			Quantity: quantity,
		})

		require.Error(t, err, "quantity %d must fail validation", quantity)

		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "Quantity")
	}
}
