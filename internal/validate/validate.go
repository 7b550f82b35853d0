package validate

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Let the numeric rules (min, gt, ...) see decimal fields as floats,
	// so money columns can be constrained with the same tags as ints.
	v.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})

	return v
}

func decimalAsFloat(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}

	return nil
}

// FieldErrors maps a failing struct field to the rule it broke. It is
// returned as the error from StructFields and marshals straight into the
// details of an error response.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return fmt.Sprintf("%d field(s) failed validation", len(fe))
}

// StructFields validates a struct against its `validate` tags.
func StructFields(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrs := make(FieldErrors, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fieldErrs[fieldErr.Field()] = fieldErr.Tag()
	}

	return fieldErrs
}
