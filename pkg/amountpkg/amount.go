// Package amountpkg provides validation of decimal amounts received as text.
package amountpkg

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validation tags registered by Register.
const (
	TagAmount  = "amount"
	TagDecimal = "decimal"
)

// Bounds on accepted decimals. Arithmetic on a decimal rescales to its exponent, so an
// unbounded exponent costs memory and time proportional to its magnitude.
const (
	MaxScale    = 18
	MaxExponent = 18
	MaxDigits   = 38
)

// ErrOutOfRange is returned for decimals with too many digits or an extreme exponent.
var ErrOutOfRange = errors.New("decimal out of range")

// ParseBounded parses s and rejects values outside MaxScale, MaxExponent and MaxDigits.
func ParseBounded(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if exp := d.Exponent(); exp < -MaxScale || exp > MaxExponent || d.NumDigits() > MaxDigits {
		return decimal.Decimal{}, ErrOutOfRange
	}

	return d, nil
}

func parse(fl validator.FieldLevel) (decimal.Decimal, bool) {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return decimal.Decimal{}, false
	}

	d, err := ParseBounded(s)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return d, true
}

// ValidAmount validates that the field is a decimal strictly greater than zero.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	d, ok := parse(fl)
	return ok && d.IsPositive()
}

// ValidDecimal validates that the field is a decimal greater than or equal to zero.
var ValidDecimal validator.Func = func(fl validator.FieldLevel) bool {
	d, ok := parse(fl)
	return ok && !d.IsNegative()
}

// RegisterValidations registers the amount and decimal tags on v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation(TagAmount, ValidAmount); err != nil {
		return err
	}

	return v.RegisterValidation(TagDecimal, ValidDecimal)
}

// Register registers the tags on gin's default binding validator.
func Register() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return RegisterValidations(v)
	}

	return nil
}

// Parse converts an already validated amount string.
func Parse(s string) decimal.Decimal {
	d, err := ParseBounded(s)
	if err != nil {
		return decimal.Zero
	}

	return d
}
