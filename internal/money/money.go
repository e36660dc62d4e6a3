// Package money holds the integer minor-unit type used for all split and
// settlement arithmetic, plus conversions to and from exact decimal strings
// at API boundaries.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is an amount in minor currency units (1/100 of a major unit).
type Cents int64

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrSubCent       = errors.New("amount has precision below one cent")
)

var hundred = decimal.NewFromInt(100)

// Parse converts a decimal string such as "100", "100.5" or "-12.34" to cents.
// Precision finer than a cent is rejected unless the extra digits are zero.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// FromDecimal converts a major-unit decimal to cents. It fails when the value
// cannot be represented exactly.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	scaled := d.Mul(hundred)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrSubCent, d.String())
	}
	return Cents(scaled.IntPart()), nil
}

// Round converts a major-unit decimal to cents, rounding half away from zero.
func Round(d decimal.Decimal) Cents {
	return Cents(d.Mul(hundred).Round(0).IntPart())
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Major returns the amount in major units as a float. Only use it for
// coarse comparisons, never for arithmetic.
func (c Cents) Major() float64 {
	return c.Decimal().InexactFloat64()
}

// String formats the amount with exactly two fractional digits, e.g. "-12.34".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Abs returns the absolute value.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Sum adds up a list of amounts.
func Sum(amounts ...Cents) Cents {
	var total Cents
	for _, a := range amounts {
		total += a
	}
	return total
}
