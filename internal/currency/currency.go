// Package currency provides ISO 4217 metadata and fixed-point helpers for
// amounts denominated in a currency.
//
// Currency metadata (symbol, minor unit count, display template) comes from
// the static table embedded in github.com/Rhymond/go-money, so lookups never
// depend on the host platform or its locale database.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCode   = errors.New("unknown currency code")
	ErrInvalidNumber = errors.New("invalid number")
)

// Info describes one ISO 4217 currency.
type Info struct {
	// Code is the three-letter ISO 4217 code (e.g. "USD").
	Code string

	// Symbol is the display symbol (e.g. "$", "€").
	Symbol string

	// FractionDigits is the standard number of minor-unit digits
	// (2 for USD, 0 for JPY, 3 for KWD).
	FractionDigits int

	// template places the symbol relative to the amount: "$" marks the
	// symbol and "1" the amount (e.g. "$1" or "1 $").
	template string
}

// Lookup returns the currency metadata for an ISO 4217 code.
func Lookup(code string) (Info, error) {
	c := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if c == nil {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return Info{
		Code:           c.Code,
		Symbol:         c.Grapheme,
		FractionDigits: c.Fraction,
		template:       c.Template,
	}, nil
}

// IsKnown reports whether code is present in the ISO 4217 table.
func IsKnown(code string) bool {
	_, err := Lookup(code)
	return err == nil
}

// FractionDigits returns the minor-unit count for code, or 2 when the code
// is not in the table.
func FractionDigits(code string) int {
	info, err := Lookup(code)
	if err != nil {
		return 2
	}
	return info.FractionDigits
}

// DecimalFactor returns 10^digits.
func DecimalFactor(digits int) int64 {
	factor := int64(1)
	for i := 0; i < digits; i++ {
		factor *= 10
	}
	return factor
}

// ToCents converts an amount to a fixed-point integer scaled by
// 10^digits, rounding half away from zero.
func ToCents(amount float64, digits int) int64 {
	return decimal.NewFromFloat(amount).Shift(int32(digits)).Round(0).IntPart()
}

// FromCents converts a fixed-point integer back to an amount.
func FromCents(cents int64, digits int) float64 {
	return decimal.New(cents, -int32(digits)).InexactFloat64()
}
