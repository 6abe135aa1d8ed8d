package models

import (
	"errors"
	"fmt"

	"github.com/mmynk/moneybalance/internal/currency"
)

// ErrNonPositiveRate is returned when an exchange rate is zero or negative.
var ErrNonPositiveRate = errors.New("exchange rates must be positive")

// Currency represents one currency usable within a calculation.
type Currency struct {
	// ID is the unique identifier for the currency (UUID format).
	ID string

	// CalculationID is the calculation this currency belongs to.
	CalculationID string

	// Code is the ISO 4217 currency code.
	Code string

	// FractionDigits is the minor-unit count derived from Code.
	FractionDigits int

	// RateThis and RateMain form the exchange rate pair: RateThis units of
	// this currency are worth RateMain units of the main currency.
	// Both are 1 for the main currency.
	RateThis float64
	RateMain float64
}

// NewCurrency creates a currency with a neutral 1:1 exchange rate.
func NewCurrency(calculationID, code string) (*Currency, error) {
	info, err := currency.Lookup(code)
	if err != nil {
		return nil, err
	}
	return &Currency{
		CalculationID:  calculationID,
		Code:           info.Code,
		FractionDigits: info.FractionDigits,
		RateThis:       1,
		RateMain:       1,
	}, nil
}

// SetExchangeRate sets the rate pair. Both values must be positive.
func (c *Currency) SetExchangeRate(rateThis, rateMain float64) error {
	if !(rateThis > 0) || !(rateMain > 0) {
		return fmt.Errorf("%w: %v/%v", ErrNonPositiveRate, rateThis, rateMain)
	}
	c.RateThis = rateThis
	c.RateMain = rateMain
	return nil
}

// ExchangeRate returns the number of main-currency units per unit of c.
func (c *Currency) ExchangeRate() float64 {
	return c.RateMain / c.RateThis
}

// ExchangeAmount converts an amount in this currency to main-currency units.
func (c *Currency) ExchangeAmount(amount float64) float64 {
	return amount * c.RateMain / c.RateThis
}

// DecimalFactor returns 10^FractionDigits.
func (c *Currency) DecimalFactor() int64 {
	return currency.DecimalFactor(c.FractionDigits)
}
