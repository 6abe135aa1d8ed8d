package models

import "time"

// Expense represents an amount paid by one person on behalf of the group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// CalculationID is the calculation this expense belongs to.
	CalculationID string

	// PayerID is the person who paid.
	PayerID string

	// Title describes the expense (e.g. "Groceries").
	Title string

	// Amount is the paid amount in the expense currency, major units.
	Amount float64

	// CurrencyID references one of the calculation's currencies.
	CurrencyID string

	// Date is the calendar day of the expense (midnight UTC).
	Date time.Time

	// SplitWeights maps person IDs to positive weights.
	// Nil or empty means an even split across all persons of the calculation.
	SplitWeights map[string]float64
}

// IsUnevenSplit reports whether the expense carries custom split weights.
func (e *Expense) IsUnevenSplit() bool {
	return len(e.SplitWeights) > 0
}

// Day truncates t to its calendar day in t's location and returns it as
// midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout is the textual representation of expense dates.
const DateLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
