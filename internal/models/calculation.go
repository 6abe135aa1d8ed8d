package models

// Calculation groups the currencies, persons and expenses of one shared
// expense tracking session.
type Calculation struct {
	// ID is the unique identifier for the calculation (UUID format).
	ID string

	// Title is the human-readable name (e.g. "Ski trip 2024").
	Title string

	// MainCurrencyCode is the ISO 4217 code all balances are reported in.
	MainCurrencyCode string

	// Currencies always contains exactly one entry whose Code equals
	// MainCurrencyCode.
	Currencies []Currency

	// Persons is the roster in display order.
	Persons []Person

	// Expenses in storage order (by date, then insertion).
	Expenses []Expense

	// CreatedAt is the Unix timestamp when the calculation was created.
	CreatedAt int64
}

// CalculationSummary is a lightweight listing entry.
type CalculationSummary struct {
	ID               string
	Title            string
	MainCurrencyCode string
	PersonCount      int
	ExpenseCount     int
	CreatedAt        int64
}
