// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/moneybalance/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersonInUse is returned when deleting a person who still pays an expense.
	ErrPersonInUse = errors.New("person is the payer of an expense")

	// ErrMainCurrency is returned when deleting or re-rating the main currency.
	ErrMainCurrency = errors.New("operation not allowed on the main currency")

	// ErrCurrencyInUse is returned when deleting a currency that an expense uses.
	ErrCurrencyInUse = errors.New("currency is used by an expense")
)

// Store defines the interface for calculation storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Amounts cross this interface in major units; implementations persist them
// as fixed-point integers scaled by the currency's decimal factor.
type Store interface {
	// CreateCalculation persists a new calculation together with its main
	// currency and its initial persons. IDs and CreatedAt are populated by
	// the store; calc.Currencies is replaced by the created main currency.
	CreateCalculation(ctx context.Context, calc *models.Calculation) error

	// GetCalculation loads the full snapshot: the main currency first and
	// other currencies in insertion order, persons in insertion order,
	// expenses by date then insertion.
	GetCalculation(ctx context.Context, calculationID string) (*models.Calculation, error)

	// ListCalculations returns summaries ordered by title.
	ListCalculations(ctx context.Context) ([]models.CalculationSummary, error)

	// UpdateCalculationTitle renames a calculation.
	UpdateCalculationTitle(ctx context.Context, calculationID, title string) error

	// DeleteCalculation removes a calculation and everything it owns.
	DeleteCalculation(ctx context.Context, calculationID string) error

	// AddPerson appends a person to a calculation's roster.
	AddPerson(ctx context.Context, person *models.Person) error

	// RenamePerson changes a person's name.
	RenamePerson(ctx context.Context, personID, name string) error

	// DeletePerson removes a person and their split weights. It fails with
	// ErrPersonInUse while the person pays any expense.
	DeletePerson(ctx context.Context, personID string) error

	// AddCurrency adds a currency to a calculation.
	AddCurrency(ctx context.Context, c *models.Currency) error

	// UpdateExchangeRate sets a currency's rate pair.
	UpdateExchangeRate(ctx context.Context, currencyID string, rateThis, rateMain float64) error

	// DeleteCurrency removes a currency. The main currency and currencies
	// used by expenses cannot be deleted.
	DeleteCurrency(ctx context.Context, currencyID string) error

	// CreateExpense persists a new expense with its split weights.
	CreateExpense(ctx context.Context, e *models.Expense) error

	// UpdateExpense replaces an expense's fields and split weights.
	UpdateExpense(ctx context.Context, e *models.Expense) error

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
