// Package ledger provides the in-memory Calculation aggregate: lookups by ID,
// integrity checks, and derived statistics over a read-only snapshot.
package ledger

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/mmynk/moneybalance/internal/models"
)

// ErrInconsistent marks a snapshot that violates a storage invariant (an
// unresolvable reference, a missing main currency). It indicates corrupted
// data, not bad user input.
var ErrInconsistent = errors.New("inconsistent calculation")

// Ledger wraps a Calculation snapshot. It never mutates the snapshot.
type Ledger struct {
	calc       *models.Calculation
	main       *models.Currency
	currencies map[string]*models.Currency
	persons    map[string]*models.Person
}

// New validates the snapshot's references and builds the lookup tables.
func New(calc *models.Calculation) (*Ledger, error) {
	if calc == nil {
		return nil, fmt.Errorf("%w: nil calculation", ErrInconsistent)
	}

	l := &Ledger{
		calc:       calc,
		currencies: make(map[string]*models.Currency, len(calc.Currencies)),
		persons:    make(map[string]*models.Person, len(calc.Persons)),
	}

	for i := range calc.Currencies {
		c := &calc.Currencies[i]
		l.currencies[c.ID] = c
		if c.Code != calc.MainCurrencyCode {
			continue
		}
		if l.main != nil {
			return nil, fmt.Errorf("%w: main currency %s listed twice", ErrInconsistent, c.Code)
		}
		l.main = c
	}
	if l.main == nil {
		return nil, fmt.Errorf("%w: main currency %s missing", ErrInconsistent, calc.MainCurrencyCode)
	}
	if l.main.RateThis != 1 || l.main.RateMain != 1 {
		return nil, fmt.Errorf("%w: main currency %s has rate %v/%v",
			ErrInconsistent, l.main.Code, l.main.RateThis, l.main.RateMain)
	}

	for i := range calc.Persons {
		p := &calc.Persons[i]
		l.persons[p.ID] = p
	}

	for _, e := range calc.Expenses {
		if _, ok := l.persons[e.PayerID]; !ok {
			return nil, fmt.Errorf("%w: expense %s references unknown payer %s", ErrInconsistent, e.ID, e.PayerID)
		}
		if _, ok := l.currencies[e.CurrencyID]; !ok {
			return nil, fmt.Errorf("%w: expense %s references unknown currency %s", ErrInconsistent, e.ID, e.CurrencyID)
		}
	}

	return l, nil
}

// Calculation returns the underlying snapshot.
func (l *Ledger) Calculation() *models.Calculation {
	return l.calc
}

// Title returns the calculation title.
func (l *Ledger) Title() string {
	return l.calc.Title
}

// MainCurrency returns the calculation's main currency.
func (l *Ledger) MainCurrency() *models.Currency {
	return l.main
}

// Currency looks up a currency by ID.
func (l *Ledger) Currency(id string) (*models.Currency, bool) {
	c, ok := l.currencies[id]
	return c, ok
}

// CurrencyByCode looks up a currency by ISO code.
func (l *Ledger) CurrencyByCode(code string) (*models.Currency, bool) {
	for i := range l.calc.Currencies {
		if l.calc.Currencies[i].Code == code {
			return &l.calc.Currencies[i], true
		}
	}
	return nil, false
}

// Person looks up a person by ID.
func (l *Ledger) Person(id string) (*models.Person, bool) {
	p, ok := l.persons[id]
	return p, ok
}

// Persons returns the roster in display order.
func (l *Ledger) Persons() []models.Person {
	return l.calc.Persons
}

// Expenses returns the expenses in storage order.
func (l *Ledger) Expenses() []models.Expense {
	return l.calc.Expenses
}

// IsMultiCurrency reports whether the calculation has more than one currency.
func (l *Ledger) IsMultiCurrency() bool {
	return len(l.calc.Currencies) > 1
}

// ExpenseCurrency returns the currency of e. New guarantees it resolves for
// every expense of the snapshot.
func (l *Ledger) ExpenseCurrency(e *models.Expense) *models.Currency {
	return l.currencies[e.CurrencyID]
}

// Payer returns the person who paid e.
func (l *Ledger) Payer(e *models.Expense) *models.Person {
	return l.persons[e.PayerID]
}

// ExchangedAmount returns e's amount in main-currency units.
func (l *Ledger) ExchangedAmount(e *models.Expense) float64 {
	return l.ExpenseCurrency(e).ExchangeAmount(e.Amount)
}

// ExpenseTotal returns the sum of all expenses in main-currency units.
func (l *Ledger) ExpenseTotal() float64 {
	var total float64
	for i := range l.calc.Expenses {
		total += l.ExchangedAmount(&l.calc.Expenses[i])
	}
	return total
}

// ExpensesByDate returns a copy of the expenses sorted by ascending date.
// Expenses on the same day keep their storage order.
func (l *Ledger) ExpensesByDate() []models.Expense {
	sorted := slices.Clone(l.calc.Expenses)
	slices.SortStableFunc(sorted, func(a, b models.Expense) int {
		return models.Day(a.Date).Compare(models.Day(b.Date))
	})
	return sorted
}

// FirstDate returns the earliest expense date. ok is false without expenses.
func (l *Ledger) FirstDate() (first time.Time, ok bool) {
	for _, e := range l.calc.Expenses {
		d := models.Day(e.Date)
		if !ok || d.Before(first) {
			first, ok = d, true
		}
	}
	return first, ok
}

// LastDate returns the latest expense date. ok is false without expenses.
func (l *Ledger) LastDate() (last time.Time, ok bool) {
	for _, e := range l.calc.Expenses {
		d := models.Day(e.Date)
		if !ok || d.After(last) {
			last, ok = d, true
		}
	}
	return last, ok
}

// Duration returns the number of days from the first to the last expense,
// both inclusive, or 0 without expenses.
func (l *Ledger) Duration() int {
	first, ok := l.FirstDate()
	if !ok {
		return 0
	}
	last, _ := l.LastDate()
	return int(last.Sub(first).Hours()/24) + 1
}
