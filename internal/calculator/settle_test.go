package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/mmynk/moneybalance/internal/ledger"
	"github.com/mmynk/moneybalance/internal/models"
)

func newLedger(t *testing.T, calc *models.Calculation) *ledger.Ledger {
	t.Helper()
	l, err := ledger.New(calc)
	if err != nil {
		t.Fatalf("ledger.New failed: %v", err)
	}
	return l
}

func usdCalculation(expenses ...models.Expense) *models.Calculation {
	return &models.Calculation{
		Title:            "Test",
		MainCurrencyCode: "USD",
		Currencies: []models.Currency{
			{ID: "usd", Code: "USD", FractionDigits: 2, RateThis: 1, RateMain: 1},
		},
		Persons:  []models.Person{alice, bob},
		Expenses: expenses,
	}
}

func assertBalance(t *testing.T, got PersonBalance, paid, consumed, balance float64) {
	t.Helper()
	if math.Abs(got.TotalPaid-paid) > 0.001 {
		t.Errorf("%s paid = %v, want %v", got.Person.Name, got.TotalPaid, paid)
	}
	if math.Abs(got.TotalConsumed-consumed) > 0.001 {
		t.Errorf("%s consumed = %v, want %v", got.Person.Name, got.TotalConsumed, consumed)
	}
	if math.Abs(got.Balance-balance) > 0.001 {
		t.Errorf("%s balance = %v, want %v", got.Person.Name, got.Balance, balance)
	}
}

func TestSettleEvenSplit(t *testing.T) {
	calc := usdCalculation(models.Expense{
		ID: "e1", PayerID: "a", Title: "Dinner", Amount: 100, CurrencyID: "usd",
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	s := Settle(newLedger(t, calc))
	if len(s.Balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(s.Balances))
	}
	assertBalance(t, s.Balances[0], 100, 50, 50)
	assertBalance(t, s.Balances[1], 0, 50, -50)
	if math.Abs(s.Total-100) > 0.001 {
		t.Errorf("Total = %v, want 100", s.Total)
	}
}

func TestSettleMultiCurrencyWeighted(t *testing.T) {
	calc := usdCalculation(models.Expense{
		ID: "e1", PayerID: "a", Title: "Museum", Amount: 90, CurrencyID: "eur",
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		SplitWeights: map[string]float64{"a": 1, "b": 2},
	})
	calc.Currencies = append(calc.Currencies, models.Currency{
		ID: "eur", Code: "EUR", FractionDigits: 2, RateThis: 1, RateMain: 1.1,
	})

	s := Settle(newLedger(t, calc))
	assertBalance(t, s.Balances[0], 99, 33, 66)
	assertBalance(t, s.Balances[1], 0, 66, -66)
}

func TestSettleNoExpenses(t *testing.T) {
	s := Settle(newLedger(t, usdCalculation()))
	for _, b := range s.Balances {
		assertBalance(t, b, 0, 0, 0)
	}
	if s.Total != 0 {
		t.Errorf("Total = %v, want 0", s.Total)
	}
}

func TestSettleZeroSum(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	calc := &models.Calculation{
		Title:            "Zero sum",
		MainCurrencyCode: "EUR",
		Currencies: []models.Currency{
			{ID: "eur", Code: "EUR", FractionDigits: 2, RateThis: 1, RateMain: 1},
			{ID: "chf", Code: "CHF", FractionDigits: 2, RateThis: 0.93, RateMain: 1},
			{ID: "jpy", Code: "JPY", FractionDigits: 0, RateThis: 160, RateMain: 1},
		},
		Persons: []models.Person{alice, bob, charlie},
		Expenses: []models.Expense{
			{ID: "1", PayerID: "a", Amount: 33.33, CurrencyID: "eur", Date: day},
			{ID: "2", PayerID: "b", Amount: 71.2, CurrencyID: "chf", Date: day, SplitWeights: map[string]float64{"a": 1.5, "c": 0.25}},
			{ID: "3", PayerID: "c", Amount: 12000, CurrencyID: "jpy", Date: day.AddDate(0, 0, 2)},
			{ID: "4", PayerID: "a", Amount: 0, CurrencyID: "eur", Date: day},
			{ID: "5", PayerID: "b", Amount: 10, CurrencyID: "eur", Date: day, SplitWeights: map[string]float64{"b": 1}},
		},
	}

	s := Settle(newLedger(t, calc))
	var net, paid float64
	for _, b := range s.Balances {
		net += b.Balance
		paid += b.TotalPaid
	}
	if math.Abs(net) > 1e-9 {
		t.Errorf("balances sum to %v, want 0", net)
	}
	if math.Abs(paid-s.Total) > 1e-9 {
		t.Errorf("paid sum %v differs from total %v", paid, s.Total)
	}
}
