package sqlite

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/moneybalance/internal/models"
	"github.com/mmynk/moneybalance/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "moneybalance-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTrip(t *testing.T, store *SQLiteStore, title string) *models.Calculation {
	t.Helper()
	calc := &models.Calculation{
		Title:            title,
		MainCurrencyCode: "usd",
		Persons:          []models.Person{{Name: "Alice"}, {Name: "Bob"}},
	}
	if err := store.CreateCalculation(context.Background(), calc); err != nil {
		t.Fatalf("CreateCalculation failed: %v", err)
	}
	return calc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateCalculation generates IDs and main currency", func(t *testing.T) {
		calc := createTrip(t, store, "Rome")

		if calc.ID == "" || calc.CreatedAt == 0 {
			t.Errorf("Expected ID and CreatedAt to be set, got %q %d", calc.ID, calc.CreatedAt)
		}
		if calc.MainCurrencyCode != "USD" {
			t.Errorf("MainCurrencyCode = %s, want USD", calc.MainCurrencyCode)
		}
		if len(calc.Currencies) != 1 || calc.Currencies[0].Code != "USD" || calc.Currencies[0].ID == "" {
			t.Errorf("unexpected currencies: %+v", calc.Currencies)
		}
		for _, p := range calc.Persons {
			if p.ID == "" || p.CalculationID != calc.ID {
				t.Errorf("person not populated: %+v", p)
			}
		}
	})

	t.Run("CreateCalculation rejects unknown currency", func(t *testing.T) {
		calc := &models.Calculation{Title: "Bad", MainCurrencyCode: "QQQ"}
		if err := store.CreateCalculation(ctx, calc); err == nil {
			t.Error("Expected error for unknown currency, got nil")
		}
	})

	t.Run("GetCalculation returns the snapshot", func(t *testing.T) {
		calc := createTrip(t, store, "Paris")

		got, err := store.GetCalculation(ctx, calc.ID)
		if err != nil {
			t.Fatalf("GetCalculation failed: %v", err)
		}
		if got.Title != "Paris" || got.MainCurrencyCode != "USD" || got.CreatedAt != calc.CreatedAt {
			t.Errorf("unexpected calculation: %+v", got)
		}
		if len(got.Persons) != 2 || got.Persons[0].Name != "Alice" || got.Persons[1].Name != "Bob" {
			t.Errorf("persons not in insertion order: %+v", got.Persons)
		}
		if got.Currencies[0].FractionDigits != 2 {
			t.Errorf("FractionDigits = %d, want 2", got.Currencies[0].FractionDigits)
		}
	})

	t.Run("GetCalculation returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetCalculation(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateCalculationTitle", func(t *testing.T) {
		calc := createTrip(t, store, "Old")
		if err := store.UpdateCalculationTitle(ctx, calc.ID, "New"); err != nil {
			t.Fatalf("UpdateCalculationTitle failed: %v", err)
		}
		got, err := store.GetCalculation(ctx, calc.ID)
		if err != nil {
			t.Fatalf("GetCalculation failed: %v", err)
		}
		if got.Title != "New" {
			t.Errorf("Title = %s, want New", got.Title)
		}
		if err := store.UpdateCalculationTitle(ctx, "nonexistent-id", "x"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteCalculation cascades", func(t *testing.T) {
		calc := createTrip(t, store, "Doomed")
		e := &models.Expense{
			CalculationID: calc.ID,
			PayerID:       calc.Persons[0].ID,
			CurrencyID:    calc.Currencies[0].ID,
			Title:         "Hotel",
			Amount:        50,
			Date:          day(2024, 1, 1),
			SplitWeights:  map[string]float64{calc.Persons[1].ID: 1},
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteCalculation(ctx, calc.ID); err != nil {
			t.Fatalf("DeleteCalculation failed: %v", err)
		}
		if _, err := store.GetCalculation(ctx, calc.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteCalculation(ctx, calc.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestListCalculations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b := createTrip(t, store, "beta")
	createTrip(t, store, "Alpha")
	e := &models.Expense{
		CalculationID: b.ID,
		PayerID:       b.Persons[0].ID,
		CurrencyID:    b.Currencies[0].ID,
		Title:         "Taxi",
		Amount:        12,
		Date:          day(2024, 2, 1),
	}
	if err := store.CreateExpense(ctx, e); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	list, err := store.ListCalculations(ctx)
	if err != nil {
		t.Fatalf("ListCalculations failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 calculations, got %d", len(list))
	}
	if list[0].Title != "Alpha" || list[1].Title != "beta" {
		t.Errorf("unexpected order: %s, %s", list[0].Title, list[1].Title)
	}
	if list[1].PersonCount != 2 || list[1].ExpenseCount != 1 {
		t.Errorf("unexpected counts: %+v", list[1])
	}
}

func TestPersons(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	calc := createTrip(t, store, "Trip")

	t.Run("AddPerson appends to roster", func(t *testing.T) {
		p := &models.Person{CalculationID: calc.ID, Name: "Carol"}
		if err := store.AddPerson(ctx, p); err != nil {
			t.Fatalf("AddPerson failed: %v", err)
		}
		got, err := store.GetCalculation(ctx, calc.ID)
		if err != nil {
			t.Fatalf("GetCalculation failed: %v", err)
		}
		if len(got.Persons) != 3 || got.Persons[2].Name != "Carol" {
			t.Errorf("unexpected roster: %+v", got.Persons)
		}
	})

	t.Run("AddPerson rejects duplicate name", func(t *testing.T) {
		if err := store.AddPerson(ctx, &models.Person{CalculationID: calc.ID, Name: "Alice"}); err == nil {
			t.Error("Expected error for duplicate name, got nil")
		}
	})

	t.Run("AddPerson to unknown calculation", func(t *testing.T) {
		err := store.AddPerson(ctx, &models.Person{CalculationID: "nonexistent-id", Name: "X"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RenamePerson", func(t *testing.T) {
		if err := store.RenamePerson(ctx, calc.Persons[1].ID, "Robert"); err != nil {
			t.Fatalf("RenamePerson failed: %v", err)
		}
		got, _ := store.GetCalculation(ctx, calc.ID)
		if got.Persons[1].Name != "Robert" {
			t.Errorf("Name = %s, want Robert", got.Persons[1].Name)
		}
	})

	t.Run("DeletePerson refuses payers and drops weights", func(t *testing.T) {
		alice, bob := calc.Persons[0].ID, calc.Persons[1].ID
		e := &models.Expense{
			CalculationID: calc.ID,
			PayerID:       alice,
			CurrencyID:    calc.Currencies[0].ID,
			Title:         "Dinner",
			Amount:        30,
			Date:          day(2024, 1, 1),
			SplitWeights:  map[string]float64{alice: 1, bob: 2},
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeletePerson(ctx, alice); !errors.Is(err, storage.ErrPersonInUse) {
			t.Errorf("Expected ErrPersonInUse, got %v", err)
		}
		if err := store.DeletePerson(ctx, bob); err != nil {
			t.Fatalf("DeletePerson failed: %v", err)
		}

		got, err := store.GetCalculation(ctx, calc.ID)
		if err != nil {
			t.Fatalf("GetCalculation failed: %v", err)
		}
		weights := got.Expenses[0].SplitWeights
		if len(weights) != 1 || weights[alice] != 1 {
			t.Errorf("weights after delete = %v", weights)
		}
		if err := store.DeletePerson(ctx, bob); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestCurrencies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	calc := createTrip(t, store, "Trip")
	main := calc.Currencies[0]

	jpy := &models.Currency{CalculationID: calc.ID, Code: "jpy"}
	if err := store.AddCurrency(ctx, jpy); err != nil {
		t.Fatalf("AddCurrency failed: %v", err)
	}
	eur := &models.Currency{CalculationID: calc.ID, Code: "EUR"}
	if err := store.AddCurrency(ctx, eur); err != nil {
		t.Fatalf("AddCurrency failed: %v", err)
	}

	t.Run("AddCurrency normalizes code and rate", func(t *testing.T) {
		if jpy.Code != "JPY" || jpy.FractionDigits != 0 || jpy.RateThis != 1 || jpy.RateMain != 1 {
			t.Errorf("unexpected currency: %+v", jpy)
		}
		if err := store.AddCurrency(ctx, &models.Currency{CalculationID: calc.ID, Code: "EUR"}); err == nil {
			t.Error("Expected error for duplicate currency, got nil")
		}
	})

	t.Run("main currency listed first", func(t *testing.T) {
		got, err := store.GetCalculation(ctx, calc.ID)
		if err != nil {
			t.Fatalf("GetCalculation failed: %v", err)
		}
		codes := []string{}
		for _, c := range got.Currencies {
			codes = append(codes, c.Code)
		}
		if len(codes) != 3 || codes[0] != "USD" || codes[1] != "JPY" || codes[2] != "EUR" {
			t.Errorf("currency order = %v", codes)
		}
	})

	t.Run("UpdateExchangeRate", func(t *testing.T) {
		if err := store.UpdateExchangeRate(ctx, eur.ID, 1, 1.1); err != nil {
			t.Fatalf("UpdateExchangeRate failed: %v", err)
		}
		got, _ := store.GetCalculation(ctx, calc.ID)
		if math.Abs(got.Currencies[2].ExchangeRate()-1.1) > 1e-12 {
			t.Errorf("rate = %v, want 1.1", got.Currencies[2].ExchangeRate())
		}
		if err := store.UpdateExchangeRate(ctx, main.ID, 2, 1); !errors.Is(err, storage.ErrMainCurrency) {
			t.Errorf("Expected ErrMainCurrency, got %v", err)
		}
		if err := store.UpdateExchangeRate(ctx, "nonexistent-id", 2, 1); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteCurrency", func(t *testing.T) {
		e := &models.Expense{
			CalculationID: calc.ID,
			PayerID:       calc.Persons[0].ID,
			CurrencyID:    eur.ID,
			Title:         "Museum",
			Amount:        20,
			Date:          day(2024, 1, 1),
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteCurrency(ctx, main.ID); !errors.Is(err, storage.ErrMainCurrency) {
			t.Errorf("Expected ErrMainCurrency, got %v", err)
		}
		if err := store.DeleteCurrency(ctx, eur.ID); !errors.Is(err, storage.ErrCurrencyInUse) {
			t.Errorf("Expected ErrCurrencyInUse, got %v", err)
		}
		if err := store.DeleteCurrency(ctx, jpy.ID); err != nil {
			t.Fatalf("DeleteCurrency failed: %v", err)
		}
		got, _ := store.GetCalculation(ctx, calc.ID)
		if len(got.Currencies) != 2 {
			t.Errorf("Expected 2 currencies, got %d", len(got.Currencies))
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	calc := createTrip(t, store, "Trip")
	alice, bob := calc.Persons[0].ID, calc.Persons[1].ID
	usd := calc.Currencies[0].ID

	jpy := &models.Currency{CalculationID: calc.ID, Code: "JPY"}
	if err := store.AddCurrency(ctx, jpy); err != nil {
		t.Fatalf("AddCurrency failed: %v", err)
	}

	expenses := []*models.Expense{
		{CalculationID: calc.ID, PayerID: alice, CurrencyID: usd, Title: "Hotel", Amount: 199.99, Date: day(2024, 3, 2)},
		{CalculationID: calc.ID, PayerID: bob, CurrencyID: jpy.ID, Title: "Ramen", Amount: 1200, Date: day(2024, 3, 1)},
		{CalculationID: calc.ID, PayerID: bob, CurrencyID: usd, Title: "Taxi", Amount: 0.1 + 0.2, Date: day(2024, 3, 2)},
	}
	for _, e := range expenses {
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if e.ID == "" {
			t.Error("Expected expense ID to be generated")
		}
	}

	t.Run("ordered by date then insertion", func(t *testing.T) {
		got, err := store.GetCalculation(ctx, calc.ID)
		if err != nil {
			t.Fatalf("GetCalculation failed: %v", err)
		}
		want := []string{"Ramen", "Hotel", "Taxi"}
		for i, title := range want {
			if got.Expenses[i].Title != title {
				t.Errorf("position %d: got %s, want %s", i, got.Expenses[i].Title, title)
			}
		}
		if got.Expenses[0].Amount != 1200 {
			t.Errorf("JPY amount = %v, want 1200", got.Expenses[0].Amount)
		}
		if got.Expenses[1].Amount != 199.99 {
			t.Errorf("USD amount = %v, want 199.99", got.Expenses[1].Amount)
		}
		if got.Expenses[2].Amount != 0.3 {
			t.Errorf("rounded amount = %v, want 0.3", got.Expenses[2].Amount)
		}
		if !got.Expenses[0].Date.Equal(day(2024, 3, 1)) {
			t.Errorf("Date = %v", got.Expenses[0].Date)
		}
	})

	t.Run("UpdateExpense replaces weights", func(t *testing.T) {
		e := expenses[0]
		e.Title = "Hostel"
		e.Amount = 80
		e.SplitWeights = map[string]float64{alice: 1, bob: 3}
		if err := store.UpdateExpense(ctx, e); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}
		e.SplitWeights = map[string]float64{bob: 2}
		if err := store.UpdateExpense(ctx, e); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}

		got, _ := store.GetCalculation(ctx, calc.ID)
		var found *models.Expense
		for i := range got.Expenses {
			if got.Expenses[i].ID == e.ID {
				found = &got.Expenses[i]
			}
		}
		if found == nil {
			t.Fatal("updated expense missing")
		}
		if found.Title != "Hostel" || found.Amount != 80 {
			t.Errorf("unexpected expense: %+v", found)
		}
		if len(found.SplitWeights) != 1 || found.SplitWeights[bob] != 2 {
			t.Errorf("weights = %v", found.SplitWeights)
		}
	})

	t.Run("invalid references", func(t *testing.T) {
		bad := &models.Expense{CalculationID: calc.ID, PayerID: "ghost", CurrencyID: usd, Title: "x", Date: day(2024, 1, 1)}
		if err := store.CreateExpense(ctx, bad); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for unknown payer, got %v", err)
		}
		bad = &models.Expense{CalculationID: calc.ID, PayerID: alice, CurrencyID: "ghost", Title: "x", Date: day(2024, 1, 1)}
		if err := store.CreateExpense(ctx, bad); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for unknown currency, got %v", err)
		}
		missing := &models.Expense{ID: "nonexistent-id", CalculationID: calc.ID, PayerID: alice, CurrencyID: usd, Date: day(2024, 1, 1)}
		if err := store.UpdateExpense(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for unknown expense, got %v", err)
		}
	})

	t.Run("DeleteExpense", func(t *testing.T) {
		if err := store.DeleteExpense(ctx, expenses[1].ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, expenses[1].ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		got, _ := store.GetCalculation(ctx, calc.ID)
		if len(got.Expenses) != 2 {
			t.Errorf("Expected 2 expenses, got %d", len(got.Expenses))
		}
	})
}
