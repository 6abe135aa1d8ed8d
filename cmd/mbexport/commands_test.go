package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/moneybalance/internal/models"
	"github.com/mmynk/moneybalance/internal/storage/sqlite"
)

// seedDatabase creates a database with one settled calculation and points
// the CLI at it.
func seedDatabase(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	calc := &models.Calculation{
		Title:            "Road/Trip",
		MainCurrencyCode: "USD",
		Persons:          []models.Person{{Name: "A"}, {Name: "B"}},
	}
	if err := store.CreateCalculation(ctx, calc); err != nil {
		t.Fatalf("CreateCalculation failed: %v", err)
	}
	err = store.CreateExpense(ctx, &models.Expense{
		CalculationID: calc.ID,
		PayerID:       calc.Persons[0].ID,
		Title:         "Fuel",
		Amount:        100,
		CurrencyID:    calc.Currencies[0].ID,
		Date:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	t.Setenv("DB_PATH", dbPath)
	t.Setenv("LOG_LEVEL", "error")
	return calc.ID
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("mbexport %v failed: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestList(t *testing.T) {
	id := seedDatabase(t)

	out := run(t, "list")
	if !strings.Contains(out, id) || !strings.Contains(out, "Road/Trip") {
		t.Errorf("list output missing calculation:\n%s", out)
	}
}

func TestSummary(t *testing.T) {
	id := seedDatabase(t)

	out := run(t, "summary", id)
	for _, want := range []string{"Road/Trip (USD)", "Total: $100.00", "$50.00", "-$50.00", "1 day"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCommands(t *testing.T) {
	id := seedDatabase(t)
	dir := t.TempDir()

	first := strings.TrimSpace(run(t, "csv", id, "--out", dir))
	if first != filepath.Join(dir, "Road_Trip.csv") {
		t.Errorf("csv path: expected Road_Trip.csv, got %s", first)
	}
	second := strings.TrimSpace(run(t, "csv", id, "--out", dir))
	if second != filepath.Join(dir, "Road_Trip (1).csv") {
		t.Errorf("second csv path: expected numbered name, got %s", second)
	}
	content, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(content), `"Fuel"`) {
		t.Errorf("unexpected CSV content:\n%s", content)
	}

	xlsx := strings.TrimSpace(run(t, "xlsx", id, "--out", dir))
	if info, err := os.Stat(xlsx); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty workbook at %s: %v", xlsx, err)
	}
}
