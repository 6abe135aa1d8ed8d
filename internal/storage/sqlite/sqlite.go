// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/moneybalance/internal/currency"
	"github.com/mmynk/moneybalance/internal/models"
	"github.com/mmynk/moneybalance/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so they go into the DSN
	// to cover every pooled connection.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateCalculation persists a new calculation, its main currency and its persons.
func (s *SQLiteStore) CreateCalculation(ctx context.Context, calc *models.Calculation) error {
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	if calc.CreatedAt == 0 {
		calc.CreatedAt = time.Now().Unix()
	}

	main, err := models.NewCurrency(calc.ID, calc.MainCurrencyCode)
	if err != nil {
		return fmt.Errorf("failed to create main currency: %w", err)
	}
	main.ID = uuid.New().String()
	calc.MainCurrencyCode = main.Code

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO calculations (id, title, main_currency, created_at) VALUES (?, ?, ?, ?)",
		calc.ID, calc.Title, calc.MainCurrencyCode, calc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO currencies (id, calculation_id, code, rate_this, rate_main) VALUES (?, ?, ?, 1, 1)",
		main.ID, calc.ID, main.Code,
	)
	if err != nil {
		return fmt.Errorf("failed to insert main currency: %w", err)
	}

	for i := range calc.Persons {
		p := &calc.Persons[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		p.CalculationID = calc.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO persons (id, calculation_id, name) VALUES (?, ?, ?)",
			p.ID, calc.ID, p.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	calc.Currencies = []models.Currency{*main}
	calc.Expenses = nil
	return nil
}

// GetCalculation retrieves a calculation by ID, including currencies,
// persons and expenses.
func (s *SQLiteStore) GetCalculation(ctx context.Context, calculationID string) (*models.Calculation, error) {
	calc := &models.Calculation{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, main_currency, created_at FROM calculations WHERE id = ?",
		calculationID,
	).Scan(&calc.ID, &calc.Title, &calc.MainCurrencyCode, &calc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("calculation %s: %w", calculationID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}

	if calc.Currencies, err = s.listCurrencies(ctx, calc.ID, calc.MainCurrencyCode); err != nil {
		return nil, err
	}
	if calc.Persons, err = s.listPersons(ctx, calc.ID); err != nil {
		return nil, err
	}
	if calc.Expenses, err = s.listExpenses(ctx, calc.ID); err != nil {
		return nil, err
	}

	return calc, nil
}

// ListCalculations returns a summary of every calculation ordered by title.
func (s *SQLiteStore) ListCalculations(ctx context.Context) ([]models.CalculationSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.title, c.main_currency, c.created_at,
		       (SELECT COUNT(*) FROM persons p WHERE p.calculation_id = c.id),
		       (SELECT COUNT(*) FROM expenses e WHERE e.calculation_id = c.id)
		FROM calculations c
		ORDER BY c.title COLLATE NOCASE, c.created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var summaries []models.CalculationSummary
	for rows.Next() {
		var cs models.CalculationSummary
		if err := rows.Scan(&cs.ID, &cs.Title, &cs.MainCurrencyCode, &cs.CreatedAt,
			&cs.PersonCount, &cs.ExpenseCount); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		summaries = append(summaries, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calculations: %w", err)
	}

	return summaries, nil
}

// UpdateCalculationTitle renames a calculation.
func (s *SQLiteStore) UpdateCalculationTitle(ctx context.Context, calculationID, title string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE calculations SET title = ? WHERE id = ?",
		title, calculationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update calculation: %w", err)
	}
	return expectOneRow(res, "calculation", calculationID)
}

// DeleteCalculation removes a calculation; owned rows are removed by cascade.
func (s *SQLiteStore) DeleteCalculation(ctx context.Context, calculationID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Expenses reference persons and currencies without cascade, so they go
	// first.
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE calculation_id = ?", calculationID); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM calculations WHERE id = ?", calculationID)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	if err := expectOneRow(res, "calculation", calculationID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listCurrencies(ctx context.Context, calculationID, mainCode string) ([]models.Currency, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, calculation_id, code, rate_this, rate_main
		FROM currencies WHERE calculation_id = ?
		ORDER BY code = ? DESC, rowid`,
		calculationID, mainCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get currencies: %w", err)
	}
	defer rows.Close()

	var currencies []models.Currency
	for rows.Next() {
		var c models.Currency
		if err := rows.Scan(&c.ID, &c.CalculationID, &c.Code, &c.RateThis, &c.RateMain); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		c.FractionDigits = currency.FractionDigits(c.Code)
		currencies = append(currencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate currencies: %w", err)
	}
	return currencies, nil
}

// expectOneRow turns an update or delete that matched nothing into
// storage.ErrNotFound.
func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
