package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/moneybalance/internal/currency"
	"github.com/mmynk/moneybalance/internal/models"
	"github.com/mmynk/moneybalance/internal/storage"
)

// AddCurrency inserts an additional currency into a calculation.
func (s *SQLiteStore) AddCurrency(ctx context.Context, c *models.Currency) error {
	info, err := currency.Lookup(c.Code)
	if err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.RateThis == 0 && c.RateMain == 0 {
		c.RateThis, c.RateMain = 1, 1
	}
	c.Code = info.Code
	c.FractionDigits = info.FractionDigits

	if err := s.requireCalculation(ctx, c.CalculationID); err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO currencies (id, calculation_id, code, rate_this, rate_main) VALUES (?, ?, ?, ?, ?)",
		c.ID, c.CalculationID, c.Code, c.RateThis, c.RateMain,
	)
	if err != nil {
		return fmt.Errorf("failed to insert currency: %w", err)
	}

	return nil
}

// UpdateExchangeRate sets the rate pair of a non-main currency.
func (s *SQLiteStore) UpdateExchangeRate(ctx context.Context, currencyID string, rateThis, rateMain float64) error {
	isMain, err := s.isMainCurrency(ctx, s.db, currencyID)
	if err != nil {
		return err
	}
	if isMain {
		return fmt.Errorf("currency %s: %w", currencyID, storage.ErrMainCurrency)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE currencies SET rate_this = ?, rate_main = ? WHERE id = ?",
		rateThis, rateMain, currencyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update exchange rate: %w", err)
	}
	return nil
}

// DeleteCurrency removes a currency no expense uses.
func (s *SQLiteStore) DeleteCurrency(ctx context.Context, currencyID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	isMain, err := s.isMainCurrency(ctx, tx, currencyID)
	if err != nil {
		return err
	}
	if isMain {
		return fmt.Errorf("currency %s: %w", currencyID, storage.ErrMainCurrency)
	}

	var used int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses WHERE currency_id = ?", currencyID).Scan(&used)
	if err != nil {
		return fmt.Errorf("failed to count expenses: %w", err)
	}
	if used > 0 {
		return fmt.Errorf("currency %s used by %d expenses: %w", currencyID, used, storage.ErrCurrencyInUse)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM currencies WHERE id = ?", currencyID); err != nil {
		return fmt.Errorf("failed to delete currency: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) isMainCurrency(ctx context.Context, q querier, currencyID string) (bool, error) {
	var isMain bool
	err := q.QueryRowContext(ctx, `
		SELECT cu.code = ca.main_currency
		FROM currencies cu JOIN calculations ca ON ca.id = cu.calculation_id
		WHERE cu.id = ?`,
		currencyID,
	).Scan(&isMain)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("currency %s: %w", currencyID, storage.ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("failed to get currency: %w", err)
	}
	return isMain, nil
}

// currencyDigits returns the fraction digits of a currency that must belong
// to calculationID.
func (s *SQLiteStore) currencyDigits(ctx context.Context, q querier, calculationID, currencyID string) (int, error) {
	var code string
	err := q.QueryRowContext(ctx,
		"SELECT code FROM currencies WHERE id = ? AND calculation_id = ?",
		currencyID, calculationID,
	).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("currency %s: %w", currencyID, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get currency: %w", err)
	}
	return currency.FractionDigits(code), nil
}
