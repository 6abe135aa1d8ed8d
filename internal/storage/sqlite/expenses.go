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

// CreateExpense persists a new expense and its split weights.
func (s *SQLiteStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cents, err := s.checkExpenseRefs(ctx, tx, e)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, calculation_id, payer_id, currency_id, title, amount, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CalculationID, e.PayerID, e.CurrencyID, e.Title, cents, e.Date.Format(models.DateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertWeights(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateExpense overwrites an expense and replaces its split weights.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, e *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cents, err := s.checkExpenseRefs(ctx, tx, e)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET payer_id = ?, currency_id = ?, title = ?, amount = ?, date = ?
		 WHERE id = ? AND calculation_id = ?`,
		e.PayerID, e.CurrencyID, e.Title, cents, e.Date.Format(models.DateLayout),
		e.ID, e.CalculationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if err := expectOneRow(res, "expense", e.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM split_weights WHERE expense_id = ?", e.ID); err != nil {
		return fmt.Errorf("failed to delete split weights: %w", err)
	}
	if err := insertWeights(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectOneRow(res, "expense", expenseID)
}

// checkExpenseRefs verifies that payer and currency belong to the
// expense's calculation and returns the amount in minor units.
func (s *SQLiteStore) checkExpenseRefs(ctx context.Context, tx *sql.Tx, e *models.Expense) (int64, error) {
	var exists int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM persons WHERE id = ? AND calculation_id = ?",
		e.PayerID, e.CalculationID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("payer %s: %w", e.PayerID, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check payer: %w", err)
	}

	digits, err := s.currencyDigits(ctx, tx, e.CalculationID, e.CurrencyID)
	if err != nil {
		return 0, err
	}
	return currency.ToCents(e.Amount, digits), nil
}

func insertWeights(ctx context.Context, tx *sql.Tx, e *models.Expense) error {
	for personID, w := range e.SplitWeights {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO split_weights (expense_id, person_id, weight) VALUES (?, ?, ?)",
			e.ID, personID, w,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split weight: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) listExpenses(ctx context.Context, calculationID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.calculation_id, e.payer_id, e.currency_id, e.title, e.amount, e.date, c.code
		FROM expenses e JOIN currencies c ON c.id = e.currency_id
		WHERE e.calculation_id = ?
		ORDER BY e.date, e.rowid`,
		calculationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		var (
			e     models.Expense
			cents int64
			date  string
			code  string
		)
		if err := rows.Scan(&e.ID, &e.CalculationID, &e.PayerID, &e.CurrencyID, &e.Title, &cents, &date, &code); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount = currency.FromCents(cents, currency.FractionDigits(code))
		if e.Date, err = models.ParseDay(date); err != nil {
			return nil, fmt.Errorf("failed to parse date of expense %s: %w", e.ID, err)
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	weightRows, err := s.db.QueryContext(ctx, `
		SELECT w.expense_id, w.person_id, w.weight
		FROM split_weights w JOIN expenses e ON e.id = w.expense_id
		WHERE e.calculation_id = ?`,
		calculationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get split weights: %w", err)
	}
	defer weightRows.Close()

	for weightRows.Next() {
		var (
			expenseID, personID string
			w                   float64
		)
		if err := weightRows.Scan(&expenseID, &personID, &w); err != nil {
			return nil, fmt.Errorf("failed to scan split weight: %w", err)
		}
		i, ok := index[expenseID]
		if !ok {
			continue
		}
		if expenses[i].SplitWeights == nil {
			expenses[i].SplitWeights = make(map[string]float64)
		}
		expenses[i].SplitWeights[personID] = w
	}
	if err := weightRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate split weights: %w", err)
	}

	return expenses, nil
}
