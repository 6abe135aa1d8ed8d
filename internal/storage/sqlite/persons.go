package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/moneybalance/internal/models"
	"github.com/mmynk/moneybalance/internal/storage"
)

// AddPerson inserts a new person into a calculation's roster.
func (s *SQLiteStore) AddPerson(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if err := s.requireCalculation(ctx, person.CalculationID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO persons (id, calculation_id, name) VALUES (?, ?, ?)",
		person.ID, person.CalculationID, person.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	return nil
}

// RenamePerson changes the name of a person.
func (s *SQLiteStore) RenamePerson(ctx context.Context, personID, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE persons SET name = ? WHERE id = ?",
		name, personID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename person: %w", err)
	}
	return expectOneRow(res, "person", personID)
}

// DeletePerson removes a person who pays no expense, together with their
// split weights.
func (s *SQLiteStore) DeletePerson(ctx context.Context, personID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM persons WHERE id = ?", personID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("person %s: %w", personID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check person existence: %w", err)
	}

	var paid int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses WHERE payer_id = ?", personID).Scan(&paid)
	if err != nil {
		return fmt.Errorf("failed to count expenses: %w", err)
	}
	if paid > 0 {
		return fmt.Errorf("person %s pays %d expenses: %w", personID, paid, storage.ErrPersonInUse)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM split_weights WHERE person_id = ?", personID); err != nil {
		return fmt.Errorf("failed to delete split weights: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM persons WHERE id = ?", personID); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listPersons(ctx context.Context, calculationID string) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, calculation_id, name FROM persons WHERE calculation_id = ? ORDER BY rowid",
		calculationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get persons: %w", err)
	}
	defer rows.Close()

	var persons []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.CalculationID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate persons: %w", err)
	}
	return persons, nil
}

func (s *SQLiteStore) requireCalculation(ctx context.Context, calculationID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM calculations WHERE id = ?", calculationID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("calculation %s: %w", calculationID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check calculation existence: %w", err)
	}
	return nil
}
