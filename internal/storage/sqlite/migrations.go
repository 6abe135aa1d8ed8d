package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Tables are created parents first because of the foreign key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS calculations (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    main_currency TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS currencies (
    id TEXT PRIMARY KEY,
    calculation_id TEXT NOT NULL,
    code TEXT NOT NULL,
    rate_this REAL NOT NULL DEFAULT 1,
    rate_main REAL NOT NULL DEFAULT 1,
    UNIQUE (calculation_id, code),
    FOREIGN KEY (calculation_id) REFERENCES calculations(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS persons (
    id TEXT PRIMARY KEY,
    calculation_id TEXT NOT NULL,
    name TEXT NOT NULL,
    UNIQUE (calculation_id, name),
    FOREIGN KEY (calculation_id) REFERENCES calculations(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    calculation_id TEXT NOT NULL,
    payer_id TEXT NOT NULL,
    currency_id TEXT NOT NULL,
    title TEXT NOT NULL,
    amount INTEGER NOT NULL,
    date TEXT NOT NULL,
    FOREIGN KEY (calculation_id) REFERENCES calculations(id) ON DELETE CASCADE,
    FOREIGN KEY (payer_id) REFERENCES persons(id),
    FOREIGN KEY (currency_id) REFERENCES currencies(id)
);

CREATE TABLE IF NOT EXISTS split_weights (
    expense_id TEXT NOT NULL,
    person_id TEXT NOT NULL,
    weight REAL NOT NULL,
    PRIMARY KEY (expense_id, person_id),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE,
    FOREIGN KEY (person_id) REFERENCES persons(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_currencies_calculation_id ON currencies(calculation_id);
CREATE INDEX IF NOT EXISTS idx_persons_calculation_id ON persons(calculation_id);
CREATE INDEX IF NOT EXISTS idx_expenses_calculation_id ON expenses(calculation_id, date);
CREATE INDEX IF NOT EXISTS idx_expenses_payer_id ON expenses(payer_id);
CREATE INDEX IF NOT EXISTS idx_split_weights_person_id ON split_weights(person_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
