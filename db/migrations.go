package database

import (
	"context"
	"fmt"
)

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id BIGSERIAL PRIMARY KEY,
		amount NUMERIC(10, 2) NOT NULL CHECK (amount > 0),
		description TEXT,
		category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expense_date DATE NOT NULL DEFAULT CURRENT_DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses(user_id)`,
}

// SQLite keeps amounts as TEXT so decimals round-trip without float conversion.
var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		amount TEXT NOT NULL,
		description TEXT,
		category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expense_date DATE NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses(user_id)`,
}

// Migrate creates the schema for the service's driver. Statements are idempotent.
func (s *DBService) Migrate(ctx context.Context) error {
	migrations := postgresMigrations
	if s.Driver == DriverSQLite {
		migrations = sqliteMigrations
	}

	for i, m := range migrations {
		if _, err := s.DB.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	s.log.Debug("Schema migrated", "statements", len(migrations))
	return nil
}
