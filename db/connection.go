package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sebuszqo/ExpenseTracker/internal/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DBService represents a service that interacts with a database.
type DBService struct {
	DB     *sql.DB
	Driver string
	log    *logger.Logger
}

// NewPostgresService opens a pgx-backed connection pool and runs migrations.
func NewPostgresService(ctx context.Context, connStr string, log *logger.Logger) (*DBService, error) {
	if connStr == "" {
		return nil, fmt.Errorf("missing DB_CONNECTION_STRING in environment variables")
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %w", err)
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return newDBService(ctx, db, DriverPostgres, log)
}

// NewSQLiteService opens an embedded SQLite database at path (":memory:" works)
// and runs migrations. Foreign keys are enforced on every pooled connection.
func NewSQLiteService(ctx context.Context, path string, log *logger.Logger) (*DBService, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	return newDBService(ctx, db, DriverSQLite, log)
}

// sqliteDSN turns a path into a file: URI carrying the foreign_keys pragma,
// which the driver applies to each new connection.
func sqliteDSN(path string) string {
	const fkPragma = "_pragma=foreign_keys(1)"
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	if strings.Contains(path, "?") {
		return path + "&" + fkPragma
	}
	return path + "?" + fkPragma
}

func newDBService(ctx context.Context, db *sql.DB, driver string, log *logger.Logger) (*DBService, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to the database: %w", err)
	}

	s := &DBService{DB: db, Driver: driver, log: log.With("service", "DBService", "driver", driver)}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *DBService) Health(ctx context.Context) map[string]string {
	stats := make(map[string]string)

	err := s.DB.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["driver"] = s.Driver
	return stats
}

// Close closes the database connection.
func (s *DBService) Close() error {
	s.log.Info("Closing database connection")
	return s.DB.Close()
}

// IsUniqueViolation reports whether err is a unique constraint failure from
// either supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return isSQLiteConstraint(liteErr, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE")
	}
	return false
}

// IsForeignKeyViolation reports whether err is a foreign key failure from
// either supported driver.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return isSQLiteConstraint(liteErr, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY")
	}
	return false
}

// isSQLiteConstraint matches the extended result code, falling back to the
// message when the connection reports only the primary SQLITE_CONSTRAINT code.
func isSQLiteConstraint(err *sqlite.Error, extended int, keyword string) bool {
	switch err.Code() {
	case extended:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(err.Error(), keyword)
	default:
		return false
	}
}

// ConstraintName extracts the violated constraint name when the driver exposes it.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
