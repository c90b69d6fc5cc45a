package tabular

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrTableNotFound indicates a read of a table that has never been written.
var ErrTableNotFound = errors.New("table not found")

// Store persists named string tables in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the table store database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure table store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open table store db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WriteTable replaces the named table with the given columns and rows. Every
// row must have one value per column.
func (s *Store) WriteTable(ctx context.Context, name string, columns []string, rows [][]string) error {
	if err := validateIdentifier(name); err != nil {
		return err
	}
	if len(columns) == 0 {
		return errors.New("write table: at least one column required")
	}
	for _, column := range columns {
		if err := validateIdentifier(column); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %q", name)); err != nil {
		return fmt.Errorf("drop table %s: %w", name, err)
	}

	defs := make([]string, len(columns))
	for i, column := range columns {
		defs[i] = fmt.Sprintf("%q TEXT NOT NULL", column)
	}
	createStmt := fmt.Sprintf("CREATE TABLE %q (%s)", name, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insertStmt := fmt.Sprintf("INSERT INTO %q VALUES (%s)", name, placeholders)
	for i, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("write table %s: row %d has %d values, want %d", name, i, len(row), len(columns))
		}
		args := make([]any, len(row))
		for j, value := range row {
			args[j] = value
		}
		if _, err := tx.ExecContext(ctx, insertStmt, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write of %s: %w", name, err)
	}
	return nil
}

// ReadTable returns the named table's columns and rows in insert order.
func (s *Store) ReadTable(ctx context.Context, name string) ([]string, [][]string, error) {
	if err := validateIdentifier(name); err != nil {
		return nil, nil, err
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&exists)
	if err != nil {
		return nil, nil, fmt.Errorf("check table %s: %w", name, err)
	}
	if exists == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}

	result, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q", name))
	if err != nil {
		return nil, nil, fmt.Errorf("read table %s: %w", name, err)
	}
	defer result.Close()

	columns, err := result.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read columns of %s: %w", name, err)
	}

	var rows [][]string
	for result.Next() {
		values := make([]string, len(columns))
		scan := make([]any, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := result.Scan(scan...); err != nil {
			return nil, nil, fmt.Errorf("scan row of %s: %w", name, err)
		}
		rows = append(rows, values)
	}
	if err := result.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate %s: %w", name, err)
	}
	return columns, rows, nil
}

func validateIdentifier(name string) error {
	if name == "" {
		return errors.New("empty identifier")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return fmt.Errorf("invalid identifier %q", name)
		}
	}
	return nil
}
