// Package store owns the single-table media metadata schema and its
// typed CRUD and aggregate operations.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/ktaka/mediavault/internal/util"
	_ "modernc.org/sqlite" // SQLite driver
)

// Store is the metadata persistence layer, backed by one SQLite file.
// Construct it once per application session and share it explicitly.
type Store struct {
	db *sql.DB
}

// Open opens or creates the metadata database at the given path. The
// table, dedup index and updated_at trigger are created if absent;
// re-opening a well-formed store is a no-op.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := util.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_timeout=5000&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema initialization failed: %w", err)
	}

	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec(createTableSQL()); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Schema exposes the authoritative column/type table so callers can build
// forms and filters without hardcoding the schema.
func (s *Store) Schema() map[string]ColumnType {
	m := make(map[string]ColumnType, len(columnTypes))
	for name, typ := range columnTypes {
		m[name] = typ
	}
	return m
}

// ColumnNames returns the schema's column names in declaration order
func (s *Store) ColumnNames() []string {
	names := make([]string, len(columnNames))
	copy(names, columnNames)
	return names
}
