// Package db is the SQLite backend of the dialogue store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection holding saved dialogues.
type Store struct {
	*sql.DB
	*Queries
}

// pragmas run on every new connection, in order.
var pragmas = []struct {
	stmt string
	what string
}{
	{"PRAGMA journal_mode=WAL", "enable WAL mode"},
	{"PRAGMA foreign_keys=ON", "enable foreign keys"},
	{"PRAGMA busy_timeout=5000", "set busy timeout"},
}

// NewStore opens (creating if needed) the database at dbPath.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection keeps the pragmas in effect and serializes writes
	sqlDB.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p.stmt); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	return &Store{
		DB:      sqlDB,
		Queries: New(sqlDB),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}
