// Package store persists parsed dialogue sequences keyed by title.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdulachik/dialogos/internal/db"
	"github.com/abdulachik/dialogos/internal/registry"
)

// ErrNotFound is returned when no sequence has been saved for a title.
var ErrNotFound = errors.New("dialogue not found")

// Backend names accepted by New.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store saves and loads dialogue sequences.
type Store interface {
	// Save replaces the saved sequence of title.
	Save(ctx context.Context, title string, units []string) error

	// Load returns the saved sequence of title exactly as it was saved.
	Load(ctx context.Context, title string) ([]string, error)

	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend      string
	Registry     *registry.Registry
	DatabasePath string
}

// New opens the configured backend.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(cfg.Registry), nil

	case BackendSQLite:
		conn, err := db.NewStore(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := conn.Migrate(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return NewSQLStore(cfg.Registry, conn), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q (must be %q or %q)", cfg.Backend, BackendFile, BackendSQLite)
	}
}
