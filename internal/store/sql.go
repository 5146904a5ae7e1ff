package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abdulachik/dialogos/internal/db"
	"github.com/abdulachik/dialogos/internal/registry"
)

// SQLStore keeps dialogue sequences in SQLite rows.
type SQLStore struct {
	registry *registry.Registry
	db       *db.Store
}

// NewSQLStore creates a SQLStore over a migrated database.
func NewSQLStore(reg *registry.Registry, conn *db.Store) *SQLStore {
	return &SQLStore{registry: reg, db: conn}
}

// Save implements Store.
func (s *SQLStore) Save(ctx context.Context, name string, units []string) error {
	title, err := s.registry.Lookup(name)
	if err != nil {
		return err
	}
	return s.db.ReplaceDialogue(ctx, title.Name, units)
}

// Load implements Store.
func (s *SQLStore) Load(ctx context.Context, name string) ([]string, error) {
	title, err := s.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.GetDialogue(ctx, title.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s (parse it first)", ErrNotFound, title.Name)
		}
		return nil, fmt.Errorf("get dialogue: %w", err)
	}

	units, err := s.db.ListDialogueUnits(ctx, title.Name)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

// Close implements Store.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Headers lists every saved dialogue with its unit count and save time.
func (s *SQLStore) Headers(ctx context.Context) ([]db.Dialogue, error) {
	headers, err := s.db.ListDialogues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dialogues: %w", err)
	}
	return headers, nil
}
