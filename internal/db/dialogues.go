package db

import (
	"context"
	"fmt"
	"log/slog"
)

// ReplaceDialogue stores units as the full sequence of title, dropping any
// previously saved units, in a single transaction.
func (s *Store) ReplaceDialogue(ctx context.Context, title string, units []string) error {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := s.WithTx(tx)

	if err := q.UpsertDialogue(ctx, UpsertDialogueParams{
		Title:     title,
		UnitCount: int64(len(units)),
	}); err != nil {
		return fmt.Errorf("upsert dialogue: %w", err)
	}

	if err := q.DeleteDialogueUnits(ctx, title); err != nil {
		return fmt.Errorf("delete units: %w", err)
	}

	for i, text := range units {
		if err := q.CreateDialogueUnit(ctx, CreateDialogueUnitParams{
			Title:    title,
			Position: int64(i),
			Text:     text,
		}); err != nil {
			return fmt.Errorf("insert unit %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.Debug("replaced dialogue", "title", title, "units", len(units))
	return nil
}
