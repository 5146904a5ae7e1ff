package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("creates directory and database", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "subdir", "test.db")

		ctx := context.Background()
		store, err := NewStore(ctx, dbPath)
		require.NoError(t, err)
		defer store.Close()

		_, err = os.Stat(dbPath)
		assert.NoError(t, err)

		var result int
		err = store.QueryRowContext(ctx, "SELECT 1").Scan(&result)
		assert.NoError(t, err)
		assert.Equal(t, 1, result)
	})

	t.Run("sets WAL mode", func(t *testing.T) {
		ctx := context.Background()
		store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer store.Close()

		var mode string
		err = store.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode)
		assert.NoError(t, err)
		assert.Equal(t, "wal", mode)
	})

	t.Run("enables foreign keys", func(t *testing.T) {
		ctx := context.Background()
		store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer store.Close()

		var fk int
		err = store.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk)
		assert.NoError(t, err)
		assert.Equal(t, 1, fk)
	})

	t.Run("sets busy timeout", func(t *testing.T) {
		ctx := context.Background()
		store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer store.Close()

		var timeout int
		err = store.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout)
		assert.NoError(t, err)
		assert.Equal(t, 5000, timeout)
	})
}

func TestStore_Migrate(t *testing.T) {
	t.Run("applies migrations", func(t *testing.T) {
		store := NewTestStore(t)
		ctx := context.Background()

		for _, table := range []string{"dialogues", "dialogue_units", "schema_migrations"} {
			var name string
			err := store.QueryRowContext(ctx,
				"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			assert.NoError(t, err)
			assert.Equal(t, table, name)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		store := NewTestStore(t)
		ctx := context.Background()

		require.NoError(t, store.Migrate(ctx))

		pending, err := store.Pending(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)

		dialogues, err := store.ListDialogues(ctx)
		assert.NoError(t, err)
		assert.Empty(t, dialogues)
	})
}

func TestStore_Pending(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	pending, err := store.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_dialogues.sql"}, pending)
}

func TestStore_ReplaceDialogue(t *testing.T) {
	ctx := context.Background()

	t.Run("stores units in order", func(t *testing.T) {
		store := NewTestStore(t)

		units := []string{"EUTHYPHRO: a\n\nSOCRATES: b", "EUTHYPHRO: c\n\nSOCRATES: d"}
		require.NoError(t, store.ReplaceDialogue(ctx, "Euthyphro", units))

		got, err := store.ListDialogueUnits(ctx, "Euthyphro")
		require.NoError(t, err)
		assert.Equal(t, units, got)

		d, err := store.GetDialogue(ctx, "Euthyphro")
		require.NoError(t, err)
		assert.Equal(t, int64(2), d.UnitCount)
		assert.NotEmpty(t, d.SavedAt)
	})

	t.Run("overwrites previous units", func(t *testing.T) {
		store := NewTestStore(t)

		require.NoError(t, store.ReplaceDialogue(ctx, "Apology", []string{"a", "b", "c"}))
		require.NoError(t, store.ReplaceDialogue(ctx, "Apology", []string{"z"}))

		got, err := store.ListDialogueUnits(ctx, "Apology")
		require.NoError(t, err)
		assert.Equal(t, []string{"z"}, got)

		dialogues, err := store.ListDialogues(ctx)
		require.NoError(t, err)
		require.Len(t, dialogues, 1)
		assert.Equal(t, int64(1), dialogues[0].UnitCount)
	})

	t.Run("empty sequence", func(t *testing.T) {
		store := NewTestStore(t)

		require.NoError(t, store.ReplaceDialogue(ctx, "Crito", []string{}))

		got, err := store.ListDialogueUnits(ctx, "Crito")
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = store.GetDialogue(ctx, "Crito")
		assert.NoError(t, err)
	})

	t.Run("missing dialogue", func(t *testing.T) {
		store := NewTestStore(t)

		_, err := store.GetDialogue(ctx, "Phaedo")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestExtractUpMigration(t *testing.T) {
	t.Run("extracts up portion", func(t *testing.T) {
		content := `-- +migrate Up
CREATE TABLE test (id INTEGER);

-- +migrate Down
DROP TABLE test;
`
		result := extractUpMigration(content)
		assert.Equal(t, "CREATE TABLE test (id INTEGER);", result)
	})

	t.Run("ignores text before the up marker", func(t *testing.T) {
		content := "-- dialogue tables\n-- +migrate Up\nCREATE TABLE test (id INTEGER);\n-- +migrate Down\nDROP TABLE test;"
		result := extractUpMigration(content)
		assert.Equal(t, "CREATE TABLE test (id INTEGER);", result)
	})

	t.Run("handles no down marker", func(t *testing.T) {
		content := "CREATE TABLE test (id INTEGER);"
		result := extractUpMigration(content)
		assert.Equal(t, "CREATE TABLE test (id INTEGER);", result)
	})
}

// NewTestStore provides a migrated test database.
func NewTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	ctx := context.Background()
	store, err := NewStore(ctx, dbPath)
	require.NoError(t, err)

	err = store.Migrate(ctx)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
