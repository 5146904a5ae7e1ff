package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries runs the dialogue queries against a connection or transaction.
type Queries struct {
	db DBTX
}

// New returns Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Dialogue is a row of the dialogues table.
type Dialogue struct {
	Title     string
	UnitCount int64
	SavedAt   string
}

const upsertDialogue = `
INSERT INTO dialogues (title, unit_count, saved_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (title) DO UPDATE SET
    unit_count = excluded.unit_count,
    saved_at = excluded.saved_at
`

// UpsertDialogueParams holds the arguments of UpsertDialogue.
type UpsertDialogueParams struct {
	Title     string
	UnitCount int64
}

// UpsertDialogue creates or refreshes the dialogue header row.
func (q *Queries) UpsertDialogue(ctx context.Context, arg UpsertDialogueParams) error {
	_, err := q.db.ExecContext(ctx, upsertDialogue, arg.Title, arg.UnitCount)
	return err
}

const deleteDialogueUnits = `DELETE FROM dialogue_units WHERE title = ?`

// DeleteDialogueUnits removes every unit of a dialogue.
func (q *Queries) DeleteDialogueUnits(ctx context.Context, title string) error {
	_, err := q.db.ExecContext(ctx, deleteDialogueUnits, title)
	return err
}

const createDialogueUnit = `INSERT INTO dialogue_units (title, position, text) VALUES (?, ?, ?)`

// CreateDialogueUnitParams holds the arguments of CreateDialogueUnit.
type CreateDialogueUnitParams struct {
	Title    string
	Position int64
	Text     string
}

// CreateDialogueUnit inserts one unit.
func (q *Queries) CreateDialogueUnit(ctx context.Context, arg CreateDialogueUnitParams) error {
	_, err := q.db.ExecContext(ctx, createDialogueUnit, arg.Title, arg.Position, arg.Text)
	return err
}

const getDialogue = `SELECT title, unit_count, saved_at FROM dialogues WHERE title = ?`

// GetDialogue returns the header row of a dialogue, or sql.ErrNoRows.
func (q *Queries) GetDialogue(ctx context.Context, title string) (Dialogue, error) {
	var d Dialogue
	err := q.db.QueryRowContext(ctx, getDialogue, title).Scan(&d.Title, &d.UnitCount, &d.SavedAt)
	return d, err
}

const listDialogueUnits = `SELECT text FROM dialogue_units WHERE title = ? ORDER BY position`

// ListDialogueUnits returns the units of a dialogue in reading order.
func (q *Queries) ListDialogueUnits(ctx context.Context, title string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listDialogueUnits, title)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		units = append(units, text)
	}
	return units, rows.Err()
}

const listDialogues = `SELECT title, unit_count, saved_at FROM dialogues ORDER BY title`

// ListDialogues returns every saved dialogue header.
func (q *Queries) ListDialogues(ctx context.Context) ([]Dialogue, error) {
	rows, err := q.db.QueryContext(ctx, listDialogues)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dialogues []Dialogue
	for rows.Next() {
		var d Dialogue
		if err := rows.Scan(&d.Title, &d.UnitCount, &d.SavedAt); err != nil {
			return nil, err
		}
		dialogues = append(dialogues, d)
	}
	return dialogues, rows.Err()
}
