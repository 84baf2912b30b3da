package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the durable billed-set: entry ID → billed flag.
// It is the only state that survives a run.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// IsBilled reports whether an entry has been included in a committed
// invoice. Absent entries are not billed.
func (r *SQLiteRepository) IsBilled(ctx context.Context, entryID int64) (bool, error) {
	var billed bool
	err := r.db.QueryRowContext(ctx,
		`SELECT billed FROM billed_entries WHERE entry_id = ?`, entryID).Scan(&billed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query billed flag for entry %d: %w", entryID, err)
	}
	return billed, nil
}

// MarkBilled marks every given entry as billed in a single transaction:
// either all IDs become durable or none do. An empty batch is a no-op.
func (r *SQLiteRepository) MarkBilled(ctx context.Context, entryIDs []int64) error {
	if len(entryIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin billed-set transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO billed_entries (entry_id, billed)
		VALUES (?, 1)
		ON CONFLICT(entry_id) DO UPDATE SET billed = 1, billed_at = datetime('now')`)
	if err != nil {
		return fmt.Errorf("prepare billed insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range entryIDs {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("mark entry %d billed: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit billed-set transaction: %w", err)
	}

	slog.InfoContext(ctx, "Billed set committed", "batch_size", len(entryIDs))
	return nil
}
