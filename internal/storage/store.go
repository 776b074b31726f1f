// Package storage is the persistence adapter: a single-slot blob store
// backed by SQLite, plus the JSON codec for the persisted dataset schema.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SnapshotSlot is the fixed key the whole dataset is stored under.
const SnapshotSlot = "dataset"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
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

	if err := applySchema(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the stored blob. The second result is false when the slot
// has never been written, which callers treat as an empty dataset.
func (s *SQLiteStore) Get(ctx context.Context) ([]byte, bool, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM snapshots WHERE slot = ?`, SnapshotSlot).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	return blob, true, nil
}

// Set overwrites the slot with blob.
func (s *SQLiteStore) Set(ctx context.Context, blob []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (slot, blob, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		SnapshotSlot, blob, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot persisted", "slot", SnapshotSlot, "bytes", len(blob))
	return nil
}
