package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/guilherme-santos/invoicez/internal"
)

const DriverName = "sqlite3"

// Storage keeps the history of event syncs. Events themselves are never
// stored.
type Storage struct {
	db *sqlx.DB
}

// Open opens (creating it if needed) the database at filename.
func Open(filename string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o700); err != nil {
		return nil, fmt.Errorf("sqlite: creating directory: %w", err)
	}
	db, err := sql.Open(DriverName, filename)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s: %w", filename, err)
	}
	s, err := NewStorage(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewStorage(db *sql.DB) (*Storage, error) {
	s := &Storage{
		db: sqlx.NewDb(db, DriverName),
	}
	if err := s.RunMigrations(); err != nil {
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return s, nil
}

func (s Storage) Close() error {
	return s.db.Close()
}

// LastSync returns the last sync of the calendar, nil if it was never synced.
func (s Storage) LastSync(ctx context.Context, calendarID string) (*internal.SyncRecord, error) {
	var r SyncRecord
	err := s.db.GetContext(ctx, &r, `
		SELECT calendar_id, sync_token, events, synced_at
		FROM syncs
		WHERE calendar_id = ?
	`, calendarID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.Convert(), nil
}

func (s Storage) SaveLastSync(ctx context.Context, r *internal.SyncRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO syncs (calendar_id, sync_token, events, synced_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(calendar_id) DO UPDATE
			SET sync_token = excluded.sync_token,
				events = excluded.events,
				synced_at = excluded.synced_at;
	`, r.CalendarID, r.SyncToken, r.Events, r.SyncedAt.Unix())
	return err
}
