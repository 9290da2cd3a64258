package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/i474232898/weather-intelligence/internal/weather"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  location_key TEXT    NOT NULL,
  stored_at    INTEGER NOT NULL,
  observation  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_key_stored ON snapshots(location_key, stored_at);
`

// SQLiteStore persists snapshots in a sqlite database. Observations are stored as JSON.
type SQLiteStore struct {
	db         *sql.DB
	maxHistory int
}

// OpenSQLite opens (creating if needed) the database at path and applies the schema.
// path may be a file path, a "file:" URI or ":memory:".
func OpenSQLite(path string, maxHistory int) (*SQLiteStore, error) {
	dsn, err := buildDSN(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	// One writer; also keeps a :memory: database on a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db, maxHistory: maxHistory}, nil
}

func buildDSN(path string) (string, error) {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path, nil
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path), nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot inserts a snapshot and trims history beyond maxHistory.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap weather.Snapshot) error {
	obs, err := json.Marshal(snap.Observation)
	if err != nil {
		return fmt.Errorf("encode observation: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("rollback snapshot insert", "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (location_key, stored_at, observation) VALUES (?, ?, ?)`,
		snap.LocationKey, snap.StoredAt.UTC().UnixNano(), string(obs),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if s.maxHistory > 0 {
		if _, err := tx.ExecContext(ctx, `
DELETE FROM snapshots
WHERE location_key = ?
  AND id NOT IN (
    SELECT id FROM snapshots WHERE location_key = ? ORDER BY stored_at DESC, id DESC LIMIT ?
  )`, snap.LocationKey, snap.LocationKey, s.maxHistory); err != nil {
			return fmt.Errorf("trim snapshots: %w", err)
		}
	}

	return tx.Commit()
}

// GetLatest returns the most recent snapshot for a location.
func (s *SQLiteStore) GetLatest(ctx context.Context, key string) (weather.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT location_key, stored_at, observation FROM snapshots
WHERE location_key = ?
ORDER BY stored_at DESC, id DESC
LIMIT 1`, key)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("query latest snapshot: %w", err)
	}
	snaps, err := scanSnapshots(rows)
	if err != nil {
		return weather.Snapshot{}, err
	}
	if len(snaps) == 0 {
		return weather.Snapshot{}, ErrNotFound
	}
	return snaps[0], nil
}

// GetRange returns snapshots stored between from and to (inclusive), oldest first.
func (s *SQLiteStore) GetRange(ctx context.Context, key string, from, to time.Time) ([]weather.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT location_key, stored_at, observation FROM snapshots
WHERE location_key = ? AND stored_at BETWEEN ? AND ?
ORDER BY stored_at ASC, id ASC`, key, from.UTC().UnixNano(), to.UTC().UnixNano())
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	snaps, err := scanSnapshots(rows)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, ErrNotFound
	}
	return snaps, nil
}

func scanSnapshots(rows *sql.Rows) ([]weather.Snapshot, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close snapshot rows", "error", err)
		}
	}()

	var out []weather.Snapshot
	for rows.Next() {
		var (
			snap     weather.Snapshot
			storedAt int64
			obs      string
		)
		if err := rows.Scan(&snap.LocationKey, &storedAt, &obs); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(obs), &snap.Observation); err != nil {
			return nil, fmt.Errorf("decode observation: %w", err)
		}
		snap.StoredAt = time.Unix(0, storedAt).UTC()
		out = append(out, snap)
	}
	return out, rows.Err()
}
