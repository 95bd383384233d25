package library

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
// The index is a cache, so a mismatch is resolved by deleting the file.
const schemaVersion = 1

var (
	// ErrSchemaMismatch indicates the index schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrIndexEmpty means no scan has been stored for the requested kind.
	ErrIndexEmpty = errors.New("library index is empty")
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Index caches scan results in SQLite so runs do not re-walk the library.
type Index struct {
	db   *sql.DB
	path string
}

// KindStats summarizes the stored scan of one kind.
type KindStats struct {
	Kind      Kind
	Count     int
	ScannedAt time.Time
}

// Open initializes or connects to the index database at path.
func Open(path string) (*Index, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	idx := &Index{db: db, path: path}
	if err := idx.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return idx, nil
}

// Close closes the underlying database connection.
func (i *Index) Close() error {
	if i == nil || i.db == nil {
		return nil
	}
	return i.db.Close()
}

// Path returns the database file location.
func (i *Index) Path() string {
	return i.path
}

// Replace swaps the stored entries of kind for entries in one transaction.
// Entry order is preserved as scan order.
func (i *Index) Replace(ctx context.Context, kind Kind, entries []Entry) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := i.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin replace tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE kind = ?", string(kind)); err != nil {
			return fmt.Errorf("clear %s entries: %w", kind, err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries
			(kind, position, full_path, display_name, normalized_name, parent_folder)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (kind, full_path) DO NOTHING`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for pos, e := range entries {
			if _, err := stmt.ExecContext(ctx, string(kind), pos, e.FullPath, e.DisplayName, e.NormalizedName, e.ParentFolder); err != nil {
				return fmt.Errorf("insert %s: %w", e.FullPath, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO scans (kind, scanned_at, entry_count) VALUES (?, ?, ?)
			ON CONFLICT (kind) DO UPDATE SET scanned_at = excluded.scanned_at, entry_count = excluded.entry_count`,
			string(kind), time.Now().UTC().Format(time.RFC3339Nano), len(entries)); err != nil {
			return fmt.Errorf("record scan: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit replace: %w", err)
		}
		return nil
	})
}

// Entries returns the stored entries of kind in scan order. ErrIndexEmpty is
// returned when kind was never scanned.
func (i *Index) Entries(ctx context.Context, kind Kind) ([]Entry, error) {
	ctx = ensureContext(ctx)

	var scanned int
	if err := i.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM scans WHERE kind = ?", string(kind)).Scan(&scanned); err != nil {
		return nil, fmt.Errorf("check %s scan: %w", kind, err)
	}
	if scanned == 0 {
		return nil, fmt.Errorf("%w: no %s scan recorded", ErrIndexEmpty, kind)
	}

	rows, err := i.db.QueryContext(ctx, `SELECT full_path, display_name, normalized_name, parent_folder
		FROM entries WHERE kind = ? ORDER BY position`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query %s entries: %w", kind, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.FullPath, &e.DisplayName, &e.NormalizedName, &e.ParentFolder); err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", kind, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s entries: %w", kind, err)
	}
	return entries, nil
}

// Stats reports the stored scan of each kind. Kinds never scanned are omitted.
func (i *Index) Stats(ctx context.Context) ([]KindStats, error) {
	ctx = ensureContext(ctx)
	rows, err := i.db.QueryContext(ctx, "SELECT kind, entry_count, scanned_at FROM scans ORDER BY kind DESC")
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var stats []KindStats
	for rows.Next() {
		var (
			kind      string
			count     int
			scannedAt string
		)
		if err := rows.Scan(&kind, &count, &scannedAt); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		ts, _ := time.Parse(time.RFC3339Nano, scannedAt)
		stats = append(stats, KindStats{Kind: Kind(kind), Count: count, ScannedAt: ts})
	}
	return stats, rows.Err()
}

func (i *Index) initSchema(ctx context.Context) error {
	var tableExists int
	err := i.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return i.createSchema(ctx)
	}

	var version int
	if err := i.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: index has version %d, expected %d (delete %s and run 'funmatch scan')",
			ErrSchemaMismatch, version, schemaVersion, i.path)
	}
	return nil
}

func (i *Index) createSchema(ctx context.Context) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
