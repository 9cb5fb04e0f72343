package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

// storageKey is the single key under which the bill collection lives,
// JSON-encoded as a bare array.
const storageKey = "bill-tracker-bills"

const localSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Local persists bills in a SQLite-backed key-value store on disk. It
// fills the role browser local storage plays for a web client.
type Local struct {
	db *sql.DB
}

var _ Backend = (*Local)(nil)

// NewLocal opens (and if needed creates) the key-value store at path,
// creating parent directories along the way.
func NewLocal(path string) (*Local, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening local storage: %w", err)
	}

	if _, err := db.Exec(localSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing local storage: %w", err)
	}

	return &Local{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Local) Close() error {
	return l.db.Close()
}

// Load returns the stored collection. A missing key reports ErrNoData.
// A value that no longer decodes is treated the same way, not as a
// crash: corrupted storage must fall through the cascade.
func (l *Local) Load(ctx context.Context) ([]bill.Bill, error) {
	var value string

	err := l.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, storageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoData
	}

	if err != nil {
		return nil, fmt.Errorf("reading local storage: %w", err)
	}

	var bills []bill.Bill
	if err := json.Unmarshal([]byte(value), &bills); err != nil {
		slog.Warn("local bill data is malformed, treating as empty", "error", err)
		return nil, ErrNoData
	}

	return bills, nil
}

func (l *Local) Save(ctx context.Context, bills []bill.Bill) error {
	value, err := json.Marshal(bills)
	if err != nil {
		return fmt.Errorf("encoding bills: %w", err)
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		storageKey, string(value),
	)
	if err != nil {
		return fmt.Errorf("writing local storage: %w", err)
	}

	return nil
}
