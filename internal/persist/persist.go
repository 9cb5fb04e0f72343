// Package persist provides the swappable media that durably hold the
// bill collection across sessions: the remote bills endpoint, a local
// SQLite key-value store and the bundled seed snapshot, composed into a
// prioritized fallback cascade.
package persist

import (
	"context"
	"errors"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

// ErrNoData signals that a backend is reachable but holds nothing.
// The cascade treats it like any other load failure and falls through
// to the next tier.
var ErrNoData = errors.New("no bill data stored")

// Backend is a single persistence medium. Load may fail; callers treat
// failure as "no data available", never as fatal. Save replaces the
// whole stored collection and is fire-and-forget from the store's
// perspective.
type Backend interface {
	Load(ctx context.Context) ([]bill.Bill, error)
	Save(ctx context.Context, bills []bill.Bill) error
}
