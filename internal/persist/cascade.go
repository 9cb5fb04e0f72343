package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

// Cascade composes the persistence tiers into a prioritized fallback:
// remote endpoint, then local storage, then the bundled seed. The tier
// that answers the load is recorded and all saves for the rest of the
// session go to its writable counterpart: remote writes stay remote,
// while a local or seed load routes writes to local storage. A seed hit
// is additionally written forward into local storage so the next
// session skips the seed.
type Cascade struct {
	remote Backend
	local  Backend
	seed   Backend

	mu     sync.Mutex
	writer Backend
}

var _ Backend = (*Cascade)(nil)

// NewCascade builds a cascade over the three tiers. remote may be nil
// for installations that never talk to an API server.
func NewCascade(remote, local, seed Backend) *Cascade {
	return &Cascade{remote: remote, local: local, seed: seed}
}

func (c *Cascade) Load(ctx context.Context) ([]bill.Bill, error) {
	if c.remote != nil {
		bills, err := c.remote.Load(ctx)
		if err == nil {
			c.setWriter(c.remote)
			return bills, nil
		}

		slog.Info("bills endpoint unavailable, falling back to local storage", "error", err)
	}

	bills, err := c.local.Load(ctx)
	if err == nil {
		c.setWriter(c.local)
		return bills, nil
	}

	if !errors.Is(err, ErrNoData) {
		slog.Warn("local storage unavailable, falling back to seed data", "error", err)
	}

	bills, err = c.seed.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("all persistence tiers failed: %w", err)
	}

	// Carry the seed forward so future sessions load it from local
	// storage. Best effort: a failed write just means we seed again.
	if err := c.local.Save(ctx, bills); err != nil {
		slog.Warn("writing seed data to local storage failed", "error", err)
	}

	c.setWriter(c.local)

	return bills, nil
}

// Save writes through the tier chosen at load time. Before any load has
// completed, writes go to local storage.
func (c *Cascade) Save(ctx context.Context, bills []bill.Bill) error {
	c.mu.Lock()
	writer := c.writer
	c.mu.Unlock()

	if writer == nil {
		writer = c.local
	}

	return writer.Save(ctx, bills)
}

func (c *Cascade) setWriter(b Backend) {
	c.mu.Lock()
	c.writer = b
	c.mu.Unlock()
}
