// Package store owns the canonical in-memory bill collection for a
// running session and mediates all mutations against it.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

const saveTimeout = 10 * time.Second

//go:generate mockgen -source=store.go -destination=backend_mock.go -package=store
type Backend interface {
	Load(ctx context.Context) ([]bill.Bill, error)
	Save(ctx context.Context, bills []bill.Bill) error
}

// Store holds the authoritative bill collection. The in-memory state is
// always the source of truth: saves are optimistic and a failed save is
// recorded but never rolled back. The next mutation's save attempt is
// the de facto retry.
type Store struct {
	backend Backend

	mu      sync.Mutex
	bills   []bill.Bill
	loading bool
	err     error

	saves sync.WaitGroup
}

// New creates a Store in the loading state. Call Load to populate it.
func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		bills:   []bill.Bill{},
		loading: true,
	}
}

// Load populates the store from the backend. Failure degrades to an
// empty collection and is recorded in Err; it is never propagated.
// Loading reports false once Load returns, regardless of outcome.
func (s *Store) Load(ctx context.Context) {
	bills, err := s.backend.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		slog.Warn("loading bills failed, starting empty", "error", err)

		s.bills = []bill.Bill{}
		s.err = fmt.Errorf("loading bills: %w", err)
	} else {
		s.bills = bill.SortByDate(bills)
		s.err = nil
	}

	s.loading = false
}

// Bills returns a copy of the current collection, sorted by due date
// descending.
func (s *Store) Bills() []bill.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.bills)
}

// Loading reports whether the initial load is still in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// Err returns the most recent load or save failure, or nil.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Add creates a bill from the form data, inserts it in date order and
// triggers a persistence write. The created bill is returned.
func (s *Store) Add(data bill.FormData) bill.Bill {
	b := bill.New(data)

	s.mu.Lock()
	s.bills = bill.SortByDate(append(s.bills, b))
	snapshot := slices.Clone(s.bills)
	s.mu.Unlock()

	s.persist(snapshot)

	return b
}

// Update replaces the named bill's fields with the form data, keeping
// its id, and re-sorts. Unknown ids are silently ignored.
func (s *Store) Update(id string, data bill.FormData) {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.bills[idx] = bill.Bill{
		ID:       id,
		Name:     data.Name,
		Amount:   data.Amount,
		Date:     data.Date,
		Category: data.Category,
		IsPaid:   data.IsPaid,
		Notes:    data.Notes,
	}
	s.bills = bill.SortByDate(s.bills)
	snapshot := slices.Clone(s.bills)
	s.mu.Unlock()

	s.persist(snapshot)
}

// Delete removes the bill with the given id. Unknown ids are silently
// ignored. Deletion is immediate and irreversible; there is no undo.
func (s *Store) Delete(id string) {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.bills = slices.Delete(s.bills, idx, idx+1)
	snapshot := slices.Clone(s.bills)
	s.mu.Unlock()

	s.persist(snapshot)
}

// TogglePaid flips the paid status of the bill with the given id.
// Unknown ids are silently ignored. Toggling does not change dates, so
// no re-sort is needed.
func (s *Store) TogglePaid(id string) {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.bills[idx].IsPaid = !s.bills[idx].IsPaid
	snapshot := slices.Clone(s.bills)
	s.mu.Unlock()

	s.persist(snapshot)
}

// Wait blocks until all in-flight persistence writes have finished.
// Call it on teardown so outstanding saves can complete.
func (s *Store) Wait() {
	s.saves.Wait()
}

// persist writes the full collection to the backend asynchronously.
// Overlapping writes from rapid mutations are allowed; the backend is
// expected to tolerate last-write-wins.
func (s *Store) persist(snapshot []bill.Bill) {
	s.saves.Add(1)

	go func() {
		defer s.saves.Done()

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		err := s.backend.Save(ctx, snapshot)

		s.mu.Lock()
		defer s.mu.Unlock()

		if err != nil {
			slog.Warn("saving bills failed", "error", err)
			s.err = fmt.Errorf("saving bills: %w", err)

			return
		}

		s.err = nil
	}()
}

// indexOf returns the position of the bill with the given id, or -1.
// Callers must hold s.mu.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.bills, func(b bill.Bill) bool {
		return b.ID == id
	})
}
