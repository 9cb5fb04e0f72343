// Package datafile stores the bill collection as a single JSON document
// on disk, the medium behind the API server's bills endpoint.
package datafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

// Store reads and writes a {"bills": [...]} document at a fixed path.
// Writes replace the whole document; concurrent writers are serialized
// and the last one wins.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

type document struct {
	Bills []bill.Bill `json:"bills"`
}

// Read returns the stored bills, initializing an empty document (and
// its parent directory) on first use.
func (s *Store) Read() ([]bill.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.write(nil); err != nil {
			return nil, err
		}

		return []bill.Bill{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading bills file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding bills file: %w", err)
	}

	return doc.Bills, nil
}

// Write replaces the stored collection.
func (s *Store) Write(bills []bill.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(bills)
}

func (s *Store) write(bills []bill.Bill) error {
	if bills == nil {
		bills = []bill.Bill{}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	raw, err := json.Marshal(document{Bills: bills})
	if err != nil {
		return fmt.Errorf("encoding bills: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing bills file: %w", err)
	}

	return nil
}
