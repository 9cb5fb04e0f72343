// Package seed carries the bundled bill snapshot used to prime an
// otherwise empty installation and to back the read-only demo views.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

//go:embed bills.json
var raw []byte

type document struct {
	Bills []bill.Bill `json:"bills"`
}

// Bills decodes the embedded snapshot.
func Bills() ([]bill.Bill, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding seed data: %w", err)
	}

	return doc.Bills, nil
}
