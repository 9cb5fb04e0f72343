package importer

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

var errNegativeAmount = errors.New("negative amount")

// parseAmount parses a dollar amount that may carry a currency symbol
// and thousands separators: "$1,234.56" -> 1234.56. Negative amounts
// are rejected; a bill cannot cost less than nothing.
func parseAmount(s string) (float64, error) {
	clean := strings.TrimPrefix(s, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	if d.IsNegative() {
		return 0, errNegativeAmount
	}

	return d.InexactFloat64(), nil
}

// dueDateLayouts are the accepted input formats, tried in order. Output
// is always normalized to the wire format.
var dueDateLayouts = []string{
	bill.DateLayout,
	"01/02/2006",
	"1/2/2006",
	"02 Jan 2006",
}

func parseDueDate(s string) (string, bool) {
	for _, layout := range dueDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format(bill.DateLayout), true
		}
	}

	return "", false
}

// parsePaid interprets the paid flag column. Unknown values and an
// absent column both mean unpaid.
func parsePaid(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1", "paid", "x":
		return true
	}

	return false
}
