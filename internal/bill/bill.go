package bill

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for bill due dates.
const DateLayout = "2006-01-02"

// Bill represents a tracked financial obligation.
type Bill struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"` // due date, YYYY-MM-DD
	Category string  `json:"category"`
	IsPaid   bool    `json:"isPaid"`
	Notes    string  `json:"notes,omitempty"`
}

// FormData is the shape accepted by create and update operations.
// The store assigns the id on creation.
type FormData struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	IsPaid   bool    `json:"isPaid"`
	Notes    string  `json:"notes,omitempty"`
}

// Categories is the canonical list offered by category pickers.
// It is advisory only: grouping and totals work on any category string.
var Categories = []string{
	"Housing",
	"Utilities",
	"Transportation",
	"Food",
	"Healthcare",
	"Insurance",
	"Entertainment",
	"Subscription",
	"Debt",
	"Other",
}

// New wraps form data into a Bill with a freshly generated unique id.
func New(data FormData) Bill {
	return Bill{
		ID:       uuid.NewString(),
		Name:     data.Name,
		Amount:   data.Amount,
		Date:     data.Date,
		Category: data.Category,
		IsPaid:   data.IsPaid,
		Notes:    data.Notes,
	}
}

// ParseDate parses a YYYY-MM-DD due date in local time. Every date
// consumer in this package goes through here so that rendering, the
// current-month filter and the monthly summary agree on timezone policy.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// SortByDate returns a new slice ordered by due date descending (most
// recent first). The sort is stable, so bills sharing a date keep their
// input order. The input slice is never modified. Bills with dates that
// fail to parse sort last.
func SortByDate(bills []Bill) []Bill {
	sorted := slices.Clone(bills)

	slices.SortStableFunc(sorted, func(a, b Bill) int {
		da, errA := ParseDate(a.Date)
		db, errB := ParseDate(b.Date)

		switch {
		case errA != nil && errB != nil:
			return 0
		case errA != nil:
			return 1
		case errB != nil:
			return -1
		}

		return db.Compare(da)
	})

	return sorted
}

// GroupByCategory partitions bills by exact category string equality.
// Keys exist only for categories present in the input; bills within a
// group keep their input order.
func GroupByCategory(bills []Bill) map[string][]Bill {
	groups := make(map[string][]Bill)
	for _, b := range bills {
		groups[b.Category] = append(groups[b.Category], b)
	}

	return groups
}

// TotalByCategory sums amounts per category. Empty input yields an
// empty map, not a map of zero-valued keys.
func TotalByCategory(bills []Bill) map[string]float64 {
	totals := make(map[string]float64)
	for _, b := range bills {
		totals[b.Category] += b.Amount
	}

	return totals
}

// TotalAmount sums all bill amounts; 0 for empty input.
func TotalAmount(bills []Bill) float64 {
	var total float64
	for _, b := range bills {
		total += b.Amount
	}

	return total
}

// UnpaidAmount sums the amounts of bills not yet marked paid.
func UnpaidAmount(bills []Bill) float64 {
	var total float64

	for _, b := range bills {
		if !b.IsPaid {
			total += b.Amount
		}
	}

	return total
}

// CategoryNames returns the distinct categories present in bills, in
// first-appearance order.
func CategoryNames(bills []Bill) []string {
	seen := make(map[string]bool)

	var names []string

	for _, b := range bills {
		if seen[b.Category] {
			continue
		}

		seen[b.Category] = true
		names = append(names, b.Category)
	}

	return names
}

// CurrentMonth filters to bills whose due date falls in the same
// calendar month and year as now. The reference time is a parameter so
// tests can supply a fixed clock; production callers pass time.Now().
// Bills with unparseable dates never match.
func CurrentMonth(bills []Bill, now time.Time) []Bill {
	var current []Bill

	for _, b := range bills {
		d, err := ParseDate(b.Date)
		if err != nil {
			continue
		}

		if d.Month() == now.Month() && d.Year() == now.Year() {
			current = append(current, b)
		}
	}

	return current
}
