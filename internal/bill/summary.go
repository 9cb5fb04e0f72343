package bill

import (
	"slices"
	"time"
)

// CategoryTotal is one slice of the category spending breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthTotal is one bar of the monthly spending summary. Month is a
// display label such as "May 2025".
type MonthTotal struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// SpendingByCategory aggregates amounts per category, one entry per
// distinct category in first-appearance order. The amounts sum to
// TotalAmount over the same bills.
func SpendingByCategory(bills []Bill) []CategoryTotal {
	totals := TotalByCategory(bills)

	result := make([]CategoryTotal, 0, len(totals))
	for _, name := range CategoryNames(bills) {
		result = append(result, CategoryTotal{Category: name, Amount: totals[name]})
	}

	return result
}

// MonthlySummary aggregates amounts per calendar month, sorted
// chronologically ascending by (year, month) regardless of how the
// display labels collate. The amounts sum to TotalAmount over the same
// bills; bills with unparseable dates are skipped.
func MonthlySummary(bills []Bill) []MonthTotal {
	type yearMonth struct {
		Year  int
		Month time.Month
	}

	totals := make(map[yearMonth]float64)

	for _, b := range bills {
		d, err := ParseDate(b.Date)
		if err != nil {
			continue
		}

		totals[yearMonth{d.Year(), d.Month()}] += b.Amount
	}

	keys := make([]yearMonth, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}

	slices.SortFunc(keys, func(a, b yearMonth) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}

		return int(a.Month) - int(b.Month)
	})

	result := make([]MonthTotal, 0, len(keys))

	for _, k := range keys {
		label := time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.Local).Format("Jan 2006")
		result = append(result, MonthTotal{Month: label, Amount: totals[k]})
	}

	return result
}
