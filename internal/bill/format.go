package bill

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// usd renders numbers with en-US digit grouping (1,234.56).
var usd = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as US-dollar currency with two
// decimal places and thousands separators. Negative amounts carry the
// sign before the symbol: -$50.50.
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return usd.Sprintf("-$%.2f", -amount)
	}

	return usd.Sprintf("$%.2f", amount)
}

// FormatDate renders a YYYY-MM-DD due date as "May 10, 2025". The raw
// string is returned unchanged if it does not parse.
func FormatDate(dateString string) string {
	d, err := ParseDate(dateString)
	if err != nil {
		return dateString
	}

	return d.Format("Jan 2, 2006")
}
