package importer

import (
	"fmt"
	"strings"
)

// columns holds the detected index of each field in a row; -1 marks an
// optional column that the file does not carry.
type columns struct {
	name     int
	amount   int
	date     int
	category int
	paid     int
	notes    int
}

// Header spellings seen in the wild, matched case-insensitively.
var (
	nameAliases     = []string{"name", "bill", "description", "payee"}
	amountAliases   = []string{"amount", "total", "cost", "price"}
	dateAliases     = []string{"date", "due", "due date", "duedate"}
	categoryAliases = []string{"category", "type"}
	paidAliases     = []string{"paid", "is paid", "ispaid", "status"}
	notesAliases    = []string{"notes", "note", "memo", "comment"}
)

// detectColumns scans for the first row that contains at least a name,
// amount and date column. Returns the column layout and the header's
// row index.
func detectColumns(rows [][]string) (columns, int, error) {
	for idx, row := range rows {
		cols := columns{name: -1, amount: -1, date: -1, category: -1, paid: -1, notes: -1}

		for i, h := range row {
			switch header := strings.ToLower(strings.TrimSpace(h)); {
			case matches(header, nameAliases):
				cols.name = i
			case matches(header, amountAliases):
				cols.amount = i
			case matches(header, dateAliases):
				cols.date = i
			case matches(header, categoryAliases):
				cols.category = i
			case matches(header, paidAliases):
				cols.paid = i
			case matches(header, notesAliases):
				cols.notes = i
			}
		}

		if cols.name >= 0 && cols.amount >= 0 && cols.date >= 0 {
			return cols, idx, nil
		}
	}

	return columns{}, 0, fmt.Errorf("no header row found: need name, amount and date columns")
}

func matches(header string, candidates []string) bool {
	for _, c := range candidates {
		if header == c {
			return true
		}
	}

	return false
}
