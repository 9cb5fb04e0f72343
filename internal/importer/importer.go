// Package importer turns CSV exports into bill form data. The column
// layout is auto-detected from the header row, with aliases for the
// names spreadsheet users actually write.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/encoding"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Import parses a CSV stream into bill form data. The input is decoded
// to UTF-8 first so charset quirks in spreadsheet exports do not leak
// into bill names and notes.
func (s *Service) Import(r io.Reader) ([]bill.FormData, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, err := detectColumns(rows)
	if err != nil {
		return nil, err
	}

	return parseRows(cols, rows[headerIdx+1:]), nil
}

// parseRows extracts bills from data rows. Rows whose name, date or
// amount does not parse are skipped so trailing totals and blank lines
// in exports do not abort the import.
func parseRows(cols columns, rows [][]string) []bill.FormData {
	var bills []bill.FormData

	for _, row := range rows {
		name := cell(row, cols.name)
		if name == "" {
			continue
		}

		date, ok := parseDueDate(cell(row, cols.date))
		if !ok {
			continue
		}

		amount, err := parseAmount(cell(row, cols.amount))
		if err != nil {
			continue
		}

		category := cell(row, cols.category)
		if category == "" {
			category = "Other"
		}

		bills = append(bills, bill.FormData{
			Name:     name,
			Amount:   amount,
			Date:     date,
			Category: category,
			IsPaid:   parsePaid(cell(row, cols.paid)),
			Notes:    cell(row, cols.notes),
		})
	}

	return bills
}

// cell safely gets a trimmed value from a row; idx < 0 means the column
// is absent from this file.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
