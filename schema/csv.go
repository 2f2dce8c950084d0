package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================================
// CSV PARSING — Raw bytes → Dataset
// ============================================================================
// The caller reads the CSV from wherever it lives (upload, file, object
// store); this converts the bytes into typed columns. Cells that parse as
// numbers become KindNumber, empty/null markers become KindMissing,
// everything else becomes KindText. Malformed rows are skipped.
// ============================================================================

// ParseCSV parses CSV bytes into a column-oriented Dataset.
// The first record is the header; duplicate or empty headers are rejected.
func ParseCSV(data []byte, name string) (*Dataset, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1 // short rows are padded, not rejected

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("CSV has no columns")
	}

	ds := &Dataset{Name: name, Series: make([]Series, len(headers))}
	for i, h := range headers {
		ds.Series[i].Name = strings.TrimSpace(h)
	}

	rows := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		for i := range ds.Series {
			if i < len(row) {
				ds.Series[i].Values = append(ds.Series[i].Values, parseCell(row[i]))
			} else {
				ds.Series[i].Values = append(ds.Series[i].Values, Missing)
			}
		}
		rows++
	}

	if rows == 0 {
		return nil, fmt.Errorf("CSV has no data rows")
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// parseCell types one raw cell. Numeric parsing is lenient about
// thousands separators and common currency prefixes ("1,234.56", "$40").
func parseCell(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" || s == "NULL" || s == "N/A" || s == "n/a" {
		return Missing
	}
	if f, ok := parseNumeric(s); ok {
		return Number(f)
	}
	return TextValue(s)
}

func parseNumeric(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "£")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
