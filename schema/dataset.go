package schema

import (
	"fmt"
	"strconv"
)

// ============================================================================
// DATASET — Ordered named columns of tagged scalar values
// ============================================================================
// A Dataset is owned by the caller for the duration of a request. The
// engine only reads it; nothing in plotkit mutates a Dataset after
// construction. Every column shares one row count — Validate enforces it.
// ============================================================================

// ValueKind tags a scalar cell.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindNumber
	KindText
)

// Value is a single cell: a number, a text label, or missing.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
}

// Number creates a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// TextValue creates a text value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// Missing is the absent-cell value.
var Missing = Value{}

// IsMissing reports whether the cell is absent.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// Label renders the value for axis/grouping display.
// Numbers use the shortest round-trip form; missing renders empty.
func (v Value) Label() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// Series is one named column of values in dataset order.
type Series struct {
	Name   string  `json:"name"`
	Values []Value `json:"-"`
}

// Dataset is an ordered sequence of named columns with a shared row count.
type Dataset struct {
	Name   string   `json:"name"`
	Series []Series `json:"series"`
}

// Rows returns the shared row count (0 for an empty dataset).
func (d *Dataset) Rows() int {
	if len(d.Series) == 0 {
		return 0
	}
	return len(d.Series[0].Values)
}

// Column returns the series with the given name, if present.
func (d *Dataset) Column(name string) (*Series, bool) {
	for i := range d.Series {
		if d.Series[i].Name == name {
			return &d.Series[i], true
		}
	}
	return nil, false
}

// ColumnNames returns all column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Series))
	for i, s := range d.Series {
		names[i] = s.Name
	}
	return names
}

// Validate checks structural well-formedness: at least one column,
// unique column names, and one row count shared across columns.
func (d *Dataset) Validate() error {
	if len(d.Series) == 0 {
		return fmt.Errorf("dataset %q has no columns", d.Name)
	}
	seen := make(map[string]bool, len(d.Series))
	rows := len(d.Series[0].Values)
	for _, s := range d.Series {
		if s.Name == "" {
			return fmt.Errorf("dataset %q has an unnamed column", d.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("dataset %q has duplicate column %q", d.Name, s.Name)
		}
		seen[s.Name] = true
		if len(s.Values) != rows {
			return fmt.Errorf("column %q has %d rows, expected %d", s.Name, len(s.Values), rows)
		}
	}
	return nil
}
