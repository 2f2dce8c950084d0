package schema

// ============================================================================
// COLUMN TYPE INFERENCE — Heuristic numeric/categorical classification
// ============================================================================
// Classification per column:
//   1. Any non-numeric present value → CATEGORICAL, unconditionally.
//   2. All present values numeric → check cardinality:
//      unique_ratio < 0.05 AND distinct < 10 → CATEGORICAL
//      (a low-cardinality numeric-looking code, e.g. a class id),
//      otherwise NUMERIC.
//   3. No present values at all → CATEGORICAL. The ratio is undefined on
//      an empty column, and a column we know nothing about is only safe
//      to use for grouping, never for arithmetic.
//
// Pure functions, deterministic, no side effects.
// ============================================================================

// ColumnType is the inferred kind of a column.
type ColumnType string

const (
	Numeric     ColumnType = "numeric"
	Categorical ColumnType = "categorical"
)

// Cardinality thresholds below which an all-numeric column is treated
// as a coded categorical rather than a measure.
const (
	categoricalUniqueRatio = 0.05
	categoricalDistinctMax = 10
)

const maxSamples = 3

// Column is derived per-column metadata: name, inferred type, and up to
// three non-missing sample values. Never persisted.
type Column struct {
	Name    string     `json:"name"`
	Type    ColumnType `json:"type"`
	Samples []string   `json:"samples,omitempty"`
}

// InferType classifies a single column's values.
func InferType(values []Value) ColumnType {
	present := 0
	distinct := make(map[float64]bool)

	for _, v := range values {
		switch v.Kind {
		case KindMissing:
			continue
		case KindText:
			return Categorical
		case KindNumber:
			present++
			distinct[v.Num] = true
		}
	}

	if present == 0 {
		return Categorical
	}

	uniqueRatio := float64(len(distinct)) / float64(present)
	if uniqueRatio < categoricalUniqueRatio && len(distinct) < categoricalDistinctMax {
		return Categorical
	}
	return Numeric
}

// Infer derives column metadata for every column of a dataset,
// preserving dataset column order.
func Infer(d *Dataset) []Column {
	columns := make([]Column, 0, len(d.Series))
	for _, s := range d.Series {
		columns = append(columns, Column{
			Name:    s.Name,
			Type:    InferType(s.Values),
			Samples: collectSamples(s.Values, maxSamples),
		})
	}
	return columns
}

// collectSamples picks the first max non-missing values in row order.
func collectSamples(values []Value, max int) []string {
	var samples []string
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		samples = append(samples, v.Label())
		if len(samples) == max {
			break
		}
	}
	return samples
}
