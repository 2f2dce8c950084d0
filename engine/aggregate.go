package engine

// ============================================================================
// AGGREGATION — Group-by reductions applied before drawing
// ============================================================================
// Deterministic reductions for the chart types that imply one:
//   pie         → group by x, sum y          (wedge order = emergence order)
//   heatmap     → 2-D table (x,y), mean      (absent combination = blank cell)
//   stacked_bar → 2-D table (x,group), sum   (stack order = emergence order)
// Group keys keep first-appearance order — no sorting, so output follows
// the dataset's row order.
// ============================================================================

// GroupTotal is one aggregated group: its label, reduced value, and the
// number of rows that contributed.
type GroupTotal struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// groupSum groups parallel (label, value) rows by label and sums values
// per group, preserving label emergence order. Inputs must be equal
// length; rows with an empty label are dropped.
func groupSum(labels []string, values []float64) []GroupTotal {
	index := make(map[string]int)
	var totals []GroupTotal

	for i, label := range labels {
		if label == "" {
			continue
		}
		at, seen := index[label]
		if !seen {
			at = len(totals)
			index[label] = at
			totals = append(totals, GroupTotal{Label: label})
		}
		totals[at].Value += values[i]
		totals[at].Count++
	}
	return totals
}

// groupValues collects the raw values of each group in emergence order
// (boxplot/violin input). An empty group label buckets under "all".
func groupValues(labels []string, values []float64) ([]string, [][]float64) {
	index := make(map[string]int)
	var order []string
	var grouped [][]float64

	for i, label := range labels {
		if label == "" {
			label = "all"
		}
		at, seen := index[label]
		if !seen {
			at = len(order)
			index[label] = at
			order = append(order, label)
			grouped = append(grouped, nil)
		}
		grouped[at] = append(grouped[at], values[i])
	}
	return order, grouped
}

// pivotCell accumulates one (x, y) combination.
type pivotCell struct {
	sum   float64
	count int
}

// pivotTable is a 2-D aggregation keyed by two categorical roles.
// Key order is emergence order along each axis. Combinations never seen
// in the data stay absent — lookups report presence explicitly so blank
// cells are distinguishable from zero.
type pivotTable struct {
	XKeys []string
	YKeys []string
	cells map[[2]string]*pivotCell
}

// pivot2D builds a pivot table from parallel (x, y, value) rows.
// Rows with an empty x or y label are dropped.
func pivot2D(xs, ys []string, values []float64) *pivotTable {
	p := &pivotTable{cells: make(map[[2]string]*pivotCell)}
	xSeen := make(map[string]bool)
	ySeen := make(map[string]bool)

	for i := range xs {
		x, y := xs[i], ys[i]
		if x == "" || y == "" {
			continue
		}
		if !xSeen[x] {
			xSeen[x] = true
			p.XKeys = append(p.XKeys, x)
		}
		if !ySeen[y] {
			ySeen[y] = true
			p.YKeys = append(p.YKeys, y)
		}
		key := [2]string{x, y}
		cell := p.cells[key]
		if cell == nil {
			cell = &pivotCell{}
			p.cells[key] = cell
		}
		cell.sum += values[i]
		cell.count++
	}
	return p
}

// Sum returns the cell total for (x, y) and whether the combination
// appeared in the data.
func (p *pivotTable) Sum(x, y string) (float64, bool) {
	cell, ok := p.cells[[2]string{x, y}]
	if !ok {
		return 0, false
	}
	return cell.sum, true
}

// Mean returns the cell mean for (x, y) and whether the combination
// appeared in the data.
func (p *pivotTable) Mean(x, y string) (float64, bool) {
	cell, ok := p.cells[[2]string{x, y}]
	if !ok || cell.count == 0 {
		return 0, false
	}
	return cell.sum / float64(cell.count), true
}

// Empty reports whether the table holds no cells at all.
func (p *pivotTable) Empty() bool { return len(p.cells) == 0 }
