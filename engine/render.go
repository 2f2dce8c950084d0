package engine

import (
	"fmt"
	"log"
	"sync"

	"github.com/plotkit-org/plotkit/schema"
)

// ============================================================================
// RENDER DISPATCHER — chart type + dataset + binding → PNG bytes
// ============================================================================
// Pipeline:
//   1. Validate parameters and dataset shape
//   2. Look up the chart type descriptor
//   3. Re-validate the binding against this dataset snapshot
//      (callers may hand-craft bindings that bypassed the matcher)
//   4. Dispatch to the descriptor's draw strategy under the draw lock
//   5. Convert every drawing/aggregation fault into a RenderError
//
// Renders are serialized: the drawing backend is not assumed safe for
// concurrent use. A failed render never returns partial bytes.
// ============================================================================

// drawMu confines drawing to one render at a time.
var drawMu sync.Mutex

// renderContext carries one render's resolved inputs to a draw strategy.
type renderContext struct {
	desc    *descriptor
	ds      *schema.Dataset
	binding Binding
	cfg     *renderConfig
}

// Render produces PNG bytes for a chart type over a dataset with the
// given role binding. Errors are one of the kinds in errors.go.
func Render(chartType string, ds *schema.Dataset, binding Binding, opts ...Option) (out []byte, err error) {
	if chartType == "" {
		return nil, &ValidationError{Msg: "chart type is required"}
	}
	if ds == nil {
		return nil, &ValidationError{Msg: "dataset is required"}
	}
	if verr := ds.Validate(); verr != nil {
		return nil, &ValidationError{Msg: verr.Error()}
	}

	desc, ok := lookup(chartType)
	if !ok {
		return nil, &UnknownChartTypeError{ID: chartType}
	}

	if err := validateBinding(desc, ds, binding); err != nil {
		return nil, err
	}

	rc := &renderContext{desc: desc, ds: ds, binding: binding, cfg: applyOptions(opts)}

	drawMu.Lock()
	defer drawMu.Unlock()

	// The drawing backend may fault on degenerate input; recover at the
	// dispatcher boundary so callers always see a structured error.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("plotkit: recovered render fault: chart=%s: %v", chartType, r)
			out = nil
			err = renderErrf(chartType, "draw", "drawing backend fault: %v", r)
		}
	}()

	out, err = desc.draw(rc)
	if err != nil {
		if _, ok := err.(*RenderError); !ok {
			err = &RenderError{ChartType: chartType, Stage: "draw", Msg: "drawing failed", Err: err}
		}
		return nil, err
	}
	return out, nil
}

// validateBinding checks that every role the chart type needs is bound
// to a column present in this dataset. IndexColumn is accepted for an
// optional x role (implicit row order); everywhere else a binding must
// name a real column.
func validateBinding(desc *descriptor, ds *schema.Dataset, binding Binding) error {
	for _, role := range desc.spec.Roles {
		col := binding.roleColumn(role.Name)
		if col == "" {
			if role.Optional {
				continue
			}
			return &ValidationError{Msg: fmt.Sprintf(
				"%s chart requires a column bound to role %q", desc.spec.ID, role.Name)}
		}
		if col == IndexColumn && role.Name == RoleX && role.Optional {
			continue
		}
		if _, ok := ds.Column(col); !ok {
			return &ColumnNotFoundError{Column: col}
		}
	}
	return nil
}

// ============================================================================
// ROLE EXTRACTION
// ============================================================================

// numericRole extracts a numeric role's values with a per-row missing
// mask. A text value in a numeric role is an extraction failure — the
// column may have been typed numeric by inference but carry an injected
// bad value, or the caller overrode the binding.
func (rc *renderContext) numericRole(role string) ([]float64, []bool, error) {
	name := rc.binding.roleColumn(role)
	series, _ := rc.ds.Column(name)
	values := make([]float64, len(series.Values))
	missing := make([]bool, len(series.Values))
	for i, v := range series.Values {
		switch v.Kind {
		case schema.KindNumber:
			values[i] = v.Num
		case schema.KindMissing:
			missing[i] = true
		default:
			return nil, nil, renderErrf(rc.desc.spec.ID, "extract",
				"column %q contains non-numeric value %q at row %d", name, v.Text, i)
		}
	}
	return values, missing, nil
}

// labelRole extracts a categorical role's per-row labels. Missing cells
// yield an empty label, which aggregation and pairing treat as absent.
func (rc *renderContext) labelRole(role string) []string {
	name := rc.binding.roleColumn(role)
	series, _ := rc.ds.Column(name)
	labels := make([]string, len(series.Values))
	for i, v := range series.Values {
		labels[i] = v.Label()
	}
	return labels
}

// hasRole reports whether the binding names a real column for the role.
func (rc *renderContext) hasRole(role string) bool {
	col := rc.binding.roleColumn(role)
	return col != "" && col != IndexColumn
}
