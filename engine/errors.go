package engine

import "fmt"

// ============================================================================
// ERROR KINDS — Structured results, never uncaught faults
// ============================================================================
// Matcher verdicts are a normal branch of the decision, not errors; the
// types here cover the render path and parameter validation. Callers
// dispatch with errors.As.
// ============================================================================

// ValidationError reports a missing required parameter or a structurally
// malformed dataset (e.g. column-length mismatch).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UnknownChartTypeError reports a chart type id absent from the registry.
type UnknownChartTypeError struct {
	ID string
}

func (e *UnknownChartTypeError) Error() string {
	return fmt.Sprintf("unknown chart type %q", e.ID)
}

// IncompatibleDatasetError reports that the dataset cannot structurally
// satisfy the requested chart type. Carries the matcher's reason and the
// (possibly partial) suggested binding.
type IncompatibleDatasetError struct {
	ChartType string
	Reason    string
	Suggested Binding
}

func (e *IncompatibleDatasetError) Error() string {
	return fmt.Sprintf("dataset incompatible with %s: %s", e.ChartType, e.Reason)
}

// ColumnNotFoundError reports a binding naming a column absent from the
// dataset.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in dataset", e.Column)
}

// RenderError reports a drawing or aggregation failure after
// compatibility passed: an aggregation collapsing to zero rows, a value
// expected numeric that was not, or a fault inside the drawing backend.
// Partial artifacts are never returned alongside a RenderError.
type RenderError struct {
	ChartType string
	Stage     string // "extract", "data", "aggregate", "draw", "encode"
	Msg       string
	Err       error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render %s failed at %s: %s: %v", e.ChartType, e.Stage, e.Msg, e.Err)
	}
	return fmt.Sprintf("render %s failed at %s: %s", e.ChartType, e.Stage, e.Msg)
}

func (e *RenderError) Unwrap() error { return e.Err }

func renderErrf(chartType, stage, format string, args ...any) *RenderError {
	return &RenderError{ChartType: chartType, Stage: stage, Msg: fmt.Sprintf(format, args...)}
}
