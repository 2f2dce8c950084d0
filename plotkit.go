// Package plotkit turns tabular datasets into rendered charts.
//
// Usage:
//
//	import (
//	    "github.com/plotkit-org/plotkit/engine"
//	    "github.com/plotkit-org/plotkit/schema"
//	)
//
//	ds, _ := schema.ParseCSV(raw, "sales")
//	columns := schema.Infer(ds)
//	result := engine.Match("bar", columns)
//	if result.Compatible {
//	    png, _ := engine.Render("bar", ds, result.Suggested)
//	}
//
// The schema package classifies columns as numeric or categorical; the
// engine decides whether a dataset can satisfy a chart type's role
// requirements, suggests column bindings, and renders PNG bytes.
//
// AI-assisted chart suggestion is handled separately by the translator
// package. The engine never calls any external service — all computation
// is local.
package plotkit
