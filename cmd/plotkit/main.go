package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/plotkit-org/plotkit/engine"
	"github.com/plotkit-org/plotkit/schema"
	"github.com/plotkit-org/plotkit/translator"
)

// ============================================================================
// PLOTKIT CLI — CSV in, chart PNG out
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", "", "Path to CSV data file (required)")
	chartType := flag.String("chart", "", "Chart type to render (see --list)")
	outFile := flag.String("out", "chart.png", "Output PNG path")
	describe := flag.Bool("describe", false, "Print inferred column types and exit")
	list := flag.Bool("list", false, "Print supported chart types and exit")
	suggest := flag.String("suggest", "", "Describe the chart you want; AI picks the type")
	xCol := flag.String("x", "", "Column for the x role (overrides auto-binding)")
	yCol := flag.String("y", "", "Column for the y role (overrides auto-binding)")
	groupCol := flag.String("group", "", "Column for the group role (overrides auto-binding)")
	title := flag.String("title", "", "Chart title")
	width := flag.Float64("width", 10, "Chart width in plot units")
	height := flag.Float64("height", 6, "Chart height in plot units")
	model := flag.String("model", "gemini-2.0-flash", "Gemini model name (for --suggest)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `PlotKit — CSV in, chart PNG out

Usage:
  plotkit --file data.csv --chart bar --out sales.png
  plotkit --file data.csv --chart heatmap --x Region --y Segment --group Sales
  plotkit --file data.csv --describe
  plotkit --file data.csv --suggest "sales split by region over quarters"

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  GEMINI_API_KEY    Enables AI suggestions for --suggest (placeholder mode without it)
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("plotkit %s\n", version)
		os.Exit(0)
	}

	// ── List mode ─────────────────────────────────────────────────────────
	if *list {
		for _, spec := range engine.ChartTypes() {
			fmt.Printf("%-12s %s\n", spec.ID, spec.Label)
		}
		return
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		flag.Usage()
		os.Exit(1)
	}

	// ── Read and infer ────────────────────────────────────────────────────
	data, err := os.ReadFile(*filePath)
	if err != nil {
		fatalf("Failed to read file: %v", err)
	}
	ds, err := schema.ParseCSV(data, *filePath)
	if err != nil {
		fatalf("Failed to parse CSV: %v", err)
	}
	columns := schema.Infer(ds)
	log.Printf("🔍 Inferred %d columns over %d rows", len(columns), ds.Rows())

	// ── Describe mode ─────────────────────────────────────────────────────
	if *describe {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(columns); err != nil {
			fatalf("Failed to encode columns: %v", err)
		}
		return
	}

	// ── Suggest mode ──────────────────────────────────────────────────────
	if *suggest != "" {
		ctx := context.Background()
		tr := newTranslator(ctx, *model)
		suggestion, err := tr.SuggestChart(ctx, *suggest, columns)
		if err != nil {
			fatalf("Suggestion failed: %v", err)
		}
		log.Printf("💡 Suggested: %s (%.0f%%) — %s",
			suggestion.ChartType, suggestion.Confidence, suggestion.Rationale)
		*chartType = suggestion.ChartType
	}

	if *chartType == "" {
		fmt.Fprintln(os.Stderr, "Error: --chart or --suggest is required")
		flag.Usage()
		os.Exit(1)
	}

	// ── Bind roles ────────────────────────────────────────────────────────
	binding := engine.Binding{X: *xCol, Y: *yCol, Group: *groupCol}
	if binding == (engine.Binding{}) {
		result := engine.Match(*chartType, columns)
		if !result.Compatible {
			fatalf("Dataset incompatible with %s: %s", *chartType, result.Reason)
		}
		binding = result.Suggested
		log.Printf("🧩 Matched: %s (x=%s y=%s group=%s)",
			result.Reason, binding.X, binding.Y, binding.Group)
	}

	// ── Render ────────────────────────────────────────────────────────────
	png, err := engine.Render(*chartType, ds, binding,
		engine.WithTitle(*title),
		engine.WithSize(*width, *height),
	)
	if err != nil {
		fatalf("Render failed: %v", err)
	}
	if err := os.WriteFile(*outFile, png, 0o644); err != nil {
		fatalf("Failed to write output file: %v", err)
	}
	log.Printf("📊 Wrote %s (%d bytes)", *outFile, len(png))
}

// newTranslator prefers Gemini when a key is configured.
func newTranslator(ctx context.Context, model string) translator.Translator {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return translator.NewPlaceholder()
	}
	tr, err := translator.NewGemini(ctx, translator.Config{APIKey: apiKey, Model: model})
	if err != nil {
		log.Printf("⚠️ Gemini init failed, falling back to placeholder: %v", err)
		return translator.NewPlaceholder()
	}
	return tr
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
