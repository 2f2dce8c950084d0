package translator

import (
	"fmt"
	"strings"

	"github.com/plotkit-org/plotkit/engine"
	"github.com/plotkit-org/plotkit/schema"
)

// ============================================================================
// PROMPT BUILDER — Registry-Driven AI Prompt Generation
// ============================================================================
// Prompts are generated from the engine's chart registry and the
// dataset's inferred columns, so the model can only answer inside the
// vocabulary the renderer actually supports. Total data sent to the AI:
// column names, types, and up to three sample values per column. Never
// raw rows.
// ============================================================================

// BuildSuggestPrompt generates the prompt for chart-type suggestion.
func BuildSuggestPrompt(query string, columns []schema.Column) string {
	var b strings.Builder

	b.WriteString(`You are a chart advisor for PlotKit, a chart rendering engine.

YOUR ROLE:
Pick the single chart type best suited to the user's request, given the
columns available. You choose a chart type ONLY — the engine binds
columns and renders locally.

`)

	b.WriteString("AVAILABLE CHART TYPES (answer with one of these ids):\n")
	b.WriteString(buildChartVocabulary())
	b.WriteString("\n")

	b.WriteString("DATASET COLUMNS:\n")
	b.WriteString(buildColumnDescription(columns))
	b.WriteString("\n")

	b.WriteString(`RESPONSE FORMAT (ALWAYS valid JSON, no markdown):
{
  "chartType": "one chart id from the list above",
  "rationale": "one sentence explaining the fit",
  "confidence": 85
}

`)

	b.WriteString("USER REQUEST: " + query + "\n\nRespond with valid JSON only:")
	return b.String()
}

// BuildAnalyzePrompt generates the prompt for chart-image recognition.
func BuildAnalyzePrompt() string {
	var b strings.Builder

	b.WriteString(`You are a chart recognizer for PlotKit, a chart rendering engine.

YOUR ROLE:
Identify the chart type shown in the attached image and list the visual
features that identify it (axes, bars, slices, gradients, whiskers).

`)

	b.WriteString("KNOWN CHART TYPES (answer with one of these ids):\n")
	b.WriteString(buildChartVocabulary())
	b.WriteString("\n")

	b.WriteString(`RESPONSE FORMAT (ALWAYS valid JSON, no markdown):
{
  "chartType": "one chart id from the list above",
  "confidence": 90,
  "features": ["feature 1", "feature 2"]
}

Respond with valid JSON only:`)
	return b.String()
}

// ============================================================================
// SECTION BUILDERS
// ============================================================================

func buildChartVocabulary() string {
	var b strings.Builder
	for _, spec := range engine.ChartTypes() {
		var roles []string
		for _, r := range spec.Roles {
			desc := fmt.Sprintf("%s: %s", r.Name, r.Type)
			if r.Optional {
				desc += " (optional)"
			}
			roles = append(roles, desc)
		}
		b.WriteString(fmt.Sprintf("- \"%s\" (%s) — needs [%s]\n", spec.ID, spec.Label, strings.Join(roles, ", ")))
	}
	return b.String()
}

func buildColumnDescription(columns []schema.Column) string {
	var b strings.Builder
	for _, c := range columns {
		b.WriteString(fmt.Sprintf("- \"%s\" [%s]", c.Name, c.Type))
		if len(c.Samples) > 0 {
			b.WriteString(fmt.Sprintf(" — samples: [%s]", strings.Join(quotedValues(c.Samples), ", ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ============================================================================
// HELPERS
// ============================================================================

func quotedValues(vals []string) []string {
	quoted := make([]string, len(vals))
	for i, v := range vals {
		quoted[i] = fmt.Sprintf("\"%s\"", v)
	}
	return quoted
}
