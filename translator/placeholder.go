package translator

import (
	"context"
	"fmt"
	"log"

	"github.com/plotkit-org/plotkit/engine"
	"github.com/plotkit-org/plotkit/schema"
)

// ============================================================================
// PLACEHOLDER TRANSLATOR — Deterministic fallback when no API key is set
// ============================================================================
// Keeps the whole pipeline usable offline: suggestions come from the
// compatibility matcher instead of a model, and image analysis returns
// a canned bar-chart answer. Responses are shaped exactly like Gemini's
// so handlers never branch on the implementation.
// ============================================================================

// Placeholder implements Translator without any external service.
type Placeholder struct{}

// NewPlaceholder creates the no-API-key translator.
func NewPlaceholder() *Placeholder {
	log.Printf("⚠️ PlotKit Translator: no API key configured, using placeholder mode")
	return &Placeholder{}
}

// SuggestChart returns the first registry chart type compatible with
// the columns, in registry order.
func (p *Placeholder) SuggestChart(_ context.Context, _ string, columns []schema.Column) (*Suggestion, error) {
	for _, spec := range engine.ChartTypes() {
		result := engine.Match(spec.ID, columns)
		if !result.Compatible {
			continue
		}
		return &Suggestion{
			ChartType:  spec.ID,
			Rationale:  fmt.Sprintf("placeholder suggestion: %s", result.Reason),
			Confidence: 75,
		}, nil
	}
	return nil, fmt.Errorf("no chart type is compatible with the dataset columns")
}

// AnalyzeImage returns a canned bar-chart recognition.
func (p *Placeholder) AnalyzeImage(_ context.Context, _ []byte, _ string) (*ImageAnalysis, error) {
	return &ImageAnalysis{
		ChartType:  "bar",
		Confidence: 92,
		Features:   []string{"placeholder analysis", "vertical rectangles", "category axis"},
		RCode:      RCode("bar"),
	}, nil
}
