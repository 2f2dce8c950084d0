package translator

import (
	"context"

	"github.com/plotkit-org/plotkit/schema"
)

// ============================================================================
// TRANSLATOR — AI boundary for chart suggestion and image analysis
// ============================================================================
// The Translator is the ONLY component that calls an external AI service.
// For suggestions it receives column metadata + the user's description,
// never raw rows. For image analysis it receives the uploaded chart
// image and returns the recognized chart type plus reconstruction code.
// ============================================================================

// Translator maps natural language and chart images onto the chart
// vocabulary of the engine registry.
// Implementations: Gemini (live), Placeholder (no API key configured).
type Translator interface {
	// SuggestChart picks the chart type best suited to the user's
	// description of what they want to see, constrained to the columns
	// available in the dataset.
	SuggestChart(ctx context.Context, query string, columns []schema.Column) (*Suggestion, error)

	// AnalyzeImage recognizes the chart type in an uploaded image and
	// returns reconstruction details for it.
	AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*ImageAnalysis, error)
}

// Suggestion is a chart-type recommendation for a dataset.
type Suggestion struct {
	ChartType  string  `json:"chartType"`
	Rationale  string  `json:"rationale"`
	Confidence float64 `json:"confidence"` // 0..100
}

// ImageAnalysis describes a chart recognized in an uploaded image.
type ImageAnalysis struct {
	ChartType  string   `json:"chartType"`
	Confidence float64  `json:"confidence"` // 0..100
	Features   []string `json:"features"`
	RCode      string   `json:"rCode"`
}

// Config holds translator configuration.
type Config struct {
	APIKey string // Gemini API key (empty = placeholder mode)
	Model  string // Model name (e.g., "gemini-2.0-flash")
}

// DefaultGeminiConfig returns a Config with sensible Gemini defaults.
func DefaultGeminiConfig(apiKey string) Config {
	return Config{
		APIKey: apiKey,
		Model:  "gemini-2.0-flash",
	}
}
