package translator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/plotkit-org/plotkit/engine"
)

// ============================================================================
// RESPONSE PARSER — Extracts structured answers from AI responses
// ============================================================================
// Responses are validated against the engine registry: a chart id the
// renderer cannot draw is rejected even when the JSON is well-formed.
// ============================================================================

// stripFences removes markdown code fences models sometimes wrap JSON in.
func stripFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// parseSuggestion extracts a Suggestion from the AI's JSON response.
func parseSuggestion(response string) (*Suggestion, error) {
	response = stripFences(response)

	var s Suggestion
	if err := json.Unmarshal([]byte(response), &s); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion response: %w (response: %.200s)", err, response)
	}
	if err := validateChartType(s.ChartType); err != nil {
		return nil, err
	}
	if s.Confidence <= 0 {
		s.Confidence = 50
	}
	return &s, nil
}

// parseImageAnalysis extracts an ImageAnalysis and fills in the R
// reconstruction code for the recognized type.
func parseImageAnalysis(response string) (*ImageAnalysis, error) {
	response = stripFences(response)

	var a ImageAnalysis
	if err := json.Unmarshal([]byte(response), &a); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w (response: %.200s)", err, response)
	}
	if err := validateChartType(a.ChartType); err != nil {
		return nil, err
	}
	if a.Confidence <= 0 {
		a.Confidence = 50
	}
	a.RCode = RCode(a.ChartType)
	return &a, nil
}

// validateChartType rejects ids outside the renderer's registry.
func validateChartType(id string) error {
	for _, spec := range engine.ChartTypes() {
		if spec.ID == id {
			return nil
		}
	}
	return fmt.Errorf("model answered with unsupported chart type %q", id)
}
