package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// PARSER TESTS
// ============================================================================

func TestParseSuggestionPlain(t *testing.T) {
	s, err := parseSuggestion(`{"chartType":"bar","rationale":"categories with totals","confidence":88}`)
	require.NoError(t, err)

	assert.Equal(t, "bar", s.ChartType)
	assert.Equal(t, "categories with totals", s.Rationale)
	assert.Equal(t, 88.0, s.Confidence)
}

func TestParseSuggestionStripsMarkdownFences(t *testing.T) {
	response := "```json\n{\"chartType\":\"heatmap\",\"rationale\":\"two-way comparison\",\"confidence\":70}\n```"
	s, err := parseSuggestion(response)
	require.NoError(t, err)
	assert.Equal(t, "heatmap", s.ChartType)
}

func TestParseSuggestionRejectsUnknownChart(t *testing.T) {
	_, err := parseSuggestion(`{"chartType":"radar","confidence":99}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported chart type")
}

func TestParseSuggestionRejectsBadJSON(t *testing.T) {
	_, err := parseSuggestion("the best chart is a bar chart")
	require.Error(t, err)
}

func TestParseSuggestionDefaultsConfidence(t *testing.T) {
	s, err := parseSuggestion(`{"chartType":"pie"}`)
	require.NoError(t, err)
	assert.Equal(t, 50.0, s.Confidence)
}

func TestParseImageAnalysisFillsRCode(t *testing.T) {
	a, err := parseImageAnalysis(`{"chartType":"violin","confidence":81,"features":["mirrored density"]}`)
	require.NoError(t, err)

	assert.Equal(t, "violin", a.ChartType)
	assert.Equal(t, []string{"mirrored density"}, a.Features)
	assert.Contains(t, a.RCode, "geom_violin")
}

func TestParseImageAnalysisRejectsUnknownChart(t *testing.T) {
	_, err := parseImageAnalysis(`{"chartType":"gauge","confidence":95}`)
	require.Error(t, err)
}
