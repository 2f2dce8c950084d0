package translator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotkit-org/plotkit/engine"
	"github.com/plotkit-org/plotkit/schema"
)

// ============================================================================
// PLACEHOLDER + R CODE TESTS
// ============================================================================

func TestPlaceholderSuggestPicksCompatibleChart(t *testing.T) {
	columns := []schema.Column{
		{Name: "Region", Type: schema.Categorical},
		{Name: "Sales", Type: schema.Numeric},
	}
	s, err := NewPlaceholder().SuggestChart(context.Background(), "whatever", columns)
	require.NoError(t, err)

	// First registry entry compatible with (categorical, numeric) is bar.
	assert.Equal(t, "bar", s.ChartType)
	assert.True(t, engine.Match(s.ChartType, columns).Compatible)
}

func TestPlaceholderSuggestNoFit(t *testing.T) {
	_, err := NewPlaceholder().SuggestChart(context.Background(), "anything", nil)
	require.Error(t, err)
}

func TestPlaceholderAnalyzeImage(t *testing.T) {
	a, err := NewPlaceholder().AnalyzeImage(context.Background(), []byte{0x89}, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "bar", a.ChartType)
	assert.Equal(t, 92.0, a.Confidence)
	assert.Contains(t, a.RCode, "geom_bar")
}

func TestRCodeCoversRegistry(t *testing.T) {
	for _, spec := range engine.ChartTypes() {
		code := RCode(spec.ID)
		assert.Contains(t, code, "library(ggplot2)", "chart %s has no R template", spec.ID)
	}
}

func TestRCodeUnknownChart(t *testing.T) {
	assert.Contains(t, RCode("gauge"), "not recognized")
}

func TestBuildSuggestPromptMentionsVocabularyAndColumns(t *testing.T) {
	columns := []schema.Column{
		{Name: "Region", Type: schema.Categorical, Samples: []string{"North"}},
	}
	prompt := BuildSuggestPrompt("sales by region", columns)

	for _, spec := range engine.ChartTypes() {
		assert.Contains(t, prompt, "\""+spec.ID+"\"")
	}
	assert.Contains(t, prompt, "Region")
	assert.Contains(t, prompt, "North")
	assert.Contains(t, prompt, "sales by region")
}
