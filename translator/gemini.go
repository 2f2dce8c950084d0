package translator

import (
	"context"
	"fmt"
	"log"

	genai "google.golang.org/genai"

	"github.com/plotkit-org/plotkit/schema"
)

// ============================================================================
// GEMINI TRANSLATOR — Calls Google Gemini for suggestion + vision
// ============================================================================
// This is the ONLY file that makes external API calls. Suggestions are
// text-only; image analysis attaches the upload as an inline blob and
// uses the same JSON-constrained response path.
// ============================================================================

// GeminiTranslator implements Translator using the official genai client.
type GeminiTranslator struct {
	config Config
	cli    *genai.Client
}

// NewGemini creates a new Gemini translator.
func NewGemini(ctx context.Context, cfg Config) (*GeminiTranslator, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client init: %w", err)
	}
	return &GeminiTranslator{config: cfg, cli: cli}, nil
}

// SuggestChart picks a chart type for the user's description.
func (g *GeminiTranslator) SuggestChart(ctx context.Context, query string, columns []schema.Column) (*Suggestion, error) {
	prompt := BuildSuggestPrompt(query, columns)

	log.Printf("🔄 PlotKit Translator: suggest query=\"%s\" columns=%d", truncate(query, 80), len(columns))

	response, err := g.generate(ctx, []*genai.Part{{Text: prompt}})
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	suggestion, err := parseSuggestion(response)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ PlotKit Translator: suggested=%s confidence=%.0f", suggestion.ChartType, suggestion.Confidence)
	return suggestion, nil
}

// AnalyzeImage recognizes the chart type in an uploaded image.
func (g *GeminiTranslator) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*ImageAnalysis, error) {
	log.Printf("🔄 PlotKit Translator: analyze image=%d bytes mime=%s", len(image), mimeType)

	parts := []*genai.Part{
		{Text: BuildAnalyzePrompt()},
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
	}
	response, err := g.generate(ctx, parts)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	analysis, err := parseImageAnalysis(response)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ PlotKit Translator: recognized=%s confidence=%.0f", analysis.ChartType, analysis.Confidence)
	return analysis, nil
}

// generate sends parts to Gemini and returns the first candidate's text.
func (g *GeminiTranslator) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.config.Model,
		[]*genai.Content{{Parts: parts}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned empty response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
