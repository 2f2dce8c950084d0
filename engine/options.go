package engine

import "github.com/wcharczuk/go-chart/v2/drawing"

// ============================================================================
// RENDER OPTIONS — Functional options for Render()
// ============================================================================

// Option configures rendering via the functional options pattern.
type Option func(*renderConfig)

type renderConfig struct {
	WidthUnits  float64 // figure width in inches
	HeightUnits float64
	DPI         float64
	Title       string
	Palette     []drawing.Color
}

// Default surface: 10×6 units at 100 DPI → 1000×600 px.
const (
	defaultWidthUnits  = 10.0
	defaultHeightUnits = 6.0
	defaultDPI         = 100.0
)

// defaultPalette is the series/wedge color cycle.
var defaultPalette = []drawing.Color{
	{R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF},
	{R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
	{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
	{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF},
	{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
	{R: 0x06, G: 0xB6, B: 0xD4, A: 0xFF},
	{R: 0xEC, G: 0x48, B: 0x99, A: 0xFF},
	{R: 0x84, G: 0xCC, B: 0x16, A: 0xFF},
	{R: 0xF9, G: 0x73, B: 0x16, A: 0xFF},
	{R: 0x63, G: 0x66, B: 0xF1, A: 0xFF},
}

// WithSize sets the figure size in units (inches). Non-positive values
// are ignored.
func WithSize(width, height float64) Option {
	return func(c *renderConfig) {
		if width > 0 {
			c.WidthUnits = width
		}
		if height > 0 {
			c.HeightUnits = height
		}
	}
}

// WithDPI sets the raster density.
func WithDPI(dpi float64) Option {
	return func(c *renderConfig) {
		if dpi > 0 {
			c.DPI = dpi
		}
	}
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(c *renderConfig) { c.Title = title }
}

// WithPalette overrides the series color cycle.
func WithPalette(colors []drawing.Color) Option {
	return func(c *renderConfig) {
		if len(colors) > 0 {
			c.Palette = colors
		}
	}
}

func applyOptions(opts []Option) *renderConfig {
	cfg := &renderConfig{
		WidthUnits:  defaultWidthUnits,
		HeightUnits: defaultHeightUnits,
		DPI:         defaultDPI,
		Palette:     defaultPalette,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// widthPx and heightPx convert the unit size to pixels at the configured
// density.
func (c *renderConfig) widthPx() int  { return int(c.WidthUnits * c.DPI) }
func (c *renderConfig) heightPx() int { return int(c.HeightUnits * c.DPI) }

func (c *renderConfig) color(i int) drawing.Color {
	return c.Palette[i%len(c.Palette)]
}
