package engine

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ============================================================================
// DRAW STRATEGIES — go-chart backed chart types
// ============================================================================
// Each strategy extracts its bound roles, drops rows it cannot plot
// (missing cells, empty labels), aggregates where the chart type calls
// for it, and hands the result to go-chart. The hand-drawn grid charts
// (heatmap, boxplot, violin) live in draw_grid.go.
// ============================================================================

func (rc *renderContext) title() string {
	if rc.cfg.Title != "" {
		return rc.cfg.Title
	}
	return rc.desc.spec.Label
}

// encodePNG renders any go-chart renderable into PNG bytes.
func (rc *renderContext) encodePNG(ch interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}) ([]byte, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, renderErrf(rc.desc.spec.ID, "encode", "png encode failed: %v", err)
	}
	return buf.Bytes(), nil
}

// ----------------------------------------------------------------------------
// bar
// ----------------------------------------------------------------------------

func drawBar(rc *renderContext) ([]byte, error) {
	labels := rc.labelRole(RoleX)
	ys, missing, err := rc.numericRole(RoleY)
	if err != nil {
		return nil, err
	}
	var bars []chart.Value
	for i := range ys {
		if labels[i] == "" || missing[i] {
			continue
		}
		c := rc.cfg.color(len(bars))
		bars = append(bars, chart.Value{
			Label: labels[i],
			Value: ys[i],
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}
	if len(bars) == 0 {
		return nil, renderErrf(rc.desc.spec.ID, "data", "no drawable rows")
	}
	ch := chart.BarChart{
		Title:      rc.title(),
		Width:      rc.cfg.widthPx(),
		Height:     rc.cfg.heightPx(),
		BarWidth:   barWidth(rc.cfg.widthPx(), len(bars)),
		BarSpacing: 15,
		Bars:       bars,
	}
	return rc.encodePNG(&ch)
}

// barWidth spreads bars across roughly 80% of the canvas.
func barWidth(canvasPx, n int) int {
	w := canvasPx * 4 / (5 * (n + 1))
	if w < 8 {
		w = 8
	}
	return w
}

// ----------------------------------------------------------------------------
// line / area
// ----------------------------------------------------------------------------

func drawLine(rc *renderContext) ([]byte, error) {
	return drawLineSeries(rc, false)
}

func drawArea(rc *renderContext) ([]byte, error) {
	return drawLineSeries(rc, true)
}

func drawLineSeries(rc *renderContext, filled bool) ([]byte, error) {
	ys, missing, err := rc.numericRole(RoleY)
	if err != nil {
		return nil, err
	}

	var labels []string
	if rc.hasRole(RoleX) {
		labels = rc.labelRole(RoleX)
	}

	var xs, kept []float64
	var ticks []chart.Tick
	for i := range ys {
		if missing[i] {
			continue
		}
		if labels != nil && labels[i] == "" {
			continue
		}
		pos := float64(len(kept))
		xs = append(xs, pos)
		kept = append(kept, ys[i])
		if labels != nil {
			ticks = append(ticks, chart.Tick{Value: pos, Label: labels[i]})
		}
	}
	if len(kept) == 0 {
		return nil, renderErrf(rc.desc.spec.ID, "data", "no drawable rows")
	}

	c := rc.cfg.color(0)
	style := chart.Style{StrokeColor: c, StrokeWidth: 2.0}
	if filled {
		style.FillColor = drawing.Color{R: c.R, G: c.G, B: c.B, A: 100}
	}

	ch := chart.Chart{
		Title:  rc.title(),
		Width:  rc.cfg.widthPx(),
		Height: rc.cfg.heightPx(),
		XAxis:  chart.XAxis{Ticks: ticks},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: kept, Style: style},
		},
	}
	return rc.encodePNG(&ch)
}

// ----------------------------------------------------------------------------
// scatter
// ----------------------------------------------------------------------------

func drawScatter(rc *renderContext) ([]byte, error) {
	xs, mx, err := rc.numericRole(RoleX)
	if err != nil {
		return nil, err
	}
	ys, my, err := rc.numericRole(RoleY)
	if err != nil {
		return nil, err
	}
	var px, py []float64
	for i := range xs {
		if mx[i] || my[i] {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	if len(px) == 0 {
		return nil, renderErrf(rc.desc.spec.ID, "data", "no drawable rows")
	}
	c := rc.cfg.color(0)
	ch := chart.Chart{
		Title:  rc.title(),
		Width:  rc.cfg.widthPx(),
		Height: rc.cfg.heightPx(),
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: px,
				YValues: py,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    c,
				},
			},
		},
	}
	return rc.encodePNG(&ch)
}

// ----------------------------------------------------------------------------
// histogram
// ----------------------------------------------------------------------------

const histogramBins = 10

func drawHistogram(rc *renderContext) ([]byte, error) {
	xs, missing, err := rc.numericRole(RoleX)
	if err != nil {
		return nil, err
	}
	var data []float64
	for i := range xs {
		if !missing[i] {
			data = append(data, xs[i])
		}
	}
	if len(data) == 0 {
		return nil, renderErrf(rc.desc.spec.ID, "data", "no drawable rows")
	}

	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	bins := histogramBins
	if hi == lo {
		bins = 1
	}
	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range data {
		idx := bins - 1
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= bins {
				idx = bins - 1
			}
		}
		counts[idx]++
	}

	c := rc.cfg.color(0)
	bars := make([]chart.Value, bins)
	for i, n := range counts {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%.4g", lo+width*float64(i)),
			Value: float64(n),
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
	}
	ch := chart.BarChart{
		Title:      rc.title(),
		Width:      rc.cfg.widthPx(),
		Height:     rc.cfg.heightPx(),
		BarWidth:   barWidth(rc.cfg.widthPx(), bins),
		BarSpacing: 15,
		Bars:       bars,
	}
	return rc.encodePNG(&ch)
}

// ----------------------------------------------------------------------------
// pie
// ----------------------------------------------------------------------------

func drawPie(rc *renderContext) ([]byte, error) {
	labels := rc.labelRole(RoleX)
	ys, missing, err := rc.numericRole(RoleY)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, len(ys))
	for i := range ys {
		if missing[i] {
			labels[i] = "" // drop the whole row
			continue
		}
		vals[i] = ys[i]
	}
	totals := groupSum(labels, vals)
	if len(totals) == 0 {
		return nil, renderErrf(rc.desc.spec.ID, "aggregate", "no groups to plot")
	}
	values := make([]chart.Value, len(totals))
	for i, g := range totals {
		c := rc.cfg.color(i)
		values[i] = chart.Value{
			Label: g.Label,
			Value: g.Value,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
	}
	ch := chart.PieChart{
		Title:  rc.title(),
		Width:  rc.cfg.widthPx(),
		Height: rc.cfg.heightPx(),
		Values: values,
	}
	return rc.encodePNG(&ch)
}

// ----------------------------------------------------------------------------
// stacked_bar
// ----------------------------------------------------------------------------

func drawStackedBar(rc *renderContext) ([]byte, error) {
	xs := rc.labelRole(RoleX)
	groups := rc.labelRole(RoleGroup)
	ys, missing, err := rc.numericRole(RoleY)
	if err != nil {
		return nil, err
	}
	for i := range ys {
		if missing[i] {
			xs[i] = "" // pivot2D skips rows with an empty key
		}
	}
	table := pivot2D(xs, groups, ys)
	if table.Empty() {
		return nil, renderErrf(rc.desc.spec.ID, "aggregate", "no groups to plot")
	}

	bars := make([]chart.StackedBar, 0, len(table.XKeys))
	for _, x := range table.XKeys {
		var segs []chart.Value
		for gi, g := range table.YKeys {
			sum, ok := table.Sum(x, g)
			if !ok {
				continue
			}
			c := rc.cfg.color(gi)
			segs = append(segs, chart.Value{
				Label: g,
				Value: sum,
				Style: chart.Style{FillColor: c, StrokeColor: c},
			})
		}
		if len(segs) == 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{Name: x, Values: segs})
	}

	ch := chart.StackedBarChart{
		Title:      rc.title(),
		Width:      rc.cfg.widthPx(),
		Height:     rc.cfg.heightPx(),
		BarSpacing: 40,
		Bars:       bars,
	}
	return rc.encodePNG(&ch)
}
