package engine

import (
	"bytes"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ============================================================================
// GRID DRAW STRATEGIES — heatmap, boxplot, violin
// ============================================================================
// go-chart has no native renderable for these three, so they are drawn
// directly on its raster renderer: an axis-free padded canvas, cells
// and glyphs placed by hand, labels centered with MeasureText.
// ============================================================================

const gridPadding = 60

var (
	canvasWhite = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	canvasInk   = drawing.Color{R: 51, G: 51, B: 51, A: 255}
)

// gridCanvas wraps a raster renderer with the padded plot geometry the
// grid strategies share.
type gridCanvas struct {
	r      chart.Renderer
	width  int
	height int
	plotX  int
	plotY  int
	plotW  int
	plotH  int
}

func newGridCanvas(rc *renderContext) (*gridCanvas, error) {
	w, h := rc.cfg.widthPx(), rc.cfg.heightPx()
	r, err := chart.PNG(w, h)
	if err != nil {
		return nil, renderErrf(rc.desc.spec.ID, "draw", "renderer init failed: %v", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, renderErrf(rc.desc.spec.ID, "draw", "font load failed: %v", err)
	}
	r.SetFont(font)
	r.SetFontColor(canvasInk)
	r.SetFontSize(10)

	gc := &gridCanvas{
		r: r, width: w, height: h,
		plotX: gridPadding, plotY: gridPadding,
		plotW: w - 2*gridPadding, plotH: h - 2*gridPadding,
	}
	gc.fillRect(0, 0, w, h, canvasWhite)
	if title := rc.title(); title != "" {
		r.SetFontSize(16)
		gc.textCentered(title, w/2, gridPadding/2)
		r.SetFontSize(10)
	}
	return gc, nil
}

func (gc *gridCanvas) fillRect(x, y, w, h int, c drawing.Color) {
	gc.r.SetFillColor(c)
	gc.r.MoveTo(x, y)
	gc.r.LineTo(x+w, y)
	gc.r.LineTo(x+w, y+h)
	gc.r.LineTo(x, y+h)
	gc.r.Close()
	gc.r.Fill()
}

func (gc *gridCanvas) strokeRect(x, y, w, h int, c drawing.Color, sw float64) {
	gc.r.SetStrokeColor(c)
	gc.r.SetStrokeWidth(sw)
	gc.r.MoveTo(x, y)
	gc.r.LineTo(x+w, y)
	gc.r.LineTo(x+w, y+h)
	gc.r.LineTo(x, y+h)
	gc.r.Close()
	gc.r.Stroke()
}

func (gc *gridCanvas) line(x1, y1, x2, y2 int, c drawing.Color, sw float64) {
	gc.r.SetStrokeColor(c)
	gc.r.SetStrokeWidth(sw)
	gc.r.MoveTo(x1, y1)
	gc.r.LineTo(x2, y2)
	gc.r.Stroke()
}

func (gc *gridCanvas) textCentered(body string, cx, cy int) {
	box := gc.r.MeasureText(body)
	gc.r.Text(body, cx-box.Width()/2, cy)
}

func (gc *gridCanvas) save() ([]byte, error) {
	var buf bytes.Buffer
	if err := gc.r.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ----------------------------------------------------------------------------
// heatmap
// ----------------------------------------------------------------------------

// heatmapColor maps a 0..1 intensity onto a dark-violet to yellow-green
// ramp. Out-of-range intensities are clamped.
func heatmapColor(t float64) drawing.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return drawing.Color{
		R: uint8(68 + 187*t),
		G: uint8(1 + 180*t - 100*t*t),
		B: uint8(84 + 100*(1-t)),
		A: 255,
	}
}

func drawHeatmap(rc *renderContext) ([]byte, error) {
	xs := rc.labelRole(RoleX)
	ys := rc.labelRole(RoleY)
	vals, missing, err := rc.numericRole(RoleGroup)
	if err != nil {
		return nil, err
	}
	for i := range vals {
		if missing[i] {
			xs[i] = "" // pivot2D skips rows with an empty key
		}
	}
	table := pivot2D(xs, ys, vals)
	if table.Empty() {
		return nil, renderErrf(rc.desc.spec.ID, "aggregate", "no cells to plot")
	}

	// Scale intensities over the observed mean range.
	first := true
	var lo, hi float64
	for _, x := range table.XKeys {
		for _, y := range table.YKeys {
			m, ok := table.Mean(x, y)
			if !ok {
				continue
			}
			if first || m < lo {
				lo = m
			}
			if first || m > hi {
				hi = m
			}
			first = false
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	gc, err := newGridCanvas(rc)
	if err != nil {
		return nil, err
	}
	cellW := gc.plotW / len(table.XKeys)
	cellH := gc.plotH / len(table.YKeys)

	for xi, x := range table.XKeys {
		for yi, y := range table.YKeys {
			px := gc.plotX + xi*cellW
			py := gc.plotY + yi*cellH
			m, ok := table.Mean(x, y)
			if ok {
				// Absent pairs stay blank; only observed cells get a color.
				gc.fillRect(px, py, cellW, cellH, heatmapColor((m-lo)/span))
			}
			gc.strokeRect(px, py, cellW, cellH, canvasWhite, 1.0)
		}
	}
	for xi, x := range table.XKeys {
		gc.textCentered(x, gc.plotX+xi*cellW+cellW/2, gc.plotY+gc.plotH+18)
	}
	for yi, y := range table.YKeys {
		gc.r.Text(y, 6, gc.plotY+yi*cellH+cellH/2)
	}

	png, err := gc.save()
	if err != nil {
		return nil, renderErrf(rc.desc.spec.ID, "encode", "png encode failed: %v", err)
	}
	return png, nil
}

// ----------------------------------------------------------------------------
// boxplot / violin shared grouping
// ----------------------------------------------------------------------------

// groupedNumeric extracts the y role grouped by the optional group
// role, missing rows dropped. Ungrouped charts collapse into a single
// "all" group.
func (rc *renderContext) groupedNumeric() ([]string, [][]float64, error) {
	vals, missing, err := rc.numericRole(RoleY)
	if err != nil {
		return nil, nil, err
	}
	var labels []string
	if rc.hasRole(RoleGroup) {
		labels = rc.labelRole(RoleGroup)
	} else {
		labels = make([]string, len(vals))
	}
	var keptLabels []string
	var kept []float64
	for i := range vals {
		if missing[i] {
			continue
		}
		keptLabels = append(keptLabels, labels[i])
		kept = append(kept, vals[i])
	}
	if len(kept) == 0 {
		return nil, nil, renderErrf(rc.desc.spec.ID, "data", "no drawable rows")
	}
	names, groups := groupValues(keptLabels, kept)
	return names, groups, nil
}

// valueScale maps data values into plot-area y pixels over the global
// min/max of all groups.
type valueScale struct {
	lo, span float64
	plotY    int
	plotH    int
}

func newValueScale(groups [][]float64, gc *gridCanvas) valueScale {
	first := true
	var lo, hi float64
	for _, g := range groups {
		for _, v := range g {
			if first || v < lo {
				lo = v
			}
			if first || v > hi {
				hi = v
			}
			first = false
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return valueScale{lo: lo, span: span, plotY: gc.plotY, plotH: gc.plotH}
}

func (s valueScale) y(v float64) int {
	return s.plotY + s.plotH - int(float64(s.plotH)*(v-s.lo)/s.span)
}

// ----------------------------------------------------------------------------
// boxplot
// ----------------------------------------------------------------------------

// percentile interpolates linearly between adjacent order statistics.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100.0) * float64(len(sorted)-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[lower]
	}
	return sorted[lower] + (idx-float64(lower))*(sorted[upper]-sorted[lower])
}

func drawBoxPlot(rc *renderContext) ([]byte, error) {
	names, groups, err := rc.groupedNumeric()
	if err != nil {
		return nil, err
	}
	gc, err := newGridCanvas(rc)
	if err != nil {
		return nil, err
	}
	scale := newValueScale(groups, gc)
	slotW := gc.plotW / len(groups)
	boxW := slotW * 2 / 3

	for i, g := range groups {
		sorted := append([]float64(nil), g...)
		sort.Float64s(sorted)
		q1 := percentile(sorted, 25)
		q2 := percentile(sorted, 50)
		q3 := percentile(sorted, 75)

		cx := gc.plotX + i*slotW + slotW/2
		yQ1, yQ2, yQ3 := scale.y(q1), scale.y(q2), scale.y(q3)
		yMin, yMax := scale.y(sorted[0]), scale.y(sorted[len(sorted)-1])
		c := rc.cfg.color(i)
		fill := drawing.Color{R: c.R, G: c.G, B: c.B, A: 128}

		// Whiskers, then the interquartile box, then median and caps.
		gc.line(cx, yMin, cx, yQ1, c, 1.0)
		gc.line(cx, yQ3, cx, yMax, c, 1.0)
		gc.fillRect(cx-boxW/2, yQ3, boxW, yQ1-yQ3, fill)
		gc.strokeRect(cx-boxW/2, yQ3, boxW, yQ1-yQ3, c, 1.0)
		gc.line(cx-boxW/2, yQ2, cx+boxW/2, yQ2, c, 2.0)
		capW := boxW / 2
		gc.line(cx-capW/2, yMin, cx+capW/2, yMin, c, 1.0)
		gc.line(cx-capW/2, yMax, cx+capW/2, yMax, c, 1.0)

		gc.textCentered(names[i], cx, gc.plotY+gc.plotH+18)
	}

	png, err := gc.save()
	if err != nil {
		return nil, renderErrf(rc.desc.spec.ID, "encode", "png encode failed: %v", err)
	}
	return png, nil
}

// ----------------------------------------------------------------------------
// violin
// ----------------------------------------------------------------------------

const violinBins = 20

// violinProfile bins a group's values and smooths neighboring bins into
// a density half-width profile, one entry per bin edge.
func violinProfile(sorted []float64) []float64 {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	span := hi - lo
	if span == 0 {
		return []float64{1}
	}
	counts := make([]float64, violinBins)
	for _, v := range sorted {
		idx := int((v - lo) / span * violinBins)
		if idx >= violinBins {
			idx = violinBins - 1
		}
		counts[idx]++
	}
	smoothed := make([]float64, violinBins)
	peak := 0.0
	for i := range counts {
		sum, n := counts[i], 1.0
		if i > 0 {
			sum, n = sum+counts[i-1], n+1
		}
		if i < violinBins-1 {
			sum, n = sum+counts[i+1], n+1
		}
		smoothed[i] = sum / n
		if smoothed[i] > peak {
			peak = smoothed[i]
		}
	}
	if peak > 0 {
		for i := range smoothed {
			smoothed[i] /= peak
		}
	}
	return smoothed
}

func drawViolin(rc *renderContext) ([]byte, error) {
	names, groups, err := rc.groupedNumeric()
	if err != nil {
		return nil, err
	}
	gc, err := newGridCanvas(rc)
	if err != nil {
		return nil, err
	}
	scale := newValueScale(groups, gc)
	slotW := gc.plotW / len(groups)
	halfW := float64(slotW) / 3

	for i, g := range groups {
		sorted := append([]float64(nil), g...)
		sort.Float64s(sorted)
		profile := violinProfile(sorted)

		cx := gc.plotX + i*slotW + slotW/2
		lo, hi := sorted[0], sorted[len(sorted)-1]
		step := (hi - lo) / float64(len(profile))
		c := rc.cfg.color(i)
		fill := drawing.Color{R: c.R, G: c.G, B: c.B, A: 128}

		// Mirrored density polygon: down the right flank, back up the left.
		gc.r.SetFillColor(fill)
		gc.r.SetStrokeColor(c)
		gc.r.SetStrokeWidth(1.0)
		gc.r.MoveTo(cx, scale.y(lo))
		for bi, d := range profile {
			v := lo + step*(float64(bi)+0.5)
			gc.r.LineTo(cx+int(d*halfW), scale.y(v))
		}
		gc.r.LineTo(cx, scale.y(hi))
		for bi := len(profile) - 1; bi >= 0; bi-- {
			v := lo + step*(float64(bi)+0.5)
			gc.r.LineTo(cx-int(profile[bi]*halfW), scale.y(v))
		}
		gc.r.Close()
		gc.r.FillStroke()

		median := percentile(sorted, 50)
		gc.line(cx-int(halfW/2), scale.y(median), cx+int(halfW/2), scale.y(median), canvasInk, 1.5)

		gc.textCentered(names[i], cx, gc.plotY+gc.plotH+18)
	}

	png, err := gc.save()
	if err != nil {
		return nil, renderErrf(rc.desc.spec.ID, "encode", "png encode failed: %v", err)
	}
	return png, nil
}
