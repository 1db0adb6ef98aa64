package render

import (
	"math"

	"github.com/matzehuels/freqplot/pkg/chart"
)

// Layout of the chart frame, in pixels.
const (
	captionHeight = 40.0 // space reserved for the title
	labelAreaX    = 40.0 // below the plot area, tick labels and axis description
	labelAreaY    = 50.0 // left of the plot area
	plotMargin    = 10.0
	maxXTicks     = 20
	targetYTicks  = 10
)

// Colors used by both raster and vector output.
var (
	colorBackground = rgb{255, 255, 255}
	colorAxis       = rgb{0, 0, 0}
	colorMesh       = rgb{225, 225, 225}
	colorBar        = rgb{255, 128, 128} // red at 50% over white
	colorBarEdge    = rgb{255, 0, 0}
	colorPoint      = rgb{0, 0, 255}
	colorPieLabel   = rgb{255, 192, 203}
	colorPercent    = rgb{0, 0, 0}
)

type rgb struct{ r, g, b uint8 }

// plotArea is the rectangle inside the frame where data is drawn.
type plotArea struct {
	left, top, right, bottom float64
}

func newPlotArea(f chart.Frame) plotArea {
	return plotArea{
		left:   plotMargin + labelAreaY,
		top:    plotMargin + captionHeight,
		right:  float64(f.Width) - plotMargin,
		bottom: float64(f.Height) - plotMargin - labelAreaX,
	}
}

func (a plotArea) width() float64  { return a.right - a.left }
func (a plotArea) height() float64 { return a.bottom - a.top }

// x maps a data value in r to a pixel column.
func (a plotArea) x(v float64, r chart.Range) float64 {
	return a.left + (v-r.Min)/r.Span()*a.width()
}

// y maps a data value in r to a pixel row; larger values are higher up.
func (a plotArea) y(v float64, r chart.Range) float64 {
	return a.bottom - (v-r.Min)/r.Span()*a.height()
}

// histogramRanges returns the x range (one unit segment per value) and the
// y range of h. A zero count axis is widened to 1 so it can be drawn.
func histogramRanges(h *chart.Histogram) (xr, yr chart.Range) {
	xr = chart.Range{Min: 0, Max: float64(h.MaxValue) + 1}
	yr = chart.Range{Min: 0, Max: float64(max(h.MaxBinCount, 1))}
	return xr, yr
}

// tickStep returns a 1/2/5 × 10^k step giving roughly target ticks over span.
func tickStep(span float64, target int) float64 {
	if span <= 0 || target <= 0 {
		return 1
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * mag; step >= raw {
			return step
		}
	}
	return 10 * mag
}

// ticks returns the multiples of step inside r.
func ticks(r chart.Range, step float64) []float64 {
	var out []float64
	start := math.Ceil(r.Min/step) * step
	for v := start; v <= r.Max+step*1e-9; v += step {
		out = append(out, v)
	}
	return out
}

// integerTicks returns tick positions for whole-number axes such as counts
// and histogram segments.
func integerTicks(r chart.Range, target int) []float64 {
	step := math.Max(1, math.Round(tickStep(r.Span(), target)))
	return ticks(r, step)
}

// wedge describes one pie slice in radians, clockwise from the positive x axis
// (screen coordinates, y down).
type wedge struct {
	start, end float64
	index      int
}

func (w wedge) mid() float64 { return (w.start + w.end) / 2 }

// pieWedges splits the circle proportionally to p.Sizes starting at
// p.StartAngle. Zero-size slices produce no wedge.
func pieWedges(p *chart.Pie) []wedge {
	total := p.Total()
	if total <= 0 {
		return nil
	}
	var out []wedge
	angle := p.StartAngle * math.Pi / 180
	for i, s := range p.Sizes {
		if s <= 0 {
			continue
		}
		sweep := s / total * 2 * math.Pi
		out = append(out, wedge{start: angle, end: angle + sweep, index: i})
		angle += sweep
	}
	return out
}

// polar returns the point at radius r and angle a around c.
func polar(c chart.Point, r, a float64) (float64, float64) {
	return c.X + r*math.Cos(a), c.Y + r*math.Sin(a)
}

// sliceLabel returns the label drawn on slice i. Labels and sizes are zipped
// positionally; a slice without a label falls back to its category.
func sliceLabel(p *chart.Pie, i int) string {
	if i < len(p.Labels) {
		return p.Labels[i]
	}
	if i < len(p.Categories) {
		return chart.Label(p.Categories[i])
	}
	return ""
}

// sliceColor returns the fill of slice i, or gray when no color was generated for it.
func sliceColor(p *chart.Pie, i int) rgb {
	if i < len(p.Colors) {
		c := p.Colors[i]
		return rgb{c.R, c.G, c.B}
	}
	return rgb{160, 160, 160}
}
