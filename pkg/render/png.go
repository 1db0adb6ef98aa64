package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/freqplot/pkg/chart"
	"github.com/matzehuels/freqplot/pkg/errors"
)

// ToPNG rasterizes spec at its frame size.
func ToPNG(spec chart.Spec) ([]byte, error) {
	f := spec.Frame()
	if f.Width <= 0 || f.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s frame %dx%d is empty", spec.Kind(), f.Width, f.Height)
	}

	dc := gg.NewContext(f.Width, f.Height)
	dc.SetFontFace(basicfont.Face7x13)
	setColor(dc, colorBackground)
	dc.Clear()

	drawCaption(dc, f)

	switch s := spec.(type) {
	case *chart.Histogram:
		drawHistogram(dc, s)
	case *chart.Scatter:
		drawScatter(dc, s)
	case *chart.Pie:
		drawPie(dc, s)
	default:
		return nil, errors.New(errors.ErrCodeInternal, "png: unsupported chart kind %q", spec.Kind())
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func setColor(dc *gg.Context, c rgb) {
	dc.SetRGB255(int(c.r), int(c.g), int(c.b))
}

func drawCaption(dc *gg.Context, f chart.Frame) {
	setColor(dc, colorAxis)
	dc.DrawStringAnchored(f.Title, float64(f.Width)/2, plotMargin+captionHeight/2, 0.5, 0.5)
}

func drawHistogram(dc *gg.Context, h *chart.Histogram) {
	a := newPlotArea(h.Frame())
	xr, yr := histogramRanges(h)

	drawYMesh(dc, a, yr, integerTicks(yr, targetYTicks))

	for v, count := range h.Bins {
		if count == 0 {
			continue
		}
		x0, x1 := a.x(float64(v), xr), a.x(float64(v+1), xr)
		y := a.y(float64(count), yr)
		dc.DrawRectangle(x0, y, x1-x0, a.bottom-y)
		setColor(dc, colorBar)
		dc.FillPreserve()
		setColor(dc, colorBarEdge)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	drawAxes(dc, a)

	// Segment labels sit under the middle of each unit bin.
	setColor(dc, colorAxis)
	for _, v := range integerTicks(chart.Range{Min: 0, Max: float64(h.MaxValue)}, maxXTicks) {
		dc.DrawStringAnchored(formatTick(v), a.x(v+0.5, xr), a.bottom+6, 0.5, 1)
	}
	drawAxisDescriptions(dc, a, h.XDesc, h.YDesc)
}

func drawScatter(dc *gg.Context, s *chart.Scatter) {
	a := newPlotArea(s.Frame())

	drawYMesh(dc, a, s.YRange, ticks(s.YRange, tickStep(s.YRange.Span(), targetYTicks)))
	for _, v := range ticks(s.XRange, tickStep(s.XRange.Span(), maxXTicks/2)) {
		x := a.x(v, s.XRange)
		setColor(dc, colorMesh)
		dc.DrawLine(x, a.top, x, a.bottom)
		dc.Stroke()
		setColor(dc, colorAxis)
		dc.DrawStringAnchored(formatTick(v), x, a.bottom+6, 0.5, 1)
	}
	drawAxes(dc, a)

	// Points outside the window are clipped to the plot area.
	dc.Push()
	dc.DrawRectangle(a.left, a.top, a.width(), a.height())
	dc.Clip()
	setColor(dc, colorPoint)
	for _, p := range s.Points {
		if !p.Finite() {
			continue
		}
		dc.DrawCircle(a.x(p.X, s.XRange), a.y(p.Y, s.YRange), s.PointRadius)
		dc.Fill()
	}
	dc.Pop()
}

func drawPie(dc *gg.Context, p *chart.Pie) {
	pct := p.Percentages()
	for _, w := range pieWedges(p) {
		dc.MoveTo(p.Center.X, p.Center.Y)
		dc.DrawArc(p.Center.X, p.Center.Y, p.Radius, w.start, w.end)
		dc.ClosePath()
		setColor(dc, sliceColor(p, w.index))
		dc.Fill()

		lx, ly := polar(p.Center, p.Radius*1.1, w.mid())
		setColor(dc, colorPieLabel)
		dc.DrawStringAnchored(sliceLabel(p, w.index), lx, ly, labelAnchor(lx, p.Center.X), 0.5)

		px, py := polar(p.Center, p.Radius*0.6, w.mid())
		setColor(dc, colorPercent)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f%%", pct[w.index]), px, py, 0.5, 0.5)
	}
}

func drawYMesh(dc *gg.Context, a plotArea, yr chart.Range, values []float64) {
	dc.SetLineWidth(1)
	for _, v := range values {
		y := a.y(v, yr)
		setColor(dc, colorMesh)
		dc.DrawLine(a.left, y, a.right, y)
		dc.Stroke()
		setColor(dc, colorAxis)
		dc.DrawStringAnchored(formatTick(v), a.left-6, y, 1, 0.5)
	}
}

func drawAxes(dc *gg.Context, a plotArea) {
	setColor(dc, colorAxis)
	dc.SetLineWidth(1)
	dc.DrawLine(a.left, a.top, a.left, a.bottom)
	dc.DrawLine(a.left, a.bottom, a.right, a.bottom)
	dc.Stroke()
}

func drawAxisDescriptions(dc *gg.Context, a plotArea, xDesc, yDesc string) {
	setColor(dc, colorAxis)
	dc.DrawStringAnchored(xDesc, a.left+a.width()/2, a.bottom+labelAreaX-4, 0.5, 1)
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), plotMargin, a.top+a.height()/2)
	dc.DrawStringAnchored(yDesc, plotMargin, a.top+a.height()/2, 0.5, 1)
	dc.Pop()
}

// labelAnchor right-aligns labels on the left half of the pie.
func labelAnchor(x, cx float64) float64 {
	if x < cx {
		return 1
	}
	return 0
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
