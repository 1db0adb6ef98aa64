package render

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/freqplot/pkg/chart"
	"github.com/matzehuels/freqplot/pkg/palette"
)

const svgFont = `font-family="sans-serif"`

// ToSVG renders spec as a standalone SVG document.
func ToSVG(spec chart.Spec) []byte {
	f := spec.Frame()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", colorBackground.hex())
	svgText(&buf, float64(f.Width)/2, plotMargin+captionHeight/2, "middle", 24, colorAxis, f.Title)

	switch s := spec.(type) {
	case *chart.Histogram:
		svgHistogram(&buf, s)
	case *chart.Scatter:
		svgScatter(&buf, s)
	case *chart.Pie:
		svgPie(&buf, s)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (c rgb) hex() string {
	return palette.Color{R: c.r, G: c.g, B: c.b}.Hex()
}

func svgHistogram(buf *bytes.Buffer, h *chart.Histogram) {
	a := newPlotArea(h.Frame())
	xr, yr := histogramRanges(h)

	svgYMesh(buf, a, yr, integerTicks(yr, targetYTicks))

	buf.WriteString(`  <g class="bars">` + "\n")
	for v, count := range h.Bins {
		if count == 0 {
			continue
		}
		x0, x1 := a.x(float64(v), xr), a.x(float64(v+1), xr)
		y := a.y(float64(count), yr)
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"><title>%d: %d</title></rect>`+"\n",
			x0, y, x1-x0, a.bottom-y, colorBar.hex(), colorBarEdge.hex(), v, count)
	}
	buf.WriteString("  </g>\n")

	svgAxes(buf, a)
	for _, v := range integerTicks(chart.Range{Min: 0, Max: float64(h.MaxValue)}, maxXTicks) {
		svgText(buf, a.x(v+0.5, xr), a.bottom+18, "middle", 12, colorAxis, formatTick(v))
	}
	svgText(buf, a.left+a.width()/2, a.bottom+labelAreaX+4, "middle", 15, colorAxis, h.XDesc)
	cy := a.top + a.height()/2
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="15" %s fill="%s" transform="rotate(-90 %.1f %.1f)">%s</text>`+"\n",
		plotMargin+12, cy, svgFont, colorAxis.hex(), plotMargin+12, cy, html.EscapeString(h.YDesc))
}

func svgScatter(buf *bytes.Buffer, s *chart.Scatter) {
	a := newPlotArea(s.Frame())

	svgYMesh(buf, a, s.YRange, ticks(s.YRange, tickStep(s.YRange.Span(), targetYTicks)))
	for _, v := range ticks(s.XRange, tickStep(s.XRange.Span(), maxXTicks/2)) {
		x := a.x(v, s.XRange)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n", x, a.top, x, a.bottom, colorMesh.hex())
		svgText(buf, x, a.bottom+18, "middle", 12, colorAxis, formatTick(v))
	}
	svgAxes(buf, a)

	buf.WriteString(`  <defs><clipPath id="plot">`)
	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`, a.left, a.top, a.width(), a.height())
	buf.WriteString("</clipPath></defs>\n")
	fmt.Fprintf(buf, `  <g class="points" clip-path="url(#plot)" fill="%s">`+"\n", colorPoint.hex())
	for _, p := range s.Points {
		if !p.Finite() {
			continue
		}
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", a.x(p.X, s.XRange), a.y(p.Y, s.YRange), s.PointRadius)
	}
	buf.WriteString("  </g>\n")
}

func svgPie(buf *bytes.Buffer, p *chart.Pie) {
	pct := p.Percentages()
	c := p.Center

	buf.WriteString(`  <g class="slices">` + "\n")
	for _, w := range pieWedges(p) {
		fill := sliceColor(p, w.index).hex()
		label := html.EscapeString(sliceLabel(p, w.index))
		if w.end-w.start >= 2*math.Pi-1e-9 {
			fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>`+"\n",
				c.X, c.Y, p.Radius, fill, label)
			continue
		}
		x0, y0 := polar(c, p.Radius, w.start)
		x1, y1 := polar(c, p.Radius, w.end)
		large := 0
		if w.end-w.start > math.Pi {
			large = 1
		}
		fmt.Fprintf(buf, `    <path d="M %.1f %.1f L %.1f %.1f A %.1f %.1f 0 %d 1 %.1f %.1f Z" fill="%s"><title>%s</title></path>`+"\n",
			c.X, c.Y, x0, y0, p.Radius, p.Radius, large, x1, y1, fill, label)
	}
	buf.WriteString("  </g>\n")

	for _, w := range pieWedges(p) {
		lx, ly := polar(c, p.Radius*1.1, w.mid())
		anchor := "start"
		if labelAnchor(lx, c.X) == 1 {
			anchor = "end"
		}
		svgText(buf, lx, ly, anchor, 16, colorPieLabel, sliceLabel(p, w.index))

		px, py := polar(c, p.Radius*0.6, w.mid())
		svgText(buf, px, py, "middle", 20, colorPercent, fmt.Sprintf("%.1f%%", pct[w.index]))
	}
}

func svgYMesh(buf *bytes.Buffer, a plotArea, yr chart.Range, values []float64) {
	for _, v := range values {
		y := a.y(v, yr)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n", a.left, y, a.right, y, colorMesh.hex())
		svgText(buf, a.left-6, y+4, "end", 12, colorAxis, formatTick(v))
	}
}

func svgAxes(buf *bytes.Buffer, a plotArea) {
	fmt.Fprintf(buf, `  <path d="M %.1f %.1f L %.1f %.1f L %.1f %.1f" fill="none" stroke="%s"/>`+"\n",
		a.left, a.top, a.left, a.bottom, a.right, a.bottom, colorAxis.hex())
}

func svgText(buf *bytes.Buffer, x, y float64, anchor string, size int, c rgb, s string) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="%s" dominant-baseline="middle" font-size="%d" %s fill="%s">%s</text>`+"\n",
		x, y, anchor, size, svgFont, c.hex(), html.EscapeString(s))
}
