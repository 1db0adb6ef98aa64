package chart

import (
	"github.com/matzehuels/freqplot/pkg/config"
	"github.com/matzehuels/freqplot/pkg/table"
)

// Scatter is a point plot inside a fixed axis window.
type Scatter struct {
	frame Frame

	XRange      Range
	YRange      Range
	Points      []Point
	PointRadius float64
}

// Kind implements [Spec].
func (s *Scatter) Kind() Kind { return KindScatter }

// Frame implements [Spec].
func (s *Scatter) Frame() Frame { return s.frame }

// OutOfWindow counts points outside the axis window. They are kept in
// Points; whether they show up is up to the renderer.
func (s *Scatter) OutOfWindow() int {
	n := 0
	for _, p := range s.Points {
		if !s.XRange.Contains(p.X) || !s.YRange.Contains(p.Y) {
			n++
		}
	}
	return n
}

// BuildScatter lays out the scatter plot. The window comes from cfg and is
// never fitted to the data.
func BuildScatter(cs table.CoordinateSeries, cfg config.Scatter) *Scatter {
	points := make([]Point, 0, cs.Len())
	for i := range cs.X {
		points = append(points, Point{X: cs.X[i], Y: cs.Y[i]})
	}

	return &Scatter{
		frame:       Frame{Width: cfg.Width, Height: cfg.Height, Title: ScatterTitle},
		XRange:      Range{Min: cfg.XMin, Max: cfg.XMax},
		YRange:      Range{Min: cfg.YMin, Max: cfg.YMax},
		Points:      points,
		PointRadius: cfg.PointRadius,
	}
}
