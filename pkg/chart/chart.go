// Package chart builds renderer-agnostic chart specifications.
//
// # Overview
//
// A [Spec] is the fully resolved geometry of one chart: axis ranges, bar
// heights, point coordinates or pie slices, plus the frame size and caption.
// Specs are produced by pure constructors and never touch a drawing surface;
// rasterizing them is the job of the render package.
//
// Three chart kinds exist:
//
//   - [Histogram]: one bar per integer in 0..=MaxValue
//   - [Scatter]: points inside a fixed axis window
//   - [Pie]: slices sized from the category window, labeled and colored per
//     distinct value
//
// # Immutability
//
// Builders copy every input slice, so a Spec shares no memory with the
// summary or series it was built from. Callers must treat the slices of a
// built Spec as read-only.
package chart

import "math"

// Kind discriminates the chart types.
type Kind string

// Chart kinds.
const (
	KindHistogram Kind = "histogram"
	KindScatter   Kind = "scatter"
	KindPie       Kind = "pie"
)

// Captions and axis descriptions.
const (
	HistogramTitle = "Bar graph"
	HistogramXDesc = "values"
	HistogramYDesc = "Count Frequency"
	ScatterTitle   = "Scatter Plot"
	PieTitle       = "Pie chart"
)

// Spec is a built chart ready to be rendered.
type Spec interface {
	Kind() Kind
	Frame() Frame
}

// Frame is the output image size and caption.
type Frame struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// Point is a position in data (scatter) or pixel (pie center) space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [r.Min, r.Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Span returns r.Max - r.Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}
