package chart

import (
	"fmt"

	"github.com/matzehuels/freqplot/pkg/aggregate"
	"github.com/matzehuels/freqplot/pkg/config"
	"github.com/matzehuels/freqplot/pkg/palette"
)

// Pie is a pie chart whose slices are zipped positionally from Sizes,
// Labels and Colors.
//
// Sizes come from the category window while Labels and Colors cover every
// distinct value, so the three slices can differ in length when values
// outside the window were observed. See [Pie.Aligned].
type Pie struct {
	frame Frame

	Center     Point   // pixel center of the pie
	Radius     float64 // pixels
	StartAngle float64 // degrees

	Labels     []string        // one per distinct value, first-occurrence order
	Colors     []palette.Color // one per distinct value, first-occurrence order
	Sizes      []float64       // one per observed value inside the window, ascending
	Categories []uint32        // the window value behind each entry of Sizes
}

// Kind implements [Spec].
func (p *Pie) Kind() Kind { return KindPie }

// Frame implements [Spec].
func (p *Pie) Frame() Frame { return p.frame }

// Aligned reports whether Labels, Colors and Sizes have the same length.
// Equal lengths do not mean slice i is labeled with its own value: Sizes
// are ascending while Labels follow first occurrence, so with values
// 4,4,4,1,2 the slice for 1 is drawn as "The frequency of 4". Use
// [Pie.Mislabeled] to find such slices.
func (p *Pie) Aligned() bool {
	return len(p.Labels) == len(p.Sizes) && len(p.Colors) == len(p.Sizes)
}

// Mislabeled returns the indexes of slices whose drawn label does not name
// the value in Categories. A slice without any label counts as mislabeled.
func (p *Pie) Mislabeled() []int {
	var idx []int
	for i, v := range p.Categories {
		if i >= len(p.Labels) || p.Labels[i] != Label(v) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Total returns the sum of all slice sizes.
func (p *Pie) Total() float64 {
	var t float64
	for _, s := range p.Sizes {
		t += s
	}
	return t
}

// Percentages returns each slice's share of the total in percent.
// All shares are zero when the pie is empty.
func (p *Pie) Percentages() []float64 {
	pct := make([]float64, len(p.Sizes))
	total := p.Total()
	if total == 0 {
		return pct
	}
	for i, s := range p.Sizes {
		pct[i] = s / total * 100
	}
	return pct
}

// Label formats the label of a pie category.
func Label(value uint32) string {
	return fmt.Sprintf("The frequency of %d", value)
}

// BuildPie lays out the pie chart for s. gen is asked for exactly one color
// per distinct value.
func BuildPie(s aggregate.Summary, gen palette.Generator, cfg config.Pie) *Pie {
	categories, counts := s.Window(cfg.WindowMin, cfg.WindowMax)

	sizes := make([]float64, len(counts))
	for i, c := range counts {
		sizes[i] = float64(c)
	}

	labels := make([]string, len(s.Distinct))
	for i, v := range s.Distinct {
		labels[i] = Label(v)
	}

	colors := append([]palette.Color(nil), gen.Generate(len(s.Distinct))...)

	return &Pie{
		frame:      Frame{Width: cfg.Width, Height: cfg.Height, Title: PieTitle},
		Center:     Point{X: float64(cfg.Width / 2), Y: float64(cfg.Height / 2)},
		Radius:     cfg.Radius,
		StartAngle: cfg.StartAngle,
		Labels:     labels,
		Colors:     colors,
		Sizes:      sizes,
		Categories: categories,
	}
}
