package render

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/freqplot/pkg/buildinfo"
	"github.com/matzehuels/freqplot/pkg/chart"
	"github.com/matzehuels/freqplot/pkg/errors"
)

type jsonOutput struct {
	Generator string         `json:"generator"`
	Kind      chart.Kind     `json:"kind"`
	Frame     chart.Frame    `json:"frame"`
	Histogram *jsonHistogram `json:"histogram,omitempty"`
	Scatter   *jsonScatter   `json:"scatter,omitempty"`
	Pie       *jsonPie       `json:"pie,omitempty"`
}

type jsonHistogram struct {
	MaxValue    uint32 `json:"max_value"`
	MaxBinCount int    `json:"max_bin_count"`
	Bins        []int  `json:"bins"`
	XDesc       string `json:"x_desc"`
	YDesc       string `json:"y_desc"`
}

type jsonScatter struct {
	XRange      chart.Range `json:"x_range"`
	YRange      chart.Range `json:"y_range"`
	PointRadius float64     `json:"point_radius"`
	Points      []jsonPoint `json:"points"`
	OutOfWindow int         `json:"out_of_window"`
}

// jsonPoint writes non-finite coordinates as null, which encoding/json
// would otherwise refuse.
type jsonPoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func jsonPoints(pts []chart.Point) []jsonPoint {
	out := make([]jsonPoint, len(pts))
	for i, p := range pts {
		out[i] = jsonPoint{X: finite(p.X), Y: finite(p.Y)}
	}
	return out
}

type jsonPie struct {
	Center      chart.Point `json:"center"`
	Radius      float64     `json:"radius"`
	StartAngle  float64     `json:"start_angle"`
	Labels      []string    `json:"labels"`
	Sizes       []float64   `json:"sizes"`
	Colors      []string    `json:"colors"`
	Categories  []uint32    `json:"categories"`
	Percentages []float64   `json:"percentages"`
	Aligned     bool        `json:"aligned"`
}

// ToJSON exports spec as indented JSON tagged with the generating build.
// Colors are written as hex strings.
func ToJSON(spec chart.Spec) ([]byte, error) {
	out := jsonOutput{Generator: buildinfo.Generator(), Kind: spec.Kind(), Frame: spec.Frame()}

	switch s := spec.(type) {
	case *chart.Histogram:
		out.Histogram = &jsonHistogram{
			MaxValue:    s.MaxValue,
			MaxBinCount: s.MaxBinCount,
			Bins:        s.Bins,
			XDesc:       s.XDesc,
			YDesc:       s.YDesc,
		}
	case *chart.Scatter:
		out.Scatter = &jsonScatter{
			XRange:      s.XRange,
			YRange:      s.YRange,
			PointRadius: s.PointRadius,
			Points:      jsonPoints(s.Points),
			OutOfWindow: s.OutOfWindow(),
		}
	case *chart.Pie:
		colors := make([]string, len(s.Colors))
		for i, c := range s.Colors {
			colors[i] = c.Hex()
		}
		out.Pie = &jsonPie{
			Center:      s.Center,
			Radius:      s.Radius,
			StartAngle:  s.StartAngle,
			Labels:      nonNil(s.Labels),
			Sizes:       nonNil(s.Sizes),
			Colors:      colors,
			Categories:  nonNil(s.Categories),
			Percentages: s.Percentages(),
			Aligned:     s.Aligned(),
		}
	default:
		return nil, errors.New(errors.ErrCodeInternal, "json: unsupported chart kind %q", spec.Kind())
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return data, nil
}

// nonNil keeps empty lists as [] rather than null in the output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
