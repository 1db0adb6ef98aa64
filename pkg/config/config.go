// Package config holds the fixed chart windows, image dimensions and output
// locations used by the chart pipeline.
//
// Every hard-coded value of the three charts has exactly one authoritative
// definition here: the named constants below are the defaults, and [Config]
// carries them at run time so a TOML file can override them.
//
// # TOML
//
// [Load] decodes a file over [Default], so a config only needs the keys it
// changes:
//
//	output_dir = "charts"
//
//	[pie]
//	radius = 250.0
//	start_angle = 90.0
//
// Unknown keys are rejected.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/freqplot/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth
// =============================================================================

// DefaultOutputDir is the directory charts are written to. It must already exist.
const DefaultOutputDir = "plotters-doc-data"

// Histogram defaults.
const (
	HistogramFile   = "histogram.png"
	HistogramWidth  = 640
	HistogramHeight = 480

	// DefaultMaxBins bounds the dense bin table; one bin is allocated per
	// integer in 0..=max_value.
	DefaultMaxBins = 1 << 20
)

// Scatter defaults. The axis window is fixed and never auto-scaled to the data.
const (
	ScatterFile   = "scatter_plot.png"
	ScatterWidth  = 800
	ScatterHeight = 600

	ScatterXMin = 20.0
	ScatterXMax = 50.0
	ScatterYMin = 0.0
	ScatterYMax = 10.0

	ScatterPointRadius = 5.0
)

// Pie defaults.
const (
	PieFile   = "pie-chart.png"
	PieWidth  = 950
	PieHeight = 700

	PieRadius     = 300.0
	PieStartAngle = 66.0

	// PieWindowMin and PieWindowMax bound the category window used to size
	// pie slices. Values outside it still get a label and a color.
	PieWindowMin = 1
	PieWindowMax = 10
)

// =============================================================================
// Config
// =============================================================================

// Config is the complete run configuration.
type Config struct {
	OutputDir string    `toml:"output_dir"`
	Histogram Histogram `toml:"histogram"`
	Scatter   Scatter   `toml:"scatter"`
	Pie       Pie       `toml:"pie"`
}

// Image is the output file and pixel size shared by every chart.
type Image struct {
	File   string `toml:"file"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Histogram configures the frequency histogram.
type Histogram struct {
	Image
	MaxBins int `toml:"max_bins"`
}

// Scatter configures the scatter plot.
type Scatter struct {
	Image
	XMin        float64 `toml:"x_min"`
	XMax        float64 `toml:"x_max"`
	YMin        float64 `toml:"y_min"`
	YMax        float64 `toml:"y_max"`
	PointRadius float64 `toml:"point_radius"`
}

// Pie configures the pie chart.
type Pie struct {
	Image
	Radius     float64 `toml:"radius"`
	StartAngle float64 `toml:"start_angle"`
	WindowMin  uint32  `toml:"window_min"`
	WindowMax  uint32  `toml:"window_max"`
}

// Default returns the configuration matching the fixed chart layout.
func Default() Config {
	return Config{
		OutputDir: DefaultOutputDir,
		Histogram: Histogram{
			Image:   Image{File: HistogramFile, Width: HistogramWidth, Height: HistogramHeight},
			MaxBins: DefaultMaxBins,
		},
		Scatter: Scatter{
			Image:       Image{File: ScatterFile, Width: ScatterWidth, Height: ScatterHeight},
			XMin:        ScatterXMin,
			XMax:        ScatterXMax,
			YMin:        ScatterYMin,
			YMax:        ScatterYMax,
			PointRadius: ScatterPointRadius,
		},
		Pie: Pie{
			Image:      Image{File: PieFile, Width: PieWidth, Height: PieHeight},
			Radius:     PieRadius,
			StartAngle: PieStartAngle,
			WindowMin:  PieWindowMin,
			WindowMax:  PieWindowMax,
		},
	}
}

// Load decodes the TOML file at path over [Default] and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every chart has a usable file name, positive
// dimensions and a non-empty window.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "output_dir cannot be empty")
	}
	for name, img := range map[string]Image{
		"histogram": c.Histogram.Image,
		"scatter":   c.Scatter.Image,
		"pie":       c.Pie.Image,
	} {
		if err := img.validate(name); err != nil {
			return err
		}
	}
	if c.Histogram.MaxBins <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "histogram.max_bins must be positive")
	}
	if c.Scatter.XMin >= c.Scatter.XMax || c.Scatter.YMin >= c.Scatter.YMax {
		return errors.New(errors.ErrCodeInvalidConfig, "scatter window [%g,%g]x[%g,%g] is empty",
			c.Scatter.XMin, c.Scatter.XMax, c.Scatter.YMin, c.Scatter.YMax)
	}
	if c.Scatter.PointRadius <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scatter.point_radius must be positive")
	}
	if c.Pie.Radius <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "pie.radius must be positive")
	}
	if c.Pie.WindowMin > c.Pie.WindowMax {
		return errors.New(errors.ErrCodeInvalidConfig, "pie window %d..%d is empty", c.Pie.WindowMin, c.Pie.WindowMax)
	}
	return nil
}

func (i Image) validate(chart string) error {
	if err := errors.ValidateOutputName(i.File); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s.file", chart)
	}
	if i.Width <= 0 || i.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s dimensions %dx%d must be positive", chart, i.Width, i.Height)
	}
	return nil
}
