// Package pipeline provides the chart pipeline for freqplot.
//
// This package wires the table, aggregate, chart and render packages into
// the fixed three-chart run used by the CLI. Keeping the glue here keeps the
// command layer thin and lets tests drive a full run against an in-memory
// sink.
//
// # Architecture
//
// The pipeline runs three stages in order, each ending in one written chart:
//
//  1. Histogram: read the first line of the values file, aggregate it and
//     build a bar chart over 0..=max
//  2. Scatter: extract (age, tip) pairs from the pairs file, skipping
//     malformed rows, and build a scatter plot over the fixed window
//  3. Pie: reuse the histogram's summary, generate one color per distinct
//     value and build the pie chart from the category window
//
// The context is checked between stages, so a canceled run stops after the
// chart in progress.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ValuesPath: "values.csv",
//	    PairsPath:  "tips.csv",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Artifacts)
//
// Stages can also be run on their own:
//
//	summary, hist, err := runner.Histogram(ctx, opts)
//	pie, err := runner.Pie(ctx, summary, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/freqplot/pkg/aggregate"
	"github.com/matzehuels/freqplot/pkg/chart"
	"github.com/matzehuels/freqplot/pkg/config"
	"github.com/matzehuels/freqplot/pkg/errors"
	"github.com/matzehuels/freqplot/pkg/palette"
	"github.com/matzehuels/freqplot/pkg/render"
	"github.com/matzehuels/freqplot/pkg/table"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultFormat is the output format used when none is given.
const DefaultFormat = render.FormatPNG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input files
	ValuesPath string `json:"values_path"`
	PairsPath  string `json:"pairs_path"`

	// Output
	Config config.Config `json:"config"`
	Format string        `json:"format,omitempty"`

	// Seed selects a reproducible palette. Zero means a fresh random palette
	// on every run.
	Seed uint64 `json:"seed,omitempty"`

	// Runtime options (not serialized)
	Palette palette.Generator `json:"-"`
	Logger  *log.Logger       `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Summary is the aggregated values file shared by histogram and pie.
	Summary aggregate.Summary

	// Pairs is the extracted scatter input, including skipped rows.
	Pairs table.CoordinateSeries

	// Built chart specifications.
	Histogram *chart.Histogram
	Scatter   *chart.Scatter
	Pie       *chart.Pie

	// Artifacts lists the chart names handed to the sink, in write order.
	Artifacts []string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ValueCount    int
	DistinctCount int
	PairCount     int
	SkippedRows   int
	HistogramTime time.Duration
	ScatterTime   time.Duration
	PieTime       time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.ValuesPath == "" || o.PairsPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "both a values file and a pairs file are required")
	}
	if err := errors.ValidateInputPath(o.ValuesPath); err != nil {
		return err
	}
	if err := errors.ValidateInputPath(o.PairsPath); err != nil {
		return err
	}

	if o.Config == (config.Config{}) {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}

	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := render.ValidateFormat(o.Format); err != nil {
		return err
	}

	if o.Palette == nil {
		if o.Seed != 0 {
			o.Palette = palette.New(o.Seed)
		} else {
			o.Palette = palette.NewRandom()
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}
