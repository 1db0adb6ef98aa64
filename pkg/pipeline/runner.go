package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/freqplot/pkg/aggregate"
	"github.com/matzehuels/freqplot/pkg/chart"
	"github.com/matzehuels/freqplot/pkg/observability"
	"github.com/matzehuels/freqplot/pkg/render"
	"github.com/matzehuels/freqplot/pkg/table"
)

// Runner encapsulates pipeline execution against an output sink.
//
// The Runner is stateless except for the sink and logger - it doesn't
// store pipeline results. If Sink is nil, each run writes files into
// Options.Config.OutputDir in Options.Format.
type Runner struct {
	Sink   render.Sink
	Logger *log.Logger
}

// NewRunner creates a runner writing to sink.
// If logger is nil, log.Default() is used.
func NewRunner(sink render.Sink, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Sink:   sink,
		Logger: logger,
	}
}

// Execute runs the histogram → scatter → pie pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	logger := opts.Logger
	result := &Result{}

	// Stage 1: Histogram
	start := time.Now()
	summary, hist, err := r.Histogram(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	result.Summary = summary
	result.Histogram = hist
	result.Artifacts = append(result.Artifacts, opts.Config.Histogram.File)
	result.Stats.HistogramTime = time.Since(start)
	result.Stats.ValueCount = summary.Count
	result.Stats.DistinctCount = len(summary.Distinct)

	logger.Info("rendered histogram",
		"values", summary.Count,
		"max_value", summary.MaxValue,
		"max_bin_count", summary.MaxBinCount,
		"duration", result.Stats.HistogramTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Scatter
	start = time.Now()
	pairs, scatter, err := r.Scatter(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	result.Pairs = pairs
	result.Scatter = scatter
	result.Artifacts = append(result.Artifacts, opts.Config.Scatter.File)
	result.Stats.ScatterTime = time.Since(start)
	result.Stats.PairCount = pairs.Len()
	result.Stats.SkippedRows = len(pairs.Skipped)

	logger.Info("rendered scatter plot",
		"points", pairs.Len(),
		"skipped", len(pairs.Skipped),
		"duration", result.Stats.ScatterTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Pie
	start = time.Now()
	pie, err := r.Pie(ctx, summary, opts)
	if err != nil {
		return nil, fmt.Errorf("pie: %w", err)
	}
	result.Pie = pie
	result.Artifacts = append(result.Artifacts, opts.Config.Pie.File)
	result.Stats.PieTime = time.Since(start)

	logger.Info("rendered pie chart",
		"slices", len(pie.Sizes),
		"duration", result.Stats.PieTime)

	return result, nil
}

// Histogram reads the values file, aggregates it and writes the bar chart.
// The summary is returned for reuse by [Runner.Pie].
func (r *Runner) Histogram(ctx context.Context, opts Options) (aggregate.Summary, *chart.Histogram, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return aggregate.Summary{}, nil, err
	}
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnReadStart(ctx, opts.ValuesPath)
	values, err := table.ReadValues(opts.ValuesPath)
	hooks.OnReadComplete(ctx, opts.ValuesPath, len(values), time.Since(start), err)
	if err != nil {
		return aggregate.Summary{}, nil, err
	}

	summary := aggregate.Aggregate(values)
	opts.Logger.Debug("aggregated values",
		"count", summary.Count,
		"distinct", len(summary.Distinct))

	var hist *chart.Histogram
	err = r.chart(ctx, opts, chart.KindHistogram, func() (chart.Spec, error) {
		h, err := chart.BuildHistogram(summary, opts.Config.Histogram)
		hist = h
		return h, err
	}, opts.Config.Histogram.File)
	if err != nil {
		return aggregate.Summary{}, nil, err
	}
	return summary, hist, nil
}

// Scatter extracts coordinate pairs and writes the scatter plot. Skipped
// rows are logged as warnings and returned in the series.
func (r *Runner) Scatter(ctx context.Context, opts Options) (table.CoordinateSeries, *chart.Scatter, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return table.CoordinateSeries{}, nil, err
	}
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnReadStart(ctx, opts.PairsPath)
	pairs, err := table.ReadPairs(opts.PairsPath, table.WithRowHandler(func(e table.RowError) {
		hooks.OnRowSkipped(ctx, opts.PairsPath, e.Line, e.Reason)
		opts.Logger.Warn("skipping row", "line", e.Line, "reason", e.Reason, "err", e.Err)
	}))
	hooks.OnReadComplete(ctx, opts.PairsPath, pairs.Len(), time.Since(start), err)
	if err != nil {
		return table.CoordinateSeries{}, nil, err
	}

	if lo, hi, err := aggregate.Extent(pairs.X); err == nil {
		opts.Logger.Debug("age extent", "min", lo, "max", hi)
	}
	if lo, hi, err := aggregate.Extent(pairs.Y); err == nil {
		opts.Logger.Debug("tip extent", "min", lo, "max", hi)
	}

	var scatter *chart.Scatter
	err = r.chart(ctx, opts, chart.KindScatter, func() (chart.Spec, error) {
		scatter = chart.BuildScatter(pairs, opts.Config.Scatter)
		return scatter, nil
	}, opts.Config.Scatter.File)
	if err != nil {
		return table.CoordinateSeries{}, nil, err
	}

	if n := scatter.OutOfWindow(); n > 0 {
		opts.Logger.Debug("points outside the plot window", "count", n,
			"x", scatter.XRange, "y", scatter.YRange)
	}
	return pairs, scatter, nil
}

// Pie builds and writes the pie chart from an existing summary.
func (r *Runner) Pie(ctx context.Context, summary aggregate.Summary, opts Options) (*chart.Pie, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var pie *chart.Pie
	err := r.chart(ctx, opts, chart.KindPie, func() (chart.Spec, error) {
		pie = chart.BuildPie(summary, opts.Palette, opts.Config.Pie)
		return pie, nil
	}, opts.Config.Pie.File)
	if err != nil {
		return nil, err
	}

	if mis := pie.Mislabeled(); !pie.Aligned() || len(mis) > 0 {
		opts.Logger.Warn("pie labels do not match slices",
			"labels", len(pie.Labels),
			"slices", len(pie.Sizes),
			"mislabeled", len(mis),
			"window", fmt.Sprintf("%d..%d", opts.Config.Pie.WindowMin, opts.Config.Pie.WindowMax))
	}
	return pie, nil
}

// chart builds one spec and hands it to the sink, reporting both to the hooks.
func (r *Runner) chart(ctx context.Context, opts Options, kind chart.Kind, build func() (chart.Spec, error), name string) (err error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnChartStart(ctx, string(kind))
	defer func() {
		hooks.OnChartComplete(ctx, string(kind), time.Since(start), err)
	}()

	sink, err := r.sink(opts)
	if err != nil {
		return err
	}
	spec, err := build()
	if err != nil {
		return err
	}
	return sink.Write(ctx, name, spec)
}

// sink returns the runner's sink, or a file sink for opts when none is set.
func (r *Runner) sink(opts Options) (render.Sink, error) {
	if r.Sink != nil {
		return r.Sink, nil
	}
	return render.NewFileSink(opts.Config.OutputDir, opts.Format)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
