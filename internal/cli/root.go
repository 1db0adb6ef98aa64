package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/freqplot/pkg/pipeline"
	"github.com/matzehuels/freqplot/pkg/render"
)

// chartsFlags holds the root command's flag values.
type chartsFlags struct {
	configPath string
	outDir     string
	format     string
	seed       uint64
	summary    bool
}

// chartsCommand creates the command that renders the three charts.
func (c *CLI) chartsCommand() *cobra.Command {
	var flags chartsFlags

	cmd := &cobra.Command{
		Use:   appName + " [flags] VALUES_CSV PAIRS_CSV",
		Short: "Freqplot renders a frequency histogram, scatter plot and pie chart",
		Long: `Freqplot reads the first line of VALUES_CSV as comma-separated non-negative
integers and draws their frequency histogram and pie chart. PAIRS_CSV is read
as (age, tip) rows for a scatter plot; malformed rows are skipped with a warning.
Arguments after the second are ignored.

Charts are written to an existing output directory:
  histogram.png      640x480
  scatter_plot.png   800x600
  pie-chart.png      950x700

The histogram allocates one bin per integer up to the largest value, so values
of histogram.max_bins (default 1048576) or more are refused. Raise the limit in
the --config file:

  [histogram]
  max_bins = 16777216`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCharts(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "TOML file overriding chart settings")
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "output directory (default from config: plotters-doc-data)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", pipeline.DefaultFormat, "output format: png, svg, json")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed for reproducible pie colors (0 = random)")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print the frequency table")
	registerChartCompletions(cmd)

	return cmd
}

func (c *CLI) runCharts(cmd *cobra.Command, args []string, flags chartsFlags) error {
	out := cmd.OutOrStdout()
	switch len(args) {
	case 0:
		fmt.Fprintln(out, msgNoFiles)
		return nil
	case 1:
		fmt.Fprintln(out, msgOneFile)
		return nil
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if flags.outDir != "" {
		cfg.OutputDir = flags.outDir
	}

	opts := pipeline.Options{
		ValuesPath: args[0],
		PairsPath:  args[1],
		Config:     cfg,
		Format:     flags.format,
		Seed:       flags.seed,
		Logger:     logger,
	}

	prog := newProgress(logger)
	result, err := c.newRunner(logger).Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d charts", chartsTotal))

	printSuccess(out, "Charts written to %s", StyleHighlight.Render(cfg.OutputDir))
	for _, name := range result.Artifacts {
		printFile(out, filepath.Join(cfg.OutputDir, render.OutputName(name, flags.format)))
	}
	printStats(out, result.Stats)

	if n := result.Stats.SkippedRows; n > 0 {
		printWarning(out, "%d %s skipped in %s", n, plural(n, "row", "rows"), args[1])
	}
	if !result.Pie.Aligned() {
		printWarning(out, "pie chart has %d labels for %d slices", len(result.Pie.Labels), len(result.Pie.Sizes))
	} else if n := len(result.Pie.Mislabeled()); n > 0 {
		printWarning(out, "pie chart labels %d %s with another value", n, plural(n, "slice", "slices"))
	}

	if flags.summary {
		printNewline(out)
		fmt.Fprintln(out, renderSummary(result.Summary))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
