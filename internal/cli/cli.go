// Package cli implements the freqplot command-line interface.
//
// freqplot reads a file of non-negative integers and a file of (age, tip)
// pairs and renders three charts from them: a frequency histogram, a scatter
// plot and a pie chart. The CLI is built using cobra and logs through the
// charmbracelet/log library.
//
// # Usage
//
//	freqplot [flags] VALUES_CSV PAIRS_CSV
//
// Charts are written into an existing output directory (plotters-doc-data by
// default). Chart sizes, file names and axis windows can be overridden from a
// TOML file passed with --config.
//
// # Logging
//
// --verbose (-v) enables debug-level logging. Loggers are passed through
// context.Context so every stage logs with the same settings.
//
// # Example
//
//	import "github.com/matzehuels/freqplot/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/freqplot/pkg/buildinfo"
	"github.com/matzehuels/freqplot/pkg/config"
	"github.com/matzehuels/freqplot/pkg/pipeline"
	"github.com/matzehuels/freqplot/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "freqplot"

	msgNoFiles  = "Please provide the two file names to read"
	msgOneFile  = "Please provide another file name to read"
	chartsTotal = 3
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Sink overrides where charts are written. Nil writes files into the
	// configured output directory.
	Sink render.Sink
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.chartsCommand()
	root.Version = buildinfo.Version
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(logger *log.Logger) *pipeline.Runner {
	return pipeline.NewRunner(c.Sink, logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadConfig returns the defaults, or the defaults overlaid with the TOML
// file at path.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
