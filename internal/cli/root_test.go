package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/freqplot/pkg/buildinfo"
	"github.com/matzehuels/freqplot/pkg/errors"
	"github.com/matzehuels/freqplot/pkg/render"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func testCLI() (*CLI, *bytes.Buffer) {
	var logs bytes.Buffer
	return New(&logs, LogInfo), &logs
}

func writeInputs(t *testing.T, values, pairs string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	v := filepath.Join(dir, "values.csv")
	p := filepath.Join(dir, "pairs.csv")
	if err := os.WriteFile(v, []byte(values), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(pairs), 0o644); err != nil {
		t.Fatal(err)
	}
	return v, p
}

func TestRootArgumentCount(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no files", nil, msgNoFiles},
		{"one file", []string{"values.csv"}, msgOneFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testCLI()
			out, err := execute(t, c, tt.args...)
			if err != nil {
				t.Fatalf("execute(%v) error: %v", tt.args, err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRootExtraArgsIgnored(t *testing.T) {
	values, pairs := writeInputs(t, "1,2\n", "25,3\n")
	outDir := t.TempDir()
	c, _ := testCLI()

	if _, err := execute(t, c, "-o", outDir, values, pairs, filepath.Join(outDir, "missing.csv")); err != nil {
		t.Fatalf("execute(3 args) error: %v", err)
	}
	for _, name := range []string{"histogram.png", "scatter_plot.png", "pie-chart.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRootHelpMentionsMaxBins(t *testing.T) {
	c, _ := testCLI()
	out, err := execute(t, c, "--help")
	if err != nil {
		t.Fatalf("execute(--help) error: %v", err)
	}
	if !strings.Contains(out, "max_bins") {
		t.Errorf("help does not mention max_bins:\n%s", out)
	}
}

func TestRootRendersCharts(t *testing.T) {
	values, pairs := writeInputs(t, "3,3,3,1,2\n", "30,5.0\nage,tip\n45,2.5\n")
	outDir := t.TempDir()
	c, logs := testCLI()

	out, err := execute(t, c, "--out-dir", outDir, "--seed", "7", "--summary", values, pairs)
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}

	for _, name := range []string{"histogram.png", "scatter_plot.png", "pie-chart.png"} {
		path := filepath.Join(outDir, name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
		if !strings.Contains(out, path) {
			t.Errorf("output does not name %s", path)
		}
	}
	for _, want := range []string{"Value", "Count", "Share", "60.0%", "1 row skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(logs.String(), "skipping row") {
		t.Errorf("logs missing row skip warning:\n%s", logs.String())
	}
}

func TestRootWarnsOnMislabeledPie(t *testing.T) {
	values, pairs := writeInputs(t, "4,4,4,1,2,10,10\n", "25,3\n")
	c, _ := testCLI()
	c.Sink = render.NewMemorySink()

	out, err := execute(t, c, values, pairs)
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if !strings.Contains(out, "pie chart labels 3 slices with another value") {
		t.Errorf("output missing mislabel warning:\n%s", out)
	}
}

func TestRootFormatFlag(t *testing.T) {
	values, pairs := writeInputs(t, "1,2\n", "25,3\n")
	outDir := t.TempDir()
	c, _ := testCLI()

	if _, err := execute(t, c, "-o", outDir, "-f", "json", values, pairs); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "pie-chart.json")); err != nil {
		t.Errorf("pie-chart.json not written: %v", err)
	}
}

func TestRootInvalidFormat(t *testing.T) {
	values, pairs := writeInputs(t, "1\n", "25,3\n")
	c, _ := testCLI()

	_, err := execute(t, c, "-o", t.TempDir(), "-f", "gif", values, pairs)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("execute(-f gif) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRootMissingOutputDir(t *testing.T) {
	values, pairs := writeInputs(t, "1\n", "25,3\n")
	c, _ := testCLI()

	_, err := execute(t, c, "-o", filepath.Join(t.TempDir(), "missing"), values, pairs)
	if !errors.Is(err, errors.ErrCodeRenderIO) {
		t.Fatalf("execute() code = %v, want %v", errors.GetCode(err), errors.ErrCodeRenderIO)
	}
	if !strings.Contains(errors.UserMessage(err), "ensure the output directory exists") {
		t.Errorf("UserMessage() = %q, want directory hint", errors.UserMessage(err))
	}
}

func TestRootConfigFile(t *testing.T) {
	values, pairs := writeInputs(t, "1,2\n", "25,3\n")
	outDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "freqplot.toml")
	cfg := "output_dir = \"" + filepath.ToSlash(outDir) + "\"\n\n[histogram]\nfile = \"bars.png\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	c, _ := testCLI()

	if _, err := execute(t, c, "--config", cfgPath, values, pairs); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "bars.png")); err != nil {
		t.Errorf("bars.png not written: %v", err)
	}
}

func TestRootBadConfigFile(t *testing.T) {
	values, pairs := writeInputs(t, "1\n", "25,3\n")
	cfgPath := filepath.Join(t.TempDir(), "freqplot.toml")
	if err := os.WriteFile(cfgPath, []byte("colour = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, _ := testCLI()

	_, err := execute(t, c, "--config", cfgPath, values, pairs)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("execute() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestRootMemorySink(t *testing.T) {
	values, pairs := writeInputs(t, "1,2\n", "25,3\n")
	c, _ := testCLI()
	sink := render.NewMemorySink()
	c.Sink = sink

	if _, err := execute(t, c, values, pairs); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if got := len(sink.Names()); got != 3 {
		t.Errorf("sink received %d charts, want 3", got)
	}
}

func TestRootVersion(t *testing.T) {
	c, _ := testCLI()
	out, err := execute(t, c, "--version")
	if err != nil {
		t.Fatalf("execute(--version) error: %v", err)
	}
	if !strings.Contains(out, buildinfo.Version) {
		t.Errorf("version output = %q, want it to contain %q", out, buildinfo.Version)
	}
}

func TestCompletionCommand(t *testing.T) {
	c, _ := testCLI()
	out, err := execute(t, c, "completion", "bash")
	if err != nil {
		t.Fatalf("execute(completion bash) error: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Errorf("completion script does not mention %s", appName)
	}

	if _, err := execute(t, c, "completion", "tcsh"); err == nil {
		t.Error("execute(completion tcsh) should fail")
	}
}

func TestChartCompletions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"format values", []string{"--format", ""}, []string{"png", "svg", "json"}},
		{"first dataset", []string{""}, []string{"csv", ":8"}},
		{"no third dataset", []string{"a.csv", "b.csv", ""}, []string{":4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testCLI()
			out, err := execute(t, c, append([]string{cobra.ShellCompRequestCmd}, tt.args...)...)
			if err != nil {
				t.Fatalf("execute(%v) error: %v", tt.args, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("completion output missing %q:\n%s", want, out)
				}
			}
		})
	}
}
