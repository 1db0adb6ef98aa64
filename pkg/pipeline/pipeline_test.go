package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/freqplot/pkg/config"
	"github.com/matzehuels/freqplot/pkg/errors"
	"github.com/matzehuels/freqplot/pkg/observability"
	"github.com/matzehuels/freqplot/pkg/palette"
	"github.com/matzehuels/freqplot/pkg/render"
)

var testPalette = palette.Fixed{{R: 10, G: 20, B: 30}}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", name, err)
	}
	return path
}

func testOptions(t *testing.T, values, pairs string) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{
		ValuesPath: writeFile(t, dir, "values.csv", values),
		PairsPath:  writeFile(t, dir, "pairs.csv", pairs),
		Palette:    testPalette,
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{ValuesPath: "a.csv", PairsPath: "b.csv"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if opts.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", opts.Format, DefaultFormat)
	}
	if opts.Config != config.Default() {
		t.Errorf("Config = %+v, want defaults", opts.Config)
	}
	if opts.Palette == nil || opts.Logger == nil {
		t.Errorf("Palette/Logger not defaulted")
	}

	// Idempotent
	p := opts.Palette
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Palette != p {
		t.Errorf("second call replaced the palette")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want errors.Code
	}{
		{"missing values", Options{PairsPath: "b.csv"}, errors.ErrCodeInvalidInput},
		{"missing pairs", Options{ValuesPath: "a.csv"}, errors.ErrCodeInvalidInput},
		{"control char", Options{ValuesPath: "a\x00.csv", PairsPath: "b.csv"}, errors.ErrCodeInvalidPath},
		{"bad format", Options{ValuesPath: "a.csv", PairsPath: "b.csv", Format: "pdf"}, errors.ErrCodeInvalidFormat},
		{"bad config", Options{ValuesPath: "a.csv", PairsPath: "b.csv", Config: config.Config{OutputDir: "out"}}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateAndSetDefaults() code = %v, want %v", errors.GetCode(err), tt.want)
			}
		})
	}
}

func TestSeedSelectsReproduciblePalette(t *testing.T) {
	a := Options{ValuesPath: "a.csv", PairsPath: "b.csv", Seed: 7}
	b := Options{ValuesPath: "a.csv", PairsPath: "b.csv", Seed: 7}
	_ = a.ValidateAndSetDefaults()
	_ = b.ValidateAndSetDefaults()

	if got, want := a.Palette.Generate(4), b.Palette.Generate(4); !slices.Equal(got, want) {
		t.Errorf("seeded palettes differ: %v vs %v", got, want)
	}
}

func TestExecute(t *testing.T) {
	opts := testOptions(t,
		"4,4,4,1,2,10,10\n99,99\n",
		"30,5.0\n45,2.5\nbad,1\n12\n60,11,extra\n")
	sink := render.NewMemorySink()

	result, err := NewRunner(sink, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := []string{config.HistogramFile, config.ScatterFile, config.PieFile}
	if !slices.Equal(sink.Names(), want) {
		t.Errorf("sink names = %v, want %v", sink.Names(), want)
	}
	if !slices.Equal(result.Artifacts, want) {
		t.Errorf("Artifacts = %v, want %v", result.Artifacts, want)
	}

	// Histogram: only the first line is read.
	if result.Histogram.MaxValue != 10 || result.Histogram.MaxBinCount != 3 {
		t.Errorf("histogram max = %d/%d, want 10/3", result.Histogram.MaxValue, result.Histogram.MaxBinCount)
	}
	if len(result.Histogram.Bins) != 11 {
		t.Errorf("len(Bins) = %d, want 11", len(result.Histogram.Bins))
	}

	// Scatter: two bad rows skipped, out-of-window point kept.
	if got := len(result.Scatter.Points); got != 3 {
		t.Errorf("scatter points = %d, want 3", got)
	}
	if result.Stats.SkippedRows != 2 {
		t.Errorf("SkippedRows = %d, want 2", result.Stats.SkippedRows)
	}
	if result.Scatter.OutOfWindow() != 1 {
		t.Errorf("OutOfWindow() = %d, want 1", result.Scatter.OutOfWindow())
	}

	// Pie: ascending window sizes, colors from the injected palette.
	if want := []float64{1, 1, 3, 2}; !slices.Equal(result.Pie.Sizes, want) {
		t.Errorf("pie sizes = %v, want %v", result.Pie.Sizes, want)
	}
	if len(result.Pie.Colors) != 4 || result.Pie.Colors[0] != testPalette[0] {
		t.Errorf("pie colors = %v, want 4 x %v", result.Pie.Colors, testPalette[0])
	}

	if spec, ok := sink.Get(config.PieFile); !ok || spec != result.Pie {
		t.Errorf("sink pie = %v, want result pie", spec)
	}
	if result.Stats.ValueCount != 7 || result.Stats.DistinctCount != 4 || result.Stats.PairCount != 3 {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestExecuteWritesFiles(t *testing.T) {
	opts := testOptions(t, "1,2,2\n", "25,3\n")
	opts.Config = config.Default()
	opts.Config.OutputDir = t.TempDir()
	opts.Format = render.FormatSVG

	if _, err := NewRunner(nil, nil).Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	for _, name := range []string{"histogram.svg", "scatter_plot.svg", "pie-chart.svg"} {
		data, err := os.ReadFile(filepath.Join(opts.Config.OutputDir, name))
		if err != nil {
			t.Errorf("%s not written: %v", name, err)
			continue
		}
		if !bytes.HasPrefix(data, []byte("<svg")) {
			t.Errorf("%s is not an SVG document", name)
		}
	}
}

func TestExecuteMissingOutputDir(t *testing.T) {
	opts := testOptions(t, "1\n", "25,3\n")
	opts.Config = config.Default()
	opts.Config.OutputDir = filepath.Join(t.TempDir(), "missing")

	_, err := NewRunner(nil, nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeRenderIO) {
		t.Fatalf("Execute() code = %v, want %v", errors.GetCode(err), errors.ErrCodeRenderIO)
	}
	if !strings.Contains(errors.GetHint(err), "output directory exists") {
		t.Errorf("hint = %q, want output directory hint", errors.GetHint(err))
	}
}

func TestExecuteParseError(t *testing.T) {
	opts := testOptions(t, "1,x,3\n", "25,3\n")
	sink := render.NewMemorySink()

	_, err := NewRunner(sink, nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("Execute() code = %v, want %v", errors.GetCode(err), errors.ErrCodeParse)
	}
	if len(sink.Names()) != 0 {
		t.Errorf("sink received %v after a parse error", sink.Names())
	}
}

func TestExecuteMissingPairsFile(t *testing.T) {
	opts := testOptions(t, "1\n", "")
	opts.PairsPath = filepath.Join(t.TempDir(), "nope.csv")
	sink := render.NewMemorySink()

	_, err := NewRunner(sink, nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("Execute() code = %v, want %v", errors.GetCode(err), errors.ErrCodeIO)
	}
	// The histogram is written before the pairs file is opened.
	if got := sink.Names(); !slices.Equal(got, []string{config.HistogramFile}) {
		t.Errorf("sink names = %v, want only the histogram", got)
	}
}

func TestExecuteCanceled(t *testing.T) {
	opts := testOptions(t, "1\n", "25,3\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(render.NewMemorySink(), nil).Execute(ctx, opts)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestExecuteWarnsOnMisalignedPie(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	opts := testOptions(t, "20,1\n", "25,3\n")

	result, err := NewRunner(render.NewMemorySink(), logger).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Pie.Aligned() {
		t.Errorf("Aligned() = true, want false for a value outside the window")
	}
	if !strings.Contains(buf.String(), "pie labels do not match slices") {
		t.Errorf("log output missing misalignment warning:\n%s", buf.String())
	}
}

func TestExecuteWarnsOnMislabeledPie(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	opts := testOptions(t, "4,4,4,1,2,10,10\n", "25,3\n")

	result, err := NewRunner(render.NewMemorySink(), logger).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !result.Pie.Aligned() {
		t.Fatalf("Aligned() = false, want true when every value is inside the window")
	}
	if !strings.Contains(buf.String(), "pie labels do not match slices") {
		t.Errorf("log output missing mislabel warning:\n%s", buf.String())
	}
}

func TestExecuteLogsSkippedRows(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})
	opts := testOptions(t, "1\n", "25,3\nage,tip\n")

	if _, err := NewRunner(render.NewMemorySink(), logger).Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "skipping row") || !strings.Contains(out, "line=2") {
		t.Errorf("log output missing row skip warning:\n%s", out)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	charts  []string
	skipped int
	reads   int
}

func (h *countingHooks) OnChartComplete(_ context.Context, kind string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.charts = append(h.charts, kind)
}

func (h *countingHooks) OnRowSkipped(context.Context, string, int, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.skipped++
}

func (h *countingHooks) OnReadComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reads++
}

func TestExecuteHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	opts := testOptions(t, "1,2\n", "25,3\n1\n")
	if _, err := NewRunner(render.NewMemorySink(), nil).Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if want := []string{"histogram", "scatter", "pie"}; !slices.Equal(hooks.charts, want) {
		t.Errorf("completed charts = %v, want %v", hooks.charts, want)
	}
	if hooks.skipped != 1 {
		t.Errorf("skipped rows = %d, want 1", hooks.skipped)
	}
	if hooks.reads != 2 {
		t.Errorf("reads = %d, want 2", hooks.reads)
	}
}
