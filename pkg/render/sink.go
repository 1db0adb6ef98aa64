package render

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/freqplot/pkg/chart"
	"github.com/matzehuels/freqplot/pkg/errors"
	"github.com/matzehuels/freqplot/pkg/observability"
)

// Sink receives finished chart specs. name is the file name from the chart
// configuration, e.g. "histogram.png".
type Sink interface {
	Write(ctx context.Context, name string, spec chart.Spec) error
}

var (
	_ Sink = (*FileSink)(nil)
	_ Sink = (*MemorySink)(nil)
)

// FileSink renders specs in Format and writes them below Dir. Dir is never
// created; a missing directory is reported as a render error.
type FileSink struct {
	Dir    string
	Format string
}

// NewFileSink returns a sink writing format files into dir.
func NewFileSink(dir, format string) (*FileSink, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	return &FileSink{Dir: dir, Format: format}, nil
}

// Path returns the file a spec named name is written to.
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.Dir, OutputName(name, s.Format))
}

// Write renders spec and writes it to Path(name).
func (s *FileSink) Write(ctx context.Context, name string, spec chart.Spec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := errors.ValidateOutputName(name); err != nil {
		return err
	}

	info, err := os.Stat(s.Dir)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.Wrap(errors.ErrCodeRenderIO, err, "output directory %s does not exist", s.Dir).
			WithHint("ensure the output directory exists")
	case err != nil:
		return errors.Wrap(errors.ErrCodeRenderIO, err, "stat output directory %s", s.Dir)
	case !info.IsDir():
		return errors.New(errors.ErrCodeRenderIO, "output path %s is not a directory", s.Dir)
	}

	data, err := Render(spec, s.Format)
	if err != nil {
		return err
	}

	path := s.Path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeRenderIO, err, "write %s", path).
			WithHint("check write permissions for the output directory")
	}
	observability.Render().OnWrite(ctx, s.Format, path, len(data))
	return nil
}

// MemorySink records specs without rendering them. It is safe for concurrent use.
type MemorySink struct {
	mu    sync.Mutex
	names []string
	specs map[string]chart.Spec
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{specs: make(map[string]chart.Spec)}
}

// Write records spec under name. A later write with the same name replaces it.
func (s *MemorySink) Write(ctx context.Context, name string, spec chart.Spec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.specs[name]; !ok {
		s.names = append(s.names, name)
	}
	s.specs[name] = spec
	return nil
}

// Names returns the recorded names in first-write order.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

// Get returns the spec recorded under name.
func (s *MemorySink) Get(name string) (chart.Spec, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spec, ok := s.specs[name]
	return spec, ok
}
