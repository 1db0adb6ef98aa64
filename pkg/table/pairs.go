package table

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/freqplot/pkg/errors"
)

// Row skip reasons.
const (
	ReasonNotEnoughColumns = "not enough columns"
	ReasonParse            = "parsing data"
	ReasonMalformed        = "malformed record"
)

// CoordinateSeries holds the (x, y) pairs of the scatter dataset.
// X and Y always have the same length.
type CoordinateSeries struct {
	X []float64
	Y []float64

	// Skipped lists the rows that were dropped, in file order.
	Skipped []RowError
}

// Len returns the number of pairs.
func (s CoordinateSeries) Len() int { return len(s.X) }

// RowError describes a dropped coordinate row. It is never fatal.
type RowError struct {
	Line   int    // 1-based line in the source file
	Reason string // one of the Reason* constants
	Err    error  // underlying parse error, if any
}

// Error implements the error interface.
func (e RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Unwrap exposes a ROW_SKIPPED coded error so callers can classify skips
// with [errors.Is].
func (e RowError) Unwrap() error {
	return errors.Wrap(errors.ErrCodeRowSkipped, e.Err, "%s", e.Reason)
}

// PairOption configures [ReadPairs] and [ExtractPairs].
type PairOption func(*pairReader)

type pairReader struct {
	onSkip func(RowError)
}

// WithRowHandler registers fn to be called for every skipped row as it is
// encountered.
func WithRowHandler(fn func(RowError)) PairOption {
	return func(r *pairReader) { r.onSkip = fn }
}

// ReadPairs opens the file at path and extracts its coordinate pairs.
func ReadPairs(path string, opts ...PairOption) (CoordinateSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return CoordinateSeries{}, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	series, err := ExtractPairs(f, opts...)
	if err != nil {
		return CoordinateSeries{}, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return series, nil
}

// ExtractPairs reads every record of r as an (x, y) candidate from columns
// 0 and 1. Extra columns are ignored. The returned error is non-nil only
// when the underlying stream fails.
func ExtractPairs(r io.Reader, opts ...PairOption) (CoordinateSeries, error) {
	pr := pairReader{}
	for _, opt := range opts {
		opt(&pr)
	}

	rdr := newReader(r)
	var series CoordinateSeries

	for {
		record, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if stderrors.As(err, &perr) {
				pr.skip(&series, RowError{Line: perr.StartLine, Reason: ReasonMalformed, Err: perr.Err})
				continue
			}
			return CoordinateSeries{}, err
		}

		line, _ := rdr.FieldPos(0)
		if len(record) < 2 {
			pr.skip(&series, RowError{Line: line, Reason: ReasonNotEnoughColumns})
			continue
		}

		x, xerr := parseFloat(record[0])
		y, yerr := parseFloat(record[1])
		if err := stderrors.Join(xerr, yerr); err != nil {
			pr.skip(&series, RowError{Line: line, Reason: ReasonParse, Err: err})
			continue
		}

		series.X = append(series.X, x)
		series.Y = append(series.Y, y)
	}

	return series, nil
}

func (pr *pairReader) skip(series *CoordinateSeries, e RowError) {
	series.Skipped = append(series.Skipped, e)
	if pr.onSkip != nil {
		pr.onSkip(e)
	}
}

// parseFloat parses a coordinate. NaN and infinities parse but cannot be
// plotted or encoded, so they are rejected.
func parseFloat(field string) (float64, error) {
	field = strings.TrimSpace(field)
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", field)
	}
	return v, nil
}
