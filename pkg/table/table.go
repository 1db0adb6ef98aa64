// Package table reads the two comma-separated datasets behind the charts.
//
// # Value datasets
//
// [ReadValues] loads the integer dataset used by the histogram and pie
// chart. The dataset is encoded as a single line of comma-separated
// non-negative integers: only the first record of the file is read and
// everything after it is ignored. Blank lines before that record are
// skipped. Any field that is not an unsigned integer
// aborts the load; there are no partial series.
//
//	values, err := table.ReadValues("values.csv")
//
// # Coordinate datasets
//
// [ReadPairs] and [ExtractPairs] load (age, tip) pairs from columns 0 and 1
// of every record. Rows that are too short or fail to parse are dropped and
// reported; they never abort the load. Only opening the file or a failing
// stream is fatal.
//
//	series, err := table.ReadPairs("tips.csv", table.WithRowHandler(func(e table.RowError) {
//	    logger.Warn("skipped row", "line", e.Line, "reason", e.Reason)
//	}))
package table

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/freqplot/pkg/errors"
)

// ValueSeries is the integer dataset behind the histogram and pie chart.
type ValueSeries []uint32

// ReadValues reads the first record of the file at path and parses every
// field as a non-negative integer.
func ReadValues(path string) (ValueSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	return parseValues(f, path+": ")
}

// ParseValues parses the first record of r as a [ValueSeries].
func ParseValues(r io.Reader) (ValueSeries, error) {
	return parseValues(r, "")
}

func parseValues(r io.Reader, where string) (ValueSeries, error) {
	rdr := newReader(r)

	record, err := rdr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeParse, "%sno non-blank line", where)
	}
	if err != nil {
		var perr *csv.ParseError
		if stderrors.As(err, &perr) {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "%smalformed first line", where)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "%sread first line", where)
	}

	values := make(ValueSeries, 0, len(record))
	for i, field := range record {
		v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 32)
		if err != nil {
			return nil, errors.New(errors.ErrCodeParse, "%scolumn %d: %q is not a non-negative integer", where, i+1, field)
		}
		values = append(values, uint32(v))
	}
	return values, nil
}

func newReader(r io.Reader) *csv.Reader {
	rdr := csv.NewReader(r)
	rdr.FieldsPerRecord = -1
	rdr.ReuseRecord = true
	return rdr
}
