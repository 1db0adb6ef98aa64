// Package aggregate counts value frequencies for the histogram and pie chart.
//
// [Aggregate] makes a single pass over a [table.ValueSeries] and produces a
// [Summary]: the frequency table, the distinct values in first-occurrence
// order, the largest value and the largest multiplicity.
//
// # Category window
//
// The histogram spans every integer in 0..=MaxValue, but the pie chart sizes
// its slices from a fixed category window (1..=10 by default, see
// [Summary.Window]). The pie's labels and colors, on the other hand, follow
// the full [Summary.Distinct] list. When values outside the window occur the
// two lists have different lengths; that asymmetry is deliberate and kept.
package aggregate

import (
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/matzehuels/freqplot/pkg/table"
)

// FrequencyTable maps each observed value to its occurrence count.
type FrequencyTable map[uint32]int

// Total returns the sum of all counts, which equals the series length.
func (t FrequencyTable) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Summary is the aggregated form of a value series.
type Summary struct {
	Table       FrequencyTable
	Distinct    []uint32 // each observed value once, in first-occurrence order
	MaxValue    uint32   // 0 for an empty series
	MaxBinCount int      // highest single-value multiplicity, 0 for an empty series
	Count       int      // number of values aggregated
}

// Aggregate builds a [Summary] from values in one pass.
func Aggregate(values table.ValueSeries) Summary {
	s := Summary{
		Table: make(FrequencyTable),
		Count: len(values),
	}
	for _, v := range values {
		c := s.Table[v] + 1
		s.Table[v] = c
		if c == 1 {
			s.Distinct = append(s.Distinct, v)
		}
		if c > s.MaxBinCount {
			s.MaxBinCount = c
		}
		if v > s.MaxValue {
			s.MaxValue = v
		}
	}
	return s
}

// Window returns the values in lo..=hi that were observed, in ascending
// order, together with their counts.
func (s Summary) Window(lo, hi uint32) (categories []uint32, counts []int) {
	for _, v := range s.Distinct {
		if v >= lo && v <= hi {
			categories = append(categories, v)
		}
	}
	slices.Sort(categories)
	for _, v := range categories {
		counts = append(counts, s.Table[v])
	}
	return categories, counts
}

// Extent returns the smallest and largest element of xs.
// It returns [stats.ErrEmptyInput] for an empty slice.
func Extent(xs []float64) (lo, hi float64, err error) {
	if lo, err = stats.Min(xs); err != nil {
		return 0, 0, err
	}
	if hi, err = stats.Max(xs); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}
