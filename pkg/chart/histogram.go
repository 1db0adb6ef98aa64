package chart

import (
	"github.com/matzehuels/freqplot/pkg/aggregate"
	"github.com/matzehuels/freqplot/pkg/config"
	"github.com/matzehuels/freqplot/pkg/errors"
)

// Histogram is a bar chart with one unit-width bin per integer value.
type Histogram struct {
	frame Frame

	MaxValue    uint32 // x-axis spans 0..=MaxValue
	MaxBinCount int    // y-axis spans 0..=MaxBinCount
	Bins        []int  // Bins[v] is the count of value v; len == MaxValue+1
	XDesc       string
	YDesc       string
}

// Kind implements [Spec].
func (h *Histogram) Kind() Kind { return KindHistogram }

// Frame implements [Spec].
func (h *Histogram) Frame() Frame { return h.frame }

// BuildHistogram lays out the frequency histogram for s.
// An empty summary yields a single empty bin.
func BuildHistogram(s aggregate.Summary, cfg config.Histogram) (*Histogram, error) {
	n := int(s.MaxValue) + 1
	if n > cfg.MaxBins {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"histogram needs %d bins for max value %d, limit is %d", n, s.MaxValue, cfg.MaxBins)
	}

	bins := make([]int, n)
	for v, c := range s.Table {
		bins[v] = c
	}

	return &Histogram{
		frame:       Frame{Width: cfg.Width, Height: cfg.Height, Title: HistogramTitle},
		MaxValue:    s.MaxValue,
		MaxBinCount: s.MaxBinCount,
		Bins:        bins,
		XDesc:       HistogramXDesc,
		YDesc:       HistogramYDesc,
	}, nil
}
