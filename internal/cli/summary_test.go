package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/freqplot/pkg/aggregate"
	"github.com/matzehuels/freqplot/pkg/table"
)

func TestRenderSummary(t *testing.T) {
	out := renderSummary(aggregate.Aggregate(table.ValueSeries{4, 4, 1, 4, 2}))

	for _, want := range []string{"Value", "Count", "Share", "60.0%", "20.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	// Rows are sorted by value regardless of first-seen order.
	i1, i2, i4 := rowIndex(out, "│ 1 "), rowIndex(out, "│ 2 "), rowIndex(out, "│ 4 ")
	if i1 < 0 || i2 < 0 || i4 < 0 || !(i1 < i2 && i2 < i4) {
		t.Errorf("rows not in ascending order:\n%s", out)
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	out := renderSummary(aggregate.Aggregate(nil))
	if !strings.Contains(out, "Value") {
		t.Errorf("empty summary should still render headers:\n%s", out)
	}
}

func rowIndex(s, prefix string) int {
	for i, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			return i
		}
	}
	return -1
}
