package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/freqplot/pkg/aggregate"
)

// renderSummary formats the frequency table of s, one row per distinct value
// in ascending order, with each value's share of the total.
func renderSummary(s aggregate.Summary) string {
	values := slices.Clone(s.Distinct)
	slices.Sort(values)

	rows := make([][]string, 0, len(values))
	for _, v := range values {
		count := s.Table[v]
		share := 0.0
		if s.Count > 0 {
			share = float64(count) / float64(s.Count) * 100
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(v), 10),
			strconv.Itoa(count),
			fmt.Sprintf("%.1f%%", share),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Value", "Count", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 && s.Table[values[row]] == s.MaxBinCount {
				return base.Inherit(StyleNumber).Bold(true)
			}
			if col == 2 {
				return base.Inherit(StyleDim)
			}
			return base
		})

	return t.Render()
}
