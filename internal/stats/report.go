package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/cubelog/internal/model"
	"github.com/verte-zerg/cubelog/internal/solvetime"
)

const histogramBarWidth = 40

// RenderSummary prints the summary block. A nil summary prints a no-data line.
func RenderSummary(w io.Writer, summary *model.Summary, change *model.Change, outliers int) error {
	if summary == nil {
		_, err := fmt.Fprintln(w, "No solves found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Solves: %d (%d outliers)", summary.Total, outliers),
		fmt.Sprintf("Best: %s", solvetime.FormatTime(summary.Best)),
		fmt.Sprintf("Average: %s", solvetime.FormatTime(summary.Average)),
		fmt.Sprintf("Median: %s", solvetime.FormatTime(summary.Median)),
		fmt.Sprintf("Worst: %s", solvetime.FormatTime(summary.Worst)),
		fmt.Sprintf("Std Dev: %s", formatSeconds(summary.StdDev)),
		fmt.Sprintf("Consistency (CV): %s", formatPercent(summary.Coefficient)),
	}
	if change != nil {
		lines = append(lines,
			fmt.Sprintf("Average vs early: %s", DescribeAverageChange(*change)),
			fmt.Sprintf("CV vs early: %s", DescribeCoefficientChange(*change)),
		)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// DescribeAverageChange renders an early-vs-recent average change with a direction arrow.
// Down means recent solves are faster.
func DescribeAverageChange(c model.Change) string {
	arrow := "↑"
	if c.AveragePct > 0 {
		arrow = "↓"
	}
	return fmt.Sprintf("%s %s", arrow, formatPercent(math.Abs(c.AveragePct)))
}

// DescribeCoefficientChange renders the change in coefficient of variation.
func DescribeCoefficientChange(c model.Change) string {
	arrow := "↑"
	if c.CoefficientDelta < 0 {
		arrow = "↓"
	}
	return fmt.Sprintf("%s %s", arrow, formatPercent(math.Abs(c.CoefficientDelta)))
}

// RenderCurves plots solve times with their rolling averages.
func RenderCurves(w io.Writer, solves []model.Solve, rolling []Rolling, opts PlotOptions) error {
	if len(solves) == 0 {
		return nil
	}
	series := make([]Series, 0, len(rolling)+1)
	series = append(series, Series{Name: "Time", Values: Times(solves)})
	for _, r := range rolling {
		series = append(series, Series{Name: fmt.Sprintf("MA-%d", r.Window), Values: r.Values})
	}
	return PlotSeries(w, "Progression", series, opts)
}

// RenderSessions prints a per-session table.
func RenderSessions(w io.Writer, groups []model.SessionGroup) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	headers, rows := SessionTableRows(groups)
	return writeTable(w, "Sessions", headers, rows)
}

// SessionTableRows builds the per-session table cells.
func SessionTableRows(groups []model.SessionGroup) ([]string, [][]string) {
	headers := []string{"Session", "Solves", "Best", "Average", "Median", "Worst", "Outliers", "Shape"}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		summary, ok := summarizeValues(g.Times)
		if !ok {
			continue
		}
		rows = append(rows, []string{
			g.SessionID,
			fmt.Sprintf("%d", summary.Total),
			solvetime.FormatTime(summary.Best),
			solvetime.FormatTime(summary.Average),
			solvetime.FormatTime(summary.Median),
			solvetime.FormatTime(summary.Worst),
			fmt.Sprintf("%d", g.Outliers),
			Sparkline(g.Times),
		})
	}
	return headers, rows
}

// RenderHistogram prints horizontal bars for a time distribution.
func RenderHistogram(w io.Writer, bins []model.HistogramBin) error {
	if len(bins) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Distribution"); err != nil {
		return err
	}
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	for _, b := range bins {
		bar := 0
		if maxCount > 0 {
			bar = int(math.Round(float64(b.Count) / float64(maxCount) * histogramBarWidth))
		}
		line := fmt.Sprintf("%8s-%-8s │%s %d",
			solvetime.FormatTime(b.Lower), solvetime.FormatTime(b.Upper), strings.Repeat("█", bar), b.Count)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHeatmap prints one shaded row per session, slow solves darker.
func RenderHeatmap(w io.Writer, heatmap model.Heatmap) error {
	if len(heatmap.SessionIDs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Session x Solve"); err != nil {
		return err
	}
	labelWidth := 0
	for _, id := range heatmap.SessionIDs {
		if lw := displayWidth(id); lw > labelWidth {
			labelWidth = lw
		}
	}
	minVal, maxVal := HeatmapRange(heatmap)
	for i, id := range heatmap.SessionIDs {
		line := padCell(id, labelWidth, false) + " │" + HeatmapRow(heatmap, i, minVal, maxVal)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// HeatmapRange returns the fastest and slowest filled cell of the matrix.
func HeatmapRange(heatmap model.Heatmap) (float64, float64) {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, cells := range heatmap.Cells {
		for _, c := range cells {
			if c == nil {
				continue
			}
			minVal = math.Min(minVal, *c)
			maxVal = math.Max(maxVal, *c)
		}
	}
	return minVal, maxVal
}

// HeatmapRow shades one heatmap row against [minVal, maxVal].
// Empty cells render as spaces.
func HeatmapRow(heatmap model.Heatmap, row int, minVal, maxVal float64) string {
	if row < 0 || row >= len(heatmap.Cells) {
		return ""
	}
	var b strings.Builder
	for _, c := range heatmap.Cells[row] {
		if c == nil {
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(sparkChar(*c, minVal, maxVal))
	}
	return b.String()
}

// RenderFastest prints the personal-best list.
func RenderFastest(w io.Writer, solves []model.Solve) error {
	if len(solves) == 0 {
		return nil
	}
	headers := []string{"#", "Time", "Session", "Solve", "Date"}
	rows := make([][]string, 0, len(solves))
	for i, s := range solves {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			solvetime.FormatTime(s.TimeSeconds),
			s.SessionID,
			fmt.Sprintf("%d", s.SolveNumber),
			s.Date,
		})
	}
	return writeTable(w, "Personal Bests", headers, rows)
}

// RenderInsights prints insights as titled lines.
func RenderInsights(w io.Writer, insights []model.Insight) error {
	if _, err := fmt.Fprintln(w, "Insights"); err != nil {
		return err
	}
	for _, in := range insights {
		if _, err := fmt.Fprintf(w, "- %s: %s\n", in.Title, in.Message); err != nil {
			return err
		}
	}
	return nil
}

func formatSeconds(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return solvetime.Placeholder
	}
	return fmt.Sprintf("%.2fs", v)
}
