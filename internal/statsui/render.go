package statsui

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cubelog/internal/dashboard"
	"github.com/verte-zerg/cubelog/internal/model"
	"github.com/verte-zerg/cubelog/internal/solvetime"
	"github.com/verte-zerg/cubelog/internal/stats"
)

func renderOverview(v dashboard.View, window, width, plotHeight int) string {
	if v.Summary == nil {
		return "No solves found."
	}
	parts := []string{
		renderSummaryCards(*v.Summary, v.OutlierCount, width),
		renderSpread(*v.Summary, v.Change),
		renderCurves(v.Solves, window, width, plotHeight),
	}
	if fastest := renderFastest(v.Fastest); fastest != "" {
		parts = append(parts, fastest)
	}
	return strings.TrimRight(strings.Join(parts, "\n\n"), "\n")
}

func renderSummaryCards(s model.Summary, outliers, width int) string {
	cards := []string{
		metricCard("Solves", fmt.Sprintf("%d (%d out)", s.Total, outliers)),
		metricCard("Best", solvetime.FormatTime(s.Best)),
		metricCard("Average", solvetime.FormatTime(s.Average)),
		metricCard("Median", solvetime.FormatTime(s.Median)),
		metricCard("Worst", solvetime.FormatTime(s.Worst)),
		metricCard("CV", formatPercent(s.Coefficient)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderSpread(s model.Summary, change *model.Change) string {
	line := fmt.Sprintf("Std dev: %s", formatSeconds(s.StdDev))
	if change != nil {
		line += fmt.Sprintf("  Average vs first %d: %s  CV: %s",
			change.Window, stats.DescribeAverageChange(*change), stats.DescribeCoefficientChange(*change))
	}
	return headerStyle.Render(line)
}

func renderCurves(solves []model.Solve, window, width, plotHeight int) string {
	rolling := []stats.Rolling{{Window: window, Values: stats.RollingAverage(solves, window)}}
	opts := stats.PlotOptions{
		Width:      stats.PlotWidthFor(width),
		Height:     plotHeight,
		ForceColor: true,
	}
	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, solves, rolling, opts); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderFastest(solves []model.Solve) string {
	var buf bytes.Buffer
	if err := stats.RenderFastest(&buf, solves); err != nil {
		return fmt.Sprintf("Failed to render personal bests: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderDistribution(v dashboard.View) string {
	if len(v.Solves) == 0 {
		return "No solves found."
	}
	var buf bytes.Buffer
	if err := stats.RenderHistogram(&buf, v.Histogram); err != nil {
		return fmt.Sprintf("Failed to render histogram: %v", err)
	}
	if err := stats.RenderHeatmap(&buf, v.Heatmap); err != nil {
		return fmt.Sprintf("Failed to render heatmap: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderInsights(insights []model.Insight, width int) string {
	blocks := make([]string, 0, len(insights))
	for _, in := range insights {
		title := cardValueStyle.Render(in.Title) + " " + headerStyle.Render("("+string(in.Category)+")")
		blocks = append(blocks, title+"\n"+wrapText(in.Message, maxInt(20, width-2)))
	}
	return strings.Join(blocks, "\n\n")
}

func formatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return solvetime.Placeholder
	}
	return fmt.Sprintf("%.1f%%", v)
}

func formatSeconds(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return solvetime.Placeholder
	}
	return fmt.Sprintf("%.2fs", v)
}
