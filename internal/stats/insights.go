package stats

import (
	"fmt"
	"math"

	"github.com/verte-zerg/cubelog/internal/model"
	"github.com/verte-zerg/cubelog/internal/solvetime"
)

// Tier ranks a metric against fixed thresholds, TierA being best.
type Tier int

// Tiers.
const (
	TierA Tier = iota
	TierB
	TierC
)

// Trend classifies how times moved between the two halves of a view.
type Trend string

// Trends.
const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

const (
	performanceTierA = 20.0
	performanceTierB = 30.0
	consistencyTierA = 10.0
	consistencyTierB = 20.0
	trendThreshold   = 5.0
)

// PerformanceTier ranks an average solve time in seconds.
func PerformanceTier(average float64) Tier {
	switch {
	case average < performanceTierA:
		return TierA
	case average < performanceTierB:
		return TierB
	default:
		return TierC
	}
}

// ConsistencyTier ranks a coefficient of variation in percent. NaN ranks TierC.
func ConsistencyTier(coefficient float64) Tier {
	switch {
	case coefficient < consistencyTierA:
		return TierA
	case coefficient < consistencyTierB:
		return TierB
	default:
		return TierC
	}
}

// Improvement compares the first half of solves with the second, split at n/2.
// Positive means the second half is faster. An empty half yields NaN.
func Improvement(solves []model.Solve) float64 {
	mid := len(solves) / 2
	first := averageOrNaN(solves[:mid])
	second := averageOrNaN(solves[mid:])
	return (first - second) / first * 100
}

// ClassifyTrend maps an improvement percentage to a trend. Exactly ±5 and NaN are stable.
func ClassifyTrend(improvement float64) Trend {
	switch {
	case improvement > trendThreshold:
		return TrendImproving
	case improvement < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// PeakImprovement is how much faster the best solve is than the average, in percent.
func PeakImprovement(summary model.Summary) float64 {
	return (summary.Average - summary.Best) / summary.Average * 100
}

// DistinctSessions counts the distinct session IDs in solves.
func DistinctSessions(solves []model.Solve) int {
	seen := make(map[string]struct{}, len(solves))
	for _, s := range solves {
		seen[s.SessionID] = struct{}{}
	}
	return len(seen)
}

// GenerateInsights produces ordered observations about the solves. An empty
// set yields a single no-data insight.
func GenerateInsights(solves []model.Solve) []model.Insight {
	summary, ok := Summarize(solves)
	if !ok {
		return []model.Insight{{
			Category: model.InsightNoData,
			Title:    "No Data",
			Message:  "No solves match the current filters.",
			Value:    math.NaN(),
		}}
	}

	insights := []model.Insight{
		performanceInsight(summary),
		consistencyInsight(summary),
		trendInsight(Improvement(solves)),
		peakInsight(summary),
	}
	if sessions := DistinctSessions(solves); sessions > 1 {
		insights = append(insights, model.Insight{
			Category: model.InsightVolume,
			Title:    "Training Volume",
			Message: fmt.Sprintf("%d practice sessions logged with %d solves in total. Regular sessions keep skills fresh.",
				sessions, summary.Total),
			Value: float64(sessions),
		})
	}
	return insights
}

func performanceInsight(summary model.Summary) model.Insight {
	avg := solvetime.FormatTime(summary.Average)
	insight := model.Insight{Category: model.InsightPerformance, Value: summary.Average}
	switch PerformanceTier(summary.Average) {
	case TierA:
		insight.Title = "Elite Performance"
		insight.Message = fmt.Sprintf("An average of %s puts you in the advanced bracket.", avg)
	case TierB:
		insight.Title = "Strong Performance"
		insight.Message = fmt.Sprintf("An average of %s reflects solid intermediate skill. Sub-20 is the next milestone.", avg)
	default:
		insight.Title = "Building Foundation"
		insight.Message = fmt.Sprintf("Average of %s. Algorithm recall and lookahead are the biggest levers right now.", avg)
	}
	return insight
}

func consistencyInsight(summary model.Summary) model.Insight {
	cv := formatPercent(summary.Coefficient)
	insight := model.Insight{Category: model.InsightConsistency, Value: summary.Coefficient}
	switch ConsistencyTier(summary.Coefficient) {
	case TierA:
		insight.Title = "Exceptional Consistency"
		insight.Message = fmt.Sprintf("A coefficient of variation of %s means your solves are highly repeatable.", cv)
	case TierB:
		insight.Title = "Good Consistency"
		insight.Message = fmt.Sprintf("A CV of %s shows decent reliability. Keep focus through the whole session.", cv)
	default:
		insight.Title = "Consistency Opportunity"
		insight.Message = fmt.Sprintf("A CV of %s points to variable solves. Slow, controlled solves reduce the spread.", cv)
	}
	return insight
}

func trendInsight(improvement float64) model.Insight {
	insight := model.Insight{Category: model.InsightTrend, Value: improvement}
	switch ClassifyTrend(improvement) {
	case TrendImproving:
		insight.Title = "Positive Trajectory"
		insight.Message = fmt.Sprintf("Recent solves are %s faster than earlier ones.", formatPercent(improvement))
	case TrendDeclining:
		insight.Title = "Performance Plateau"
		insight.Message = fmt.Sprintf("Times rose by %s. Review weak algorithms or take a short break.", formatPercent(math.Abs(improvement)))
	default:
		insight.Title = "Stable Performance"
		insight.Message = "Times are holding steady. New methods or finger trick drills can break a plateau."
	}
	return insight
}

func peakInsight(summary model.Summary) model.Insight {
	peak := PeakImprovement(summary)
	return model.Insight{
		Category: model.InsightPeak,
		Title:    "Peak Performance",
		Message: fmt.Sprintf("Your best solve of %s is %s faster than your average.",
			solvetime.FormatTime(summary.Best), formatPercent(peak)),
		Value: peak,
	}
}

func formatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return solvetime.Placeholder
	}
	return fmt.Sprintf("%.1f%%", v)
}
