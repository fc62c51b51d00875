package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/cubelog/internal/model"
)

func TestGenerateInsightsEmpty(t *testing.T) {
	got := GenerateInsights(nil)
	if len(got) != 1 {
		t.Fatalf("expected exactly one insight, got %d", len(got))
	}
	if got[0].Category != model.InsightNoData {
		t.Fatalf("expected no-data insight, got %q", got[0].Category)
	}
}

func TestGenerateInsightsSingleSession(t *testing.T) {
	got := GenerateInsights(solvesFromTimes(10, 20, 30))
	wantCategories := []model.InsightCategory{
		model.InsightPerformance,
		model.InsightConsistency,
		model.InsightTrend,
		model.InsightPeak,
	}
	if len(got) != len(wantCategories) {
		t.Fatalf("expected %d insights, got %d: %+v", len(wantCategories), len(got), got)
	}
	for i, c := range wantCategories {
		if got[i].Category != c {
			t.Fatalf("insight %d: expected %q, got %q", i, c, got[i].Category)
		}
	}
	if got[0].Title != "Strong Performance" {
		t.Fatalf("expected tier B performance at 20s, got %q", got[0].Title)
	}
	if got[1].Title != "Consistency Opportunity" {
		t.Fatalf("expected tier C consistency, got %q", got[1].Title)
	}
	if got[2].Title != "Performance Plateau" || math.Abs(got[2].Value+150) > epsilon {
		t.Fatalf("expected declining trend of -150%%, got %+v", got[2])
	}
	if math.Abs(got[3].Value-50) > epsilon || !strings.Contains(got[3].Message, "0:10.00") {
		t.Fatalf("unexpected peak insight: %+v", got[3])
	}
}

func TestGenerateInsightsVolume(t *testing.T) {
	solves := solvesFromTimes(15, 16, 14, 15)
	solves[2].SessionID = "Session 2"
	solves[3].SessionID = "Session 2"
	got := GenerateInsights(solves)
	last := got[len(got)-1]
	if last.Category != model.InsightVolume {
		t.Fatalf("expected volume insight last, got %q", last.Category)
	}
	if last.Value != 2 || !strings.Contains(last.Message, "2 practice sessions") || !strings.Contains(last.Message, "4 solves") {
		t.Fatalf("unexpected volume insight: %+v", last)
	}

	single := GenerateInsights(solvesFromTimes(15, 16, 14, 15))
	for _, in := range single {
		if in.Category == model.InsightVolume {
			t.Fatalf("volume insight must be absent for a single session")
		}
	}
}

func TestPerformanceTier(t *testing.T) {
	tests := []struct {
		avg  float64
		want Tier
	}{
		{12, TierA},
		{19.99, TierA},
		{20, TierB},
		{29.99, TierB},
		{30, TierC},
		{95, TierC},
	}
	for _, tt := range tests {
		if got := PerformanceTier(tt.avg); got != tt.want {
			t.Fatalf("PerformanceTier(%v) = %v, want %v", tt.avg, got, tt.want)
		}
	}
}

func TestConsistencyTier(t *testing.T) {
	tests := []struct {
		cv   float64
		want Tier
	}{
		{5, TierA},
		{10, TierB},
		{19.9, TierB},
		{20, TierC},
		{math.NaN(), TierC},
	}
	for _, tt := range tests {
		if got := ConsistencyTier(tt.cv); got != tt.want {
			t.Fatalf("ConsistencyTier(%v) = %v, want %v", tt.cv, got, tt.want)
		}
	}
}

func TestClassifyTrendBoundaries(t *testing.T) {
	tests := []struct {
		improvement float64
		want        Trend
	}{
		{5, TrendStable},
		{-5, TrendStable},
		{0, TrendStable},
		{5.01, TrendImproving},
		{-5.01, TrendDeclining},
		{math.NaN(), TrendStable},
	}
	for _, tt := range tests {
		if got := ClassifyTrend(tt.improvement); got != tt.want {
			t.Fatalf("ClassifyTrend(%v) = %q, want %q", tt.improvement, got, tt.want)
		}
	}
}

func TestImprovement(t *testing.T) {
	got := Improvement(solvesFromTimes(20, 20, 10, 10))
	if math.Abs(got-50) > epsilon {
		t.Fatalf("expected 50%% improvement, got %v", got)
	}
	if got := Improvement(solvesFromTimes(12)); !math.IsNaN(got) {
		t.Fatalf("expected NaN with an empty first half, got %v", got)
	}
}

func TestPeakImprovement(t *testing.T) {
	got := PeakImprovement(model.Summary{Average: 20, Best: 15})
	if math.Abs(got-25) > epsilon {
		t.Fatalf("expected 25, got %v", got)
	}
}

func TestInsightMessagesHandleNonFinite(t *testing.T) {
	got := GenerateInsights(solvesFromTimes(0, 0))
	for _, in := range got {
		if strings.Contains(in.Message, "NaN") || strings.Contains(in.Message, "Inf") {
			t.Fatalf("message leaked a non-finite number: %q", in.Message)
		}
	}
}
