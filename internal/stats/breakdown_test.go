package stats

import (
	"math"
	"reflect"
	"testing"

	"github.com/verte-zerg/cubelog/internal/model"
)

func TestOrderSessions(t *testing.T) {
	got := OrderSessions([]string{"Session 10", "Warmup", "Session 2", "Session 1", "Session 2", "Comp"})
	want := []string{"Session 1", "Session 2", "Session 10", "Comp", "Warmup"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSessionNumber(t *testing.T) {
	if n, ok := SessionNumber("Session 12"); !ok || n != 12 {
		t.Fatalf("expected 12, got %d %v", n, ok)
	}
	if _, ok := SessionNumber("Warmup"); ok {
		t.Fatalf("expected no number")
	}
}

func TestSessionGroups(t *testing.T) {
	solves := solvesFromTimes(10, 11, 12, 13)
	solves[0].SessionID = "Session 10"
	solves[1].SessionID = "Session 2"
	solves[2].SessionID = "Session 10"
	solves[2].IsOutlier = true
	solves[3].SessionID = "Session 2"
	groups := SessionGroups(solves)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].SessionID != "Session 2" || !reflect.DeepEqual(groups[0].Times, []float64{11, 13}) {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].SessionID != "Session 10" || groups[1].Outliers != 1 {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}
}

func TestBuildHeatmap(t *testing.T) {
	solves := []model.Solve{
		{SessionID: "Session 1", SolveNumber: 1, TimeSeconds: 10},
		{SessionID: "Session 1", SolveNumber: 3, TimeSeconds: 12},
		{SessionID: "Session 2", SolveNumber: 2, TimeSeconds: 14},
		{SessionID: "Session 1", SolveNumber: 1, TimeSeconds: 99},
	}
	hm := BuildHeatmap(solves)
	if !reflect.DeepEqual(hm.SessionIDs, []string{"Session 1", "Session 2"}) {
		t.Fatalf("unexpected sessions: %v", hm.SessionIDs)
	}
	if !reflect.DeepEqual(hm.SolveNumbers, []int{1, 2, 3}) {
		t.Fatalf("unexpected solve numbers: %v", hm.SolveNumbers)
	}
	if hm.Cells[0][0] == nil || *hm.Cells[0][0] != 10 {
		t.Fatalf("expected first matching solve in cell, got %v", hm.Cells[0][0])
	}
	if hm.Cells[0][1] != nil {
		t.Fatalf("expected empty cell")
	}
	if hm.Cells[1][1] == nil || *hm.Cells[1][1] != 14 {
		t.Fatalf("unexpected session 2 cell")
	}
	if empty := BuildHeatmap(nil); len(empty.SessionIDs) != 0 || len(empty.Cells) != 0 {
		t.Fatalf("expected empty heatmap")
	}
}

func TestBuildHeatmapUsesPresentSolveNumbers(t *testing.T) {
	solves := []model.Solve{
		{SessionID: "Session 1", SolveNumber: math.MaxInt, TimeSeconds: 13},
		{SessionID: "Session 1", SolveNumber: 1, TimeSeconds: 12},
		{SessionID: "Session 2", SolveNumber: 20000000, TimeSeconds: 11},
	}
	hm := BuildHeatmap(solves)
	if !reflect.DeepEqual(hm.SolveNumbers, []int{1, 20000000, math.MaxInt}) {
		t.Fatalf("unexpected solve numbers: %v", hm.SolveNumbers)
	}
	if len(hm.Cells) != 2 || len(hm.Cells[0]) != 3 || len(hm.Cells[1]) != 3 {
		t.Fatalf("expected a 2x3 matrix, got %d rows", len(hm.Cells))
	}
	if hm.Cells[0][2] == nil || *hm.Cells[0][2] != 13 {
		t.Fatalf("unexpected cell for the largest solve number")
	}
	if hm.Cells[1][1] == nil || *hm.Cells[1][1] != 11 || hm.Cells[1][0] != nil {
		t.Fatalf("unexpected session 2 row")
	}
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 3, 4, 10}, 5)
	if len(bins) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 6 {
		t.Fatalf("expected every value counted, got %d", total)
	}
	if bins[0].Count != 2 || bins[4].Count != 1 || bins[4].Upper != 10 {
		t.Fatalf("unexpected bins: %+v", bins)
	}
	flat := Histogram([]float64{3, 3, 3}, 20)
	if len(flat) != 1 || flat[0].Count != 3 {
		t.Fatalf("expected a single bin for identical values, got %+v", flat)
	}
	if Histogram(nil, 20) != nil {
		t.Fatalf("expected nil for empty values")
	}
}

func TestCompareEarlyRecent(t *testing.T) {
	if _, ok := CompareEarlyRecent(solvesFromTimes(1, 2, 3)); ok {
		t.Fatalf("expected no comparison when 30%% rounds to zero")
	}
	change, ok := CompareEarlyRecent(solvesFromTimes(20, 20, 20, 15, 15, 15, 10, 10, 10, 10))
	if !ok {
		t.Fatalf("expected a comparison")
	}
	if change.Window != 3 {
		t.Fatalf("expected window of 3, got %d", change.Window)
	}
	if change.AveragePct != 50 {
		t.Fatalf("expected 50%% faster, got %v", change.AveragePct)
	}
	if change.CoefficientDelta != 0 {
		t.Fatalf("expected no coefficient change, got %v", change.CoefficientDelta)
	}
}
