package ingest

import (
	"testing"

	"github.com/verte-zerg/cubelog/internal/model"
)

func TestNormalizeDefaultsAndOrder(t *testing.T) {
	rows := []Row{
		{ColTimeSeconds: "10"},
		{ColTimeSeconds: "20"},
		{ColTimeSeconds: "30"},
	}
	solves, dropped := Normalize(rows)
	if dropped != 0 {
		t.Fatalf("expected no dropped rows, got %d", dropped)
	}
	if len(solves) != 3 {
		t.Fatalf("expected 3 solves, got %d", len(solves))
	}
	for i, s := range solves {
		if s.SolveNumber != i+1 {
			t.Fatalf("solve %d: expected solve number %d, got %d", i, i+1, s.SolveNumber)
		}
		if s.CubeType != model.DefaultCubeType {
			t.Fatalf("expected default cube type, got %q", s.CubeType)
		}
		if s.SessionID != model.DefaultSessionID {
			t.Fatalf("expected default session, got %q", s.SessionID)
		}
		if s.Date != "" {
			t.Fatalf("expected empty date, got %q", s.Date)
		}
		if s.SessionAverage != nil {
			t.Fatalf("expected nil session average")
		}
		if s.IsOutlier {
			t.Fatalf("expected outlier flag unset")
		}
	}
	if solves[2].TimeSeconds != 30 {
		t.Fatalf("expected order preserved, got %v", solves[2].TimeSeconds)
	}
}

func TestNormalizeDropsUnusableTimes(t *testing.T) {
	rows := []Row{
		{ColTimeSeconds: "12.5", ColSolveNumber: "x"},
		{ColTimeSeconds: ""},
		{ColTimeSeconds: "abc", ColTimeClock: "garbage"},
		{ColTimeClock: "1:02.50"},
	}
	solves, dropped := Normalize(rows)
	if dropped != 2 {
		t.Fatalf("expected 2 dropped rows, got %d", dropped)
	}
	if len(solves) != 2 {
		t.Fatalf("expected 2 solves, got %d", len(solves))
	}
	if solves[0].SolveNumber != 1 {
		t.Fatalf("expected fallback solve number 1, got %d", solves[0].SolveNumber)
	}
	if solves[1].SolveNumber != 4 {
		t.Fatalf("expected solve number from ingestion index 4, got %d", solves[1].SolveNumber)
	}
	if solves[1].TimeSeconds != 62.5 {
		t.Fatalf("expected mm:ss fallback 62.5, got %v", solves[1].TimeSeconds)
	}
}

func TestNormalizeFallsBackWhenSecondsUnparseable(t *testing.T) {
	solves, _ := Normalize([]Row{{ColTimeSeconds: "n/a", ColTimeClock: "0:15.25"}})
	if len(solves) != 1 || solves[0].TimeSeconds != 15.25 {
		t.Fatalf("expected mm:ss fallback, got %+v", solves)
	}
}

func TestNormalizeReadsAllColumns(t *testing.T) {
	rows := []Row{{
		ColDate:           "2024-03-01",
		ColCubeType:       " 4×4 ",
		ColSolveNumber:    "7",
		ColTimeClock:      "1:10.00",
		ColTimeSeconds:    "70",
		ColSessionID:      "Session 3",
		ColSessionAverage: "1:05.00",
	}}
	solves, _ := Normalize(rows)
	if len(solves) != 1 {
		t.Fatalf("expected 1 solve, got %d", len(solves))
	}
	s := solves[0]
	if s.Date != "2024-03-01" || s.CubeType != "4×4" || s.SolveNumber != 7 || s.SessionID != "Session 3" {
		t.Fatalf("unexpected solve: %+v", s)
	}
	if s.TimeSeconds != 70 {
		t.Fatalf("expected 70 seconds, got %v", s.TimeSeconds)
	}
	if s.SessionAverage == nil || *s.SessionAverage != 65 {
		t.Fatalf("expected session average 65, got %v", s.SessionAverage)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	solves, dropped := Normalize(nil)
	if len(solves) != 0 || dropped != 0 {
		t.Fatalf("expected empty result, got %d solves %d dropped", len(solves), dropped)
	}
}
