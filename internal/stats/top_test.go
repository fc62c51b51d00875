package stats

import "testing"

func TestFastestSolves(t *testing.T) {
	solves := solvesFromTimes(14, 11, 12, 11)
	top := FastestSolves(solves, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 solves, got %d", len(top))
	}
	if top[0].SolveNumber != 2 || top[1].SolveNumber != 4 || top[2].SolveNumber != 3 {
		t.Fatalf("unexpected order: %+v", top)
	}
	if solves[0].TimeSeconds != 14 {
		t.Fatalf("expected input left untouched")
	}
	if got := FastestSolves(solves, 10); len(got) != 4 {
		t.Fatalf("expected n clamped to input size, got %d", len(got))
	}
	if FastestSolves(nil, 3) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
