package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	data := "Date,Time (s),Time (mm:ss),Session ID\n" +
		"2024-01-01,12.5,,Session 1\n" +
		"2024-01-01,,bad,Session 1\n" +
		"2024-01-02,,0:14.25,Session 2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	solves, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(solves) != 2 {
		t.Fatalf("expected 2 solves, got %d", len(solves))
	}
	if solves[1].TimeSeconds != 14.25 || solves[1].SolveNumber != 3 {
		t.Fatalf("unexpected second solve: %+v", solves[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
