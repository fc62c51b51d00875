package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/cubelog/internal/config"
)

const sampleLog = "Date,Cube Type,Solve Number,Time (s),Session ID\n" +
	"2024-01-01,3×3,1,21.5,Session 1\n" +
	"2024-01-01,3×3,2,19.25,Session 1\n" +
	"2024-01-02,3×3,1,18,Session 2\n" +
	"2024-01-02,2×2,1,6.5,Session 2\n" +
	"2024-01-03,3×3,1,17.75,Session 10\n"

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	path := filepath.Join(dir, "log.csv")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReportText(t *testing.T) {
	path := setupEnv(t)
	out, err := runRoot(t, "report", path, "--cube", "3×3")
	if err != nil {
		t.Fatalf("report failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Filtered view: 4 solves", "Best: 0:17.75", "Personal Bests", "Sessions", "Insights"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
	sessions := out[strings.Index(out, "Sessions\n"):]
	if strings.Index(sessions, "Session 2 ") > strings.Index(sessions, "Session 10") {
		t.Fatalf("expected numeric session order in report:\n%s", out)
	}
}

func TestReportJSON(t *testing.T) {
	path := setupEnv(t)
	out, err := runRoot(t, "report", path, "--json", "--session", "Session 2")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	var decoded struct {
		Label string `json:"label"`
		Total int    `json:"total"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if decoded.Total != 2 || decoded.Label != "Filtered view" {
		t.Fatalf("unexpected export: %+v", decoded)
	}
}

func TestReportUsesConfigUnlessFlagSet(t *testing.T) {
	path := setupEnv(t)
	cfgPath := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(cfgPath, []byte("[dashboard]\ncube = \"2×2\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, err := runRoot(t, "report", path, "--json")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, `"total": 1`) {
		t.Fatalf("expected config cube filter applied:\n%s", out)
	}
	out, err = runRoot(t, "report", path, "--json", "--cube", "all")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, `"total": 5`) {
		t.Fatalf("expected flag to override config:\n%s", out)
	}
}

func TestReportRejectsBadDate(t *testing.T) {
	path := setupEnv(t)
	if _, err := runRoot(t, "report", path, "--from", "next week"); err == nil {
		t.Fatalf("expected error for invalid --from")
	}
}

func TestReportMissingFile(t *testing.T) {
	setupEnv(t)
	if _, err := runRoot(t, "report", filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatalf("expected error for missing log")
	}
}

func TestChoices(t *testing.T) {
	path := setupEnv(t)
	out, err := runRoot(t, "choices", path)
	if err != nil {
		t.Fatalf("choices failed: %v", err)
	}
	want := "Cube types:\n  3×3\n  2×2\nSessions:\n  Session 1\n  Session 2\n  Session 10\nDates: 2024-01-01 to 2024-01-03\n"
	if out != want {
		t.Fatalf("unexpected choices output:\n%s", out)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	setupEnv(t)
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensureConfigFile failed: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if cfg.Dashboard.Cube != nil {
		t.Fatalf("expected every template value commented out")
	}

	var uncommented config.FileConfig
	lines := strings.Split(defaultConfigTemplate(), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			lines[i] = strings.TrimPrefix(line, "# ")
		}
	}
	text := strings.Join(lines, "\n")
	if _, err := toml.Decode(text, &uncommented); err != nil {
		t.Fatalf("uncommented template does not decode: %v\n%s", err, text)
	}
	if len(uncommented.Dashboard.Windows) != 3 || uncommented.Dashboard.PlotHeight == nil {
		t.Fatalf("unexpected uncommented template values: %+v", uncommented.Dashboard)
	}
}
