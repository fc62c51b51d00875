package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected missing config to be ignored, got %v", err)
	}
	if cfg.Dashboard.Cube != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[dashboard]
cube = "2×2"
session = "Session 3"
from = "2024-01-01"
windows = [3, 12]
plot-height = 14
histogram-bins = 10

[log]
level = "debug"
file = "/tmp/cubelog.log"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	d := cfg.Dashboard
	if d.Cube == nil || *d.Cube != "2×2" || d.Session == nil || *d.Session != "Session 3" {
		t.Fatalf("unexpected filter values: %+v", d)
	}
	if d.From == nil || *d.From != "2024-01-01" || d.To != nil {
		t.Fatalf("unexpected dates: %+v", d)
	}
	if len(d.Windows) != 2 || d.Windows[1] != 12 {
		t.Fatalf("unexpected windows: %v", d.Windows)
	}
	if d.PlotHeight == nil || *d.PlotHeight != 14 || d.HistogramBins == nil || *d.HistogramBins != 10 {
		t.Fatalf("unexpected display values: %+v", d)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %+v", cfg.Log)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[dashboard]\nwords = 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "dashboard.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	if got := DefaultConfigPath(); got != filepath.Join(dir, "config", "cubelog", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "state", "cubelog", "cubelog.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}
