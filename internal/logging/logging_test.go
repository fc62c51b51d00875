package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cubelog.log")
	closer, err := Init(Options{Level: "info", File: path})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	log.Info().Str("path", "log.csv").Msg("loaded")
	log.Debug().Msg("hidden")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"message":"loaded"`) || !strings.Contains(out, `"path":"log.csv"`) {
		t.Fatalf("expected info entry, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug entry filtered out, got %q", out)
	}
}

func TestInitVerboseLowersLevel(t *testing.T) {
	closer, err := Init(Options{Level: "warn", Verbose: true})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer func() { _ = closer.Close() }()
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", zerolog.GlobalLevel())
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if _, err := Init(Options{Level: "chatty"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
