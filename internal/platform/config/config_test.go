package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"laprun/internal/platform/config"
)

func TestNewDefaultsWithoutFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "laprun.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.DefaultLaps != 1 || cfg.Journal || cfg.Log.Level != "info" || !cfg.Log.Console {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestNewReadsYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	body := "default_laps: 4\njournal: true\nlog:\n  level: debug\n  file: logs/run.log\n  console: false\n"
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DefaultLaps != 4 || !cfg.Journal {
		t.Fatalf("expected laps 4 and journal on, got %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Console || cfg.Log.File != filepath.Join(dir, "logs", "run.log") {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty data dir should fail")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("default_laps: 5000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("out of range default_laps should fail")
	}
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("default_laps: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("malformed yaml should fail")
	}
}
