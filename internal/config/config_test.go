package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SampleRate != 24000 {
		t.Errorf("SampleRate = %d, want 24000", cfg.SampleRate)
	}
	if cfg.LogsRoot != filepath.Join(home, "realtime-logs") {
		t.Errorf("LogsRoot = %q", cfg.LogsRoot)
	}
	if cfg.DBPath != filepath.Join(home, ".config", "olv", "olv.db") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "olv")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "logs_root = \"~/captures\"\nsample_rate = 16000\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", cfg.SampleRate)
	}
	if cfg.LogsRoot != filepath.Join(home, "captures") {
		t.Errorf("LogsRoot = %q, want tilde expanded", cfg.LogsRoot)
	}
	// keys absent from the file keep their defaults
	if cfg.DBPath != filepath.Join(home, ".config", "olv", "olv.db") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}
